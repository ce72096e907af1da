package sales

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	api "SalesOpsHub/api"
	"SalesOpsHub/api/sales/detect"
	"SalesOpsHub/api/sales/importer"
	"SalesOpsHub/api/sales/query"
	"SalesOpsHub/api/sales/regionconfig"
	"SalesOpsHub/internal/config"
)

// regionParam resolves the region query parameter, falling back to the
// default region for unknown or missing codes.
func regionParam(r *http.Request) string {
	region := r.URL.Query().Get("region")
	if !regionconfig.IsValidRegion(region) {
		return config.DefaultRegion
	}
	return region
}

// monthParams resolves year/month query parameters. When absent, the
// region's most recent month with data applies; with no data at all the
// configured P&L year and the current month do.
func monthParams(r *http.Request, qs *query.Service, region string) (int, int, error) {
	q := r.URL.Query()
	year, _ := strconv.Atoi(q.Get("year"))
	month, _ := strconv.Atoi(q.Get("month"))
	if year > 0 && month >= 1 && month <= 12 {
		return year, month, nil
	}
	months, err := qs.AvailableMonths(r.Context(), region)
	if err != nil {
		return 0, 0, err
	}
	if len(months) > 0 {
		return months[0].Year, months[0].Month, nil
	}
	return config.PnLYear, int(time.Now().Month()), nil
}

// saveUpload copies the multipart file to a temp path the spreadsheet
// readers can reopen by name. Caller removes it.
func saveUpload(r *http.Request) (path, originalName string, err error) {
	if err := r.ParseMultipartForm(config.UploadMaxBytes); err != nil {
		return "", "", fmt.Errorf("parse multipart form: %w", err)
	}
	file, fh, err := r.FormFile("file")
	if err != nil {
		return "", "", fmt.Errorf("missing file field: %w", err)
	}
	defer file.Close()

	ext := filepath.Ext(fh.Filename)
	tmp, err := os.CreateTemp("", "sales-upload-*"+ext)
	if err != nil {
		return "", "", err
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", "", err
	}
	return tmp.Name(), fh.Filename, nil
}

func ImportWorkbook(imp *importer.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			api.RespondWithError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		path, name, err := saveUpload(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer os.Remove(path)

		region := r.FormValue("region")
		if !regionconfig.IsValidRegion(region) {
			region = config.DefaultRegion
		}
		year, _ := strconv.Atoi(r.FormValue("year"))
		clear := r.FormValue("clear") == "true"

		res, err := imp.ImportWorkbook(r.Context(), path, region, year, clear)
		if err != nil {
			api.RespondWithError(w, http.StatusUnprocessableEntity, fmt.Sprintf("workbook %s: %v", name, err))
			return
		}
		res.FileName = name
		api.RespondWithPayload(w, true, "", res)
	}
}

// clearRangeParam: range deletion on raw uploads is opt-in. A plain
// upload appends; only an explicit clear_range=true deletes the file's
// date span first.
func clearRangeParam(v string) bool {
	return v == "true"
}

func ImportRawFile(imp *importer.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			api.RespondWithError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		path, name, err := saveUpload(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer os.Remove(path)

		platform, ok := detect.ParsePlatform(r.FormValue("platform"))
		if r.FormValue("platform") != "" && !ok {
			api.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("unknown platform %q", r.FormValue("platform")))
			return
		}
		region := r.FormValue("region")
		clearRange := clearRangeParam(r.FormValue("clear_range"))

		res, err := imp.ImportRawFile(r.Context(), path, name, platform, region, clearRange)
		if err != nil {
			api.RespondWithError(w, http.StatusUnprocessableEntity, fmt.Sprintf("raw file %s: %v", name, err))
			return
		}
		api.RespondWithPayload(w, true, "", res)
	}
}

func AvailableMonths(qs *query.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		region := regionParam(r)
		months, err := qs.AvailableMonths(r.Context(), region)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", months)
	}
}

func Dashboard(qs *query.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		region := regionParam(r)
		year, month, err := monthParams(r, qs, region)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		summary, err := qs.DashboardSummary(r.Context(), region, year, month)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", summary)
	}
}

func MonthlyPnL(qs *query.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		region := regionParam(r)
		year, month, err := monthParams(r, qs, region)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		days, err := qs.MonthlyPnL(r.Context(), region, year, month)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", days)
	}
}

func Brands(qs *query.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		region := regionParam(r)
		code := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sales/brands"), "/")
		if code == "" {
			brands, err := qs.Brands(r.Context(), region)
			if err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			api.RespondWithPayload(w, true, "", brands)
			return
		}
		year, month, err := monthParams(r, qs, region)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		detail, err := qs.BrandDetail(r.Context(), region, code, year, month)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", detail)
	}
}

func Orders(qs *query.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		region := regionParam(r)
		platform := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sales/orders"), "/")
		if _, ok := detect.ParsePlatform(platform); !ok {
			api.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("unknown platform %q", platform))
			return
		}
		q := r.URL.Query()
		var from, to *time.Time
		if v := q.Get("from"); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				api.RespondWithError(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
				return
			}
			from = &t
		}
		if v := q.Get("to"); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				api.RespondWithError(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
				return
			}
			to = &t
		}
		rows, err := qs.Orders(r.Context(), region, platform, q.Get("brand"), from, to)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", rows)
	}
}
