package api

import (
	"encoding/json"
	"log"
	"net/http"

	"SalesOpsHub/api/sales/regionconfig"
	"SalesOpsHub/internal/logger"

	"github.com/gorilla/mux"
)

func NewRouter() *mux.Router {
	router := mux.NewRouter()

	salesProxy := createReverseProxy("http://localhost:3143")
	router.PathPrefix("/sales/").Handler(RegionMiddleware(salesProxy))

	router.HandleFunc("/regions", RegionsHandler).Methods("GET")
	router.HandleFunc("/healt", HealthHandler).Methods("GET")
	router.NotFoundHandler = http.HandlerFunc(NotFoundHandler)

	return router
}

// RegionsHandler lists the region codes the deployment serves.
func RegionsHandler(w http.ResponseWriter, r *http.Request) {
	type region struct {
		Code     string `json:"code"`
		Name     string `json:"name"`
		NameEN   string `json:"name_en"`
		Currency string `json:"currency"`
	}
	var out []region
	for _, code := range regionconfig.AllRegions {
		cfg := regionconfig.Get(code)
		out = append(out, region{Code: cfg.Code, Name: cfg.Name, NameEN: cfg.NameEN, Currency: cfg.Currency})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "rows": out})
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("API Gateway is healthy"))
}

func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	logr := logger.GlobalLogger
	msg := "[Gateway] [Error] " + r.URL.Path + " from " + r.RemoteAddr + " (route not found)"
	if logr != nil {
		logr.LogAudit(msg)
	} else {
		log.Println(msg)
	}
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("404 - Route not found"))
}
