package api

import (
	"net/http"

	"SalesOpsHub/api/sales/regionconfig"
	"SalesOpsHub/internal/config"
)

// RegionMiddleware pins every proxied request to an explicit region. A
// missing or unknown region query parameter is rewritten to the default
// region before the request leaves the gateway, so downstream handlers
// never see an ambiguous one.
func RegionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if !regionconfig.IsValidRegion(q.Get("region")) {
			q.Set("region", config.DefaultRegion)
			r.URL.RawQuery = q.Encode()
		}
		next.ServeHTTP(w, r)
	})
}
