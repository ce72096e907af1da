package sales

import (
	"database/sql"
	"log"
	"net/http"

	"SalesOpsHub/api/sales/importer"
	"SalesOpsHub/api/sales/query"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StartSalesService runs the sales HTTP server. The read side runs on
// the shared sql.DB; imports get the pgx pool for batch and copy
// loading.
func StartSalesService(db *sql.DB, pool *pgxpool.Pool) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sales/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Sales Service is active"))
	})

	imp := importer.New(pool)
	qs := query.New(db)

	mux.Handle("/sales/import/workbook", ImportWorkbook(imp))
	mux.Handle("/sales/import/raw", ImportRawFile(imp))

	mux.Handle("/sales/months", AvailableMonths(qs))
	mux.Handle("/sales/dashboard", Dashboard(qs))
	mux.Handle("/sales/pnl/monthly", MonthlyPnL(qs))
	mux.Handle("/sales/brands", Brands(qs))
	mux.Handle("/sales/brands/", Brands(qs))
	mux.Handle("/sales/orders/", Orders(qs))

	log.Println("Sales Service started on :3143")
	err := http.ListenAndServe(":3143", mux)
	if err != nil {
		log.Fatalf("Sales Service failed: %v", err)
	}
}
