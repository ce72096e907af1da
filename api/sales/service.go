package sales

import (
	"database/sql"

	"SalesOpsHub/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SalesService struct {
	config map[string]interface{}
	db     *sql.DB
	pool   *pgxpool.Pool
}

func NewSalesService(cfg map[string]interface{}, db *sql.DB, pool *pgxpool.Pool) serviceiface.Service {
	return &SalesService{config: cfg, db: db, pool: pool}
}

func (s *SalesService) Name() string {
	return "sales"
}

func (s *SalesService) Start() error {
	go StartSalesService(s.db, s.pool)
	return nil
}

func (s *SalesService) Stop() error {
	return nil
}
