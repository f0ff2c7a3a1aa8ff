package postgres

import (
	"context"
	"fmt"

	"github.com/sairmh/libreria-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura sobre ventas.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de consultas de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// TopSellingProducts agrega unidades vendidas por producto, descendente.
func (r *ReportRepo) TopSellingProducts(ctx context.Context) ([]repository.ProductSalesReport, error) {
	query := `
		SELECT p.id, p.title, COALESCE(SUM(si.quantity), 0) AS total_sold
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		GROUP BY p.id, p.title
		ORDER BY total_sold DESC, p.title`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("top selling products: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductSalesReport
	for rows.Next() {
		var row repository.ProductSalesReport
		if err := rows.Scan(&row.ProductID, &row.Title, &row.TotalSold); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
