package repository

import "context"

// ProductSalesReport fila del reporte de productos más vendidos.
type ProductSalesReport struct {
	ProductID string
	Title     string
	TotalSold int64
}

// ReportRepository consultas agregadas de solo lectura sobre ventas.
type ReportRepository interface {
	TopSellingProducts(ctx context.Context) ([]ProductSalesReport, error)
}
