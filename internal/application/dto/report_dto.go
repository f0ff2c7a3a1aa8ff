package dto

// ProductSalesReportResponse fila del reporte de productos más vendidos.
type ProductSalesReportResponse struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	TotalSold int64  `json:"total_sold"`
}
