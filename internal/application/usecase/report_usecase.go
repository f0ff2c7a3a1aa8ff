package usecase

import (
	"context"

	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/internal/domain/repository"
)

// ReportPDFGenerator puerto de generación del PDF del reporte de ventas.
type ReportPDFGenerator interface {
	GenerateTopProductsPDF(ctx context.Context, rows []repository.ProductSalesReport) ([]byte, error)
}

// ReportUseCase reportes agregados de ventas.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	pdfGen     ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository, pdfGen ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, pdfGen: pdfGen}
}

// TopSellingProducts productos más vendidos, en unidades descendentes.
func (uc *ReportUseCase) TopSellingProducts(ctx context.Context) ([]dto.ProductSalesReportResponse, error) {
	rows, err := uc.reportRepo.TopSellingProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductSalesReportResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductSalesReportResponse{
			ProductID: r.ProductID,
			Title:     r.Title,
			TotalSold: r.TotalSold,
		})
	}
	return out, nil
}

// TopSellingProductsPDF el mismo reporte renderizado como PDF A4.
func (uc *ReportUseCase) TopSellingProductsPDF(ctx context.Context) ([]byte, error) {
	rows, err := uc.reportRepo.TopSellingProducts(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateTopProductsPDF(ctx, rows)
}
