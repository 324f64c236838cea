package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"faregateway/internal/utils"
	"faregateway/internal/vehicle"

	"github.com/phpdave11/gofpdf"
)

// ReportService renders the printable tariff sheet handed out at the airport
// counter. Vehicle data comes through the resilient read path via Loader.
type ReportService struct {
	Loader    func(ctx context.Context) []vehicle.Vehicle
	RequestID string
}

func (s ReportService) GenerateTariffSheet(ctx context.Context) ([]byte, string, error) {
	if s.Loader == nil {
		return nil, "", fmt.Errorf("tariff sheet: no vehicle loader configured")
	}
	list := s.Loader(ctx)
	utils.LogEvent(s.RequestID, "reports", "generate_tariff", fmt.Sprintf("vehicles=%d", len(list)))
	return buildTariffPDF(list)
}

func buildTariffPDF(list []vehicle.Vehicle) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Tariff Sheet", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "TARIFF SHEET")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated "+time.Now().Format("02 Jan 2006 15:04"))
	pdf.Ln(10)

	headers := []string{"Vehicle", "Base Fare", "Per Km", "8Hr/80Km", "10Hr/100Km", "Driver Bata", "Night Halt"}
	widths := []float64{60, 35, 30, 35, 35, 35, 35}

	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, v := range list {
		if !v.IsActive {
			continue
		}
		cells := []string{
			v.Name,
			utils.FormatINR(v.BasePrice),
			utils.FormatINR(v.PricePerKm),
			utils.FormatINR(v.Hr8km80Price),
			utils.FormatINR(v.Hr10km100Price),
			utils.FormatINR(v.DriverAllowance),
			utils.FormatINR(v.NightHaltCharge),
		}
		for i, cell := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Note: outstation trips carry driver bata per day and night halt where applicable. Toll and parking extra.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("tariff-sheet-%s.pdf", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}
