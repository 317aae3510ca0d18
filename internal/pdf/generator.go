package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/emontalvo/fincaops/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() (*Generator, error) {
	return &Generator{fontName: "Helvetica"}, nil
}

// PayrollReceipt renders the pay slip handed to the employee for one
// week. Spanish labels go through the cp1252 translator so accented
// characters survive the core font encoding.
func (g *Generator) PayrollReceipt(record model.PayrollRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, tr("Rol de pago semanal"), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Semana %d del año %d", record.Week, record.Year)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Empleado"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(safeValue(record.EmployeeName)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Finca: %s", safeValue(record.FarmName))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Días trabajados: %d", record.DaysWorked)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Ingresos"), "", 1, "L", false, 0, "")
	drawAmountRow(pdf, g.fontName, tr, "Sueldo base", record.BasePay, false)
	drawAmountRow(pdf, g.fontName, tr, "Bono de cosecha", record.HarvestBonus, false)
	drawAmountRow(pdf, g.fontName, tr, "Tareas especiales", record.SpecialTaskPay, false)
	drawAmountRow(pdf, g.fontName, tr, "Total ingresos", record.Gross, true)
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Descuentos"), "", 1, "L", false, 0, "")
	drawAmountRow(pdf, g.fontName, tr, "Aporte IESS (9.45%)", record.IESS, false)
	drawAmountRow(pdf, g.fontName, tr, "Multas", record.Fines, false)
	drawAmountRow(pdf, g.fontName, tr, "Cuotas de préstamos", record.LoanDeductions, false)
	drawAmountRow(pdf, g.fontName, tr, "Total descuentos", record.TotalDeductions, true)
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	drawAmountRow(pdf, g.fontName, tr, "Neto a pagar", record.NetPay, true)
	pdf.Ln(6)

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Estado: %s", string(record.Status))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Emitido: %s", formatDate(time.Now()))), "", 1, "L", false, 0, "")
	pdf.Ln(10)

	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Recibí conforme: ______________________ /%s/", safeValue(record.EmployeeName))), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawAmountRow(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, label string, amount float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	pdf.CellFormat(120, 7, tr(label), "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, fmt.Sprintf("$ %.2f", amount), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}
