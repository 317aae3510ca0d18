package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/emontalvo/fincaops/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// ProductionWorkbook builds a summary sheet plus one detail sheet per
// record family for the report year.
func (g *Generator) ProductionWorkbook(report model.ProductionReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Resumen"
	file.SetSheetName("Sheet1", summarySheet)
	g.writeProductionSummary(file, summarySheet, report)

	harvestSheet := "Cosechas"
	file.NewSheet(harvestSheet)
	g.writeHarvestDetail(file, harvestSheet, report.Harvests)

	baggingSheet := "Enfundes"
	file.NewSheet(baggingSheet)
	g.writeBaggingDetail(file, baggingSheet, report.Baggings)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeProductionSummary(file *excelize.File, sheet string, report model.ProductionReport) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	totalBoxes := 0
	totalCut := 0
	totalRejected := 0
	for _, h := range report.Harvests {
		totalBoxes += h.BoxesProduced
		totalCut += h.BunchesCut
		totalRejected += h.BunchesRejected
	}
	totalBags := 0
	for _, b := range report.Baggings {
		totalBags += b.BagCount
	}

	set("A1", "Reporte de producción")
	set("A2", "Año")
	set("B2", report.Year)
	set("A3", "Generado")
	set("B3", formatDateTime(report.GeneratedAt))
	set("A5", "Semanas de cosecha")
	set("B5", len(report.Harvests))
	set("A6", "Racimos cortados")
	set("B6", totalCut)
	set("A7", "Racimos rechazados")
	set("B7", totalRejected)
	set("A8", "Cajas producidas")
	set("B8", totalBoxes)
	set("A9", "Fundas colocadas")
	set("B9", totalBags)

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "B", 18)
}

func (g *Generator) writeHarvestDetail(file *excelize.File, sheet string, records []model.HarvestRecord) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Finca", "Semana", "Año", "Racimos cortados", "Racimos rechazados",
		"Racimos recuperados", "Cajas producidas", "Ratio", "Merma %", "Fecha",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, r := range records {
		row := i + 2
		set(fmt.Sprintf("A%d", row), r.FarmName)
		set(fmt.Sprintf("B%d", row), r.Week)
		set(fmt.Sprintf("C%d", row), r.Year)
		set(fmt.Sprintf("D%d", row), r.BunchesCut)
		set(fmt.Sprintf("E%d", row), r.BunchesRejected)
		set(fmt.Sprintf("F%d", row), r.BunchesRecovered)
		set(fmt.Sprintf("G%d", row), r.BoxesProduced)
		set(fmt.Sprintf("H%d", row), fmt.Sprintf("%.2f", r.Ratio))
		set(fmt.Sprintf("I%d", row), fmt.Sprintf("%.2f", r.WastePct))
		set(fmt.Sprintf("J%d", row), formatDate(r.Date))
	}

	_ = file.SetColWidth(sheet, "A", "A", 16)
	_ = file.SetColWidth(sheet, "B", "I", 14)
	_ = file.SetColWidth(sheet, "J", "J", 14)
}

func (g *Generator) writeBaggingDetail(file *excelize.File, sheet string, records []model.BaggingRecord) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Finca", "Semana", "Año", "Color cinta", "Fundas", "Plantas caídas", "Fecha",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, r := range records {
		row := i + 2
		set(fmt.Sprintf("A%d", row), r.FarmName)
		set(fmt.Sprintf("B%d", row), r.Week)
		set(fmt.Sprintf("C%d", row), r.Year)
		set(fmt.Sprintf("D%d", row), string(r.TapeColor))
		set(fmt.Sprintf("E%d", row), r.BagCount)
		set(fmt.Sprintf("F%d", row), r.FallenPlants)
		set(fmt.Sprintf("G%d", row), formatDate(r.Date))
	}

	_ = file.SetColWidth(sheet, "A", "A", 16)
	_ = file.SetColWidth(sheet, "B", "F", 14)
	_ = file.SetColWidth(sheet, "G", "G", 14)
}

// PayrollWorkbook builds a summary sheet and the per-employee detail
// for one pay week.
func (g *Generator) PayrollWorkbook(report model.PayrollReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Resumen"
	file.SetSheetName("Sheet1", summarySheet)
	g.writePayrollSummary(file, summarySheet, report)

	detailSheet := "Detalle"
	file.NewSheet(detailSheet)
	g.writePayrollDetail(file, detailSheet, report.Records)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writePayrollSummary(file *excelize.File, sheet string, report model.PayrollReport) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Rol de pagos semanal")
	set("A2", "Semana")
	set("B2", report.Week)
	set("A3", "Año")
	set("B3", report.Year)
	set("A4", "Generado")
	set("B4", formatDateTime(report.GeneratedAt))
	set("A6", "Empleados")
	set("B6", len(report.Records))
	set("A7", "Total ingresos")
	set("B7", fmt.Sprintf("%.2f", report.TotalGross))
	set("A8", "Total descuentos")
	set("B8", fmt.Sprintf("%.2f", report.TotalDeductions))
	set("A9", "Total neto a pagar")
	set("B9", fmt.Sprintf("%.2f", report.TotalNet))

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "B", 18)
}

func (g *Generator) writePayrollDetail(file *excelize.File, sheet string, records []model.PayrollRecord) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Empleado", "Finca", "Días", "Sueldo base", "Bono cosecha", "Tareas especiales",
		"Total ingresos", "IESS 9.45%", "Multas", "Préstamos", "Total descuentos",
		"Neto a pagar", "Estado",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, r := range records {
		row := i + 2
		set(fmt.Sprintf("A%d", row), r.EmployeeName)
		set(fmt.Sprintf("B%d", row), r.FarmName)
		set(fmt.Sprintf("C%d", row), r.DaysWorked)
		set(fmt.Sprintf("D%d", row), fmt.Sprintf("%.2f", r.BasePay))
		set(fmt.Sprintf("E%d", row), fmt.Sprintf("%.2f", r.HarvestBonus))
		set(fmt.Sprintf("F%d", row), fmt.Sprintf("%.2f", r.SpecialTaskPay))
		set(fmt.Sprintf("G%d", row), fmt.Sprintf("%.2f", r.Gross))
		set(fmt.Sprintf("H%d", row), fmt.Sprintf("%.2f", r.IESS))
		set(fmt.Sprintf("I%d", row), fmt.Sprintf("%.2f", r.Fines))
		set(fmt.Sprintf("J%d", row), fmt.Sprintf("%.2f", r.LoanDeductions))
		set(fmt.Sprintf("K%d", row), fmt.Sprintf("%.2f", r.TotalDeductions))
		set(fmt.Sprintf("L%d", row), fmt.Sprintf("%.2f", r.NetPay))
		set(fmt.Sprintf("M%d", row), string(r.Status))
	}

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "B", 16)
	_ = file.SetColWidth(sheet, "C", "M", 14)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
