package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emontalvo/fincaops/internal/access"
	"github.com/emontalvo/fincaops/internal/model"
)

type ExcelGenerator interface {
	ProductionWorkbook(r model.ProductionReport) ([]byte, error)
	PayrollWorkbook(r model.PayrollReport) ([]byte, error)
}

type PDFGenerator interface {
	PayrollReceipt(r model.PayrollRecord) ([]byte, error)
}

// ReportService builds export files on top of the scoped services, so
// an export can never contain a record its caller could not list.
type ReportService struct {
	production *ProductionService
	payroll    *PayrollService
	excel      ExcelGenerator
	pdf        PDFGenerator
	now        func() time.Time
}

func NewReportService(production *ProductionService, payroll *PayrollService, excel ExcelGenerator, pdf PDFGenerator) *ReportService {
	return &ReportService{
		production: production,
		payroll:    payroll,
		excel:      excel,
		pdf:        pdf,
		now:        time.Now,
	}
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *ReportService) requireReports(p model.Principal) error {
	if !access.CanAccess(p.Role, model.ModuleReports, access.ActionView) {
		return fmt.Errorf("%w: reportes view", ErrPermissionDenied)
	}
	return nil
}

// ExportProduction writes the production workbook for one year.
func (s *ReportService) ExportProduction(ctx context.Context, p model.Principal, year int) (*ExportResult, error) {
	if err := s.requireReports(p); err != nil {
		return nil, err
	}
	harvests, err := s.production.ListHarvests(ctx, p)
	if err != nil {
		return nil, err
	}
	baggings, err := s.production.ListBagging(ctx, p)
	if err != nil {
		return nil, err
	}

	report := model.ProductionReport{
		Year:        year,
		GeneratedAt: s.now(),
	}
	for _, h := range harvests {
		if h.Year == year {
			report.Harvests = append(report.Harvests, h)
		}
	}
	for _, b := range baggings {
		if b.Year == year {
			report.Baggings = append(report.Baggings, b)
		}
	}

	content, err := s.excel.ProductionWorkbook(report)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("produccion-%d.xlsx", year),
		Content:  content,
	}, nil
}

// ExportPayroll writes the payroll workbook for one pay week.
func (s *ReportService) ExportPayroll(ctx context.Context, p model.Principal, week, year int) (*ExportResult, error) {
	if err := s.requireReports(p); err != nil {
		return nil, err
	}
	if !validWeek(week) {
		return nil, fmt.Errorf("%w: week must be 1-53", ErrInvalidState)
	}
	records, err := s.payroll.ListPayrolls(ctx, p)
	if err != nil {
		return nil, err
	}

	report := model.PayrollReport{
		Week:        week,
		Year:        year,
		GeneratedAt: s.now(),
	}
	gross, total, net := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range records {
		if r.Week != week || r.Year != year {
			continue
		}
		report.Records = append(report.Records, r)
		gross = gross.Add(decimal.NewFromFloat(r.Gross))
		total = total.Add(decimal.NewFromFloat(r.TotalDeductions))
		net = net.Add(decimal.NewFromFloat(r.NetPay))
	}
	report.TotalGross, _ = gross.Round(2).Float64()
	report.TotalDeductions, _ = total.Round(2).Float64()
	report.TotalNet, _ = net.Round(2).Float64()

	content, err := s.excel.PayrollWorkbook(report)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("nomina-s%02d-%d.xlsx", week, year),
		Content:  content,
	}, nil
}

// ExportPayrollReceipt writes the PDF receipt of one payroll record.
func (s *ReportService) ExportPayrollReceipt(ctx context.Context, p model.Principal, payrollID uuid.UUID) (*ExportResult, error) {
	if err := s.requireReports(p); err != nil {
		return nil, err
	}
	if !access.CanAccess(p.Role, model.ModulePayroll, access.ActionView) {
		return nil, fmt.Errorf("%w: nomina view", ErrPermissionDenied)
	}
	r, err := s.payroll.repo.GetPayroll(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: payroll record %s", ErrNotFound, payrollID)
	}
	if !access.Visible(p, model.ModulePayroll, &r.FarmID) {
		return nil, fmt.Errorf("%w: farm outside principal scope", ErrPermissionDenied)
	}

	content, err := s.pdf.PayrollReceipt(*r)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("rol-pago-s%02d-%d-%s.pdf", r.Week, r.Year, payrollID),
		Content:  content,
	}, nil
}
