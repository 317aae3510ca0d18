package main

import (
	"fmt"
	"os"

	"github.com/emontalvo/fincaops/internal/access"
	"github.com/emontalvo/fincaops/internal/alerts"
	"github.com/emontalvo/fincaops/internal/auth"
	"github.com/emontalvo/fincaops/internal/config"
	"github.com/emontalvo/fincaops/internal/db"
	"github.com/emontalvo/fincaops/internal/excel"
	httphandler "github.com/emontalvo/fincaops/internal/http"
	"github.com/emontalvo/fincaops/internal/http/middleware"
	"github.com/emontalvo/fincaops/internal/logger"
	"github.com/emontalvo/fincaops/internal/pdf"
	"github.com/emontalvo/fincaops/internal/repository"
	"github.com/emontalvo/fincaops/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	if err := access.Validate(); err != nil {
		log.Fatal().Err(err).Msg("permission table is inconsistent")
	}

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	productionRepo := repository.NewProductionRepository(database)
	payrollRepo := repository.NewPayrollRepository(database)
	inventoryRepo := repository.NewInventoryRepository(database)
	adminRepo := repository.NewAdminRepository(database)
	alertRepo := repository.NewAlertRepository(database)

	deriver := alerts.NewDeriver(alertRepo)

	pdfGenerator, err := pdf.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}
	excelGenerator := excel.NewGenerator()

	productionService := service.NewProductionService(productionRepo)
	payrollService := service.NewPayrollService(payrollRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, deriver, alertRepo, log)
	adminService := service.NewAdminService(adminRepo)
	alertService := service.NewAlertService(alertRepo)
	reportService := service.NewReportService(productionService, payrollService, excelGenerator, pdfGenerator)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(productionService, payrollService, inventoryService, adminService, alertService, reportService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.CORSOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting fincaops service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
