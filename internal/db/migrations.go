package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS farms (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(32) NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		hectares NUMERIC(10,2) NOT NULL,
		total_plants INTEGER NOT NULL DEFAULT 0,
		variety VARCHAR(32) NOT NULL DEFAULT 'Cavendish',
		responsible VARCHAR(128) NOT NULL DEFAULT '',
		phone VARCHAR(32) NOT NULL DEFAULT '',
		geometry TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_farms_name ON farms (name);`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) NOT NULL,
		name VARCHAR(128) NOT NULL,
		role VARCHAR(32) NOT NULL,
		assigned_farm_id UUID REFERENCES farms(id),
		phone VARCHAR(32) NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email ON users (email);`,
	`CREATE TABLE IF NOT EXISTS bagging_records (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		farm_id UUID NOT NULL REFERENCES farms(id),
		week INTEGER NOT NULL,
		year INTEGER NOT NULL,
		tape_color VARCHAR(16) NOT NULL,
		bag_count INTEGER NOT NULL,
		fallen_plants INTEGER NOT NULL DEFAULT 0,
		date DATE NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_bagging_farm ON bagging_records (farm_id);`,
	`CREATE INDEX IF NOT EXISTS idx_bagging_week ON bagging_records (year, week);`,
	`CREATE TABLE IF NOT EXISTS harvest_records (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		farm_id UUID NOT NULL REFERENCES farms(id),
		week INTEGER NOT NULL,
		year INTEGER NOT NULL,
		bunches_cut INTEGER NOT NULL,
		bunches_rejected INTEGER NOT NULL,
		bunches_recovered INTEGER NOT NULL,
		boxes_produced INTEGER NOT NULL,
		average_weight NUMERIC(10,2) NOT NULL DEFAULT 0,
		caliber NUMERIC(10,2) NOT NULL DEFAULT 0,
		hands INTEGER NOT NULL DEFAULT 0,
		ratio NUMERIC(10,4) NOT NULL,
		waste_pct NUMERIC(10,4) NOT NULL,
		date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_harvest_farm ON harvest_records (farm_id);`,
	`CREATE INDEX IF NOT EXISTS idx_harvest_week ON harvest_records (year, week);`,
	`CREATE TABLE IF NOT EXISTS tape_recoveries (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		farm_id UUID NOT NULL REFERENCES farms(id),
		week INTEGER NOT NULL,
		year INTEGER NOT NULL,
		initial_bags INTEGER NOT NULL,
		first_cal_harvest INTEGER NOT NULL DEFAULT 0,
		first_cal_balance INTEGER NOT NULL DEFAULT 0,
		second_cal_harvest INTEGER NOT NULL DEFAULT 0,
		second_cal_balance INTEGER NOT NULL DEFAULT 0,
		third_cal_harvest INTEGER NOT NULL DEFAULT 0,
		third_cal_balance INTEGER NOT NULL DEFAULT 0,
		final_sweep INTEGER NOT NULL DEFAULT 0,
		recovery_pct NUMERIC(10,4) NOT NULL,
		date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_tape_recovery_farm ON tape_recoveries (farm_id);`,
	`CREATE TABLE IF NOT EXISTS employees (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		farm_id UUID NOT NULL REFERENCES farms(id),
		name VARCHAR(128) NOT NULL,
		national_id VARCHAR(32) NOT NULL,
		labor VARCHAR(32) NOT NULL,
		daily_rate NUMERIC(10,2) NOT NULL,
		hire_date DATE NOT NULL,
		bank_account VARCHAR(64) NOT NULL DEFAULT '',
		phone VARCHAR(32) NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_employees_national_id ON employees (national_id);`,
	`CREATE INDEX IF NOT EXISTS idx_employees_farm ON employees (farm_id);`,
	`CREATE TABLE IF NOT EXISTS payroll_records (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		employee_id UUID NOT NULL REFERENCES employees(id),
		farm_id UUID NOT NULL REFERENCES farms(id),
		week INTEGER NOT NULL,
		year INTEGER NOT NULL,
		days_worked INTEGER NOT NULL,
		base_pay NUMERIC(12,2) NOT NULL,
		harvest_bonus NUMERIC(12,2) NOT NULL DEFAULT 0,
		special_task_pay NUMERIC(12,2) NOT NULL DEFAULT 0,
		gross NUMERIC(12,2) NOT NULL,
		iess NUMERIC(12,2) NOT NULL,
		fines NUMERIC(12,2) NOT NULL DEFAULT 0,
		loan_deductions NUMERIC(12,2) NOT NULL DEFAULT 0,
		total_deductions NUMERIC(12,2) NOT NULL,
		net_pay NUMERIC(12,2) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'pendiente',
		loans_applied BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_payroll_employee ON payroll_records (employee_id);`,
	`CREATE INDEX IF NOT EXISTS idx_payroll_week ON payroll_records (year, week);`,
	`CREATE TABLE IF NOT EXISTS loans (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		employee_id UUID NOT NULL REFERENCES employees(id),
		farm_id UUID NOT NULL REFERENCES farms(id),
		principal NUMERIC(12,2) NOT NULL,
		disbursement_date DATE NOT NULL,
		installments INTEGER NOT NULL,
		installment_value NUMERIC(12,2) NOT NULL,
		installments_paid INTEGER NOT NULL DEFAULT 0,
		outstanding NUMERIC(12,2) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'activo',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_loans_employee ON loans (employee_id);`,
	`CREATE INDEX IF NOT EXISTS idx_loans_status ON loans (status);`,
	`CREATE TABLE IF NOT EXISTS supplies (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		farm_id UUID REFERENCES farms(id),
		name VARCHAR(128) NOT NULL,
		category VARCHAR(32) NOT NULL,
		supplier VARCHAR(128) NOT NULL DEFAULT '',
		unit VARCHAR(16) NOT NULL,
		current_stock NUMERIC(12,3) NOT NULL,
		minimum_stock NUMERIC(12,3) NOT NULL,
		maximum_stock NUMERIC(12,3) NOT NULL,
		unit_price NUMERIC(12,4) NOT NULL DEFAULT 0,
		expiry_date DATE,
		order_placed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_supplies_farm ON supplies (farm_id) WHERE farm_id IS NOT NULL;`,
	`CREATE TABLE IF NOT EXISTS inventory_movements (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		supply_id UUID NOT NULL REFERENCES supplies(id) ON DELETE CASCADE,
		farm_id UUID REFERENCES farms(id),
		type VARCHAR(16) NOT NULL,
		quantity NUMERIC(12,3) NOT NULL,
		date DATE NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		responsible_id UUID REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_movements_supply ON inventory_movements (supply_id);`,
	`CREATE TABLE IF NOT EXISTS alerts (
		id TEXT PRIMARY KEY,
		type VARCHAR(16) NOT NULL,
		module VARCHAR(32) NOT NULL,
		title VARCHAR(128) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL,
		read BOOLEAN NOT NULL DEFAULT FALSE,
		required_action TEXT NOT NULL DEFAULT '',
		farm_id UUID REFERENCES farms(id) ON DELETE SET NULL,
		allowed_roles TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_module ON alerts (module);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
