package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/raksha360/backend/internal/config"
	"github.com/raksha360/backend/internal/domain"
	"github.com/raksha360/backend/internal/domain/admin"
	"github.com/raksha360/backend/internal/domain/appointment"
	"github.com/raksha360/backend/internal/domain/doctor"
	"github.com/raksha360/backend/internal/domain/hospital"
	"github.com/raksha360/backend/internal/domain/patient"
	"github.com/raksha360/backend/internal/domain/prescription"
	"github.com/raksha360/backend/internal/domain/ticket"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
		// Surfaces unique violations as gorm.ErrDuplicatedKey so the
		// repositories can map them to AlreadyExists errors.
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	schemas := []string{"clinical", "auth", "ops", "audit"} // logical namespaces
	for _, schema := range schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&patient.Patient{},
		&doctor.Doctor{},
		&hospital.Hospital{},
		&admin.AdminUser{},
		&appointment.Appointment{},
		&prescription.Prescription{},
		&ticket.Ticket{},
		&domain.AuditLog{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	if err := createForeignKeys(db); err != nil {
		return fmt.Errorf("creating foreign keys: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		{
			name:  "idx_tickets_hospital_status",
			query: `CREATE INDEX IF NOT EXISTS idx_tickets_hospital_status ON ops.tickets (hospital_id, status, created_at DESC)`,
		},
		{
			name:  "idx_tickets_open",
			query: `CREATE INDEX IF NOT EXISTS idx_tickets_open ON ops.tickets (created_at DESC) WHERE status IN ('open', 'in_progress')`,
		},
		{
			name:  "idx_prescriptions_patient_created",
			query: `CREATE INDEX IF NOT EXISTS idx_prescriptions_patient_created ON clinical.prescriptions (patient_id, created_at DESC)`,
		},
		{
			name:  "idx_appointments_patient_created",
			query: `CREATE INDEX IF NOT EXISTS idx_appointments_patient_created ON clinical.appointments (patient_id, created_at DESC)`,
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}

// foreignKeys are the referential constraints between the clinical tables.
// AutoMigrate does not emit them for bare uuid columns, so they are applied
// explicitly; duplicate_object makes reruns idempotent.
var foreignKeys = []struct {
	name  string
	query string
}{
	{
		name: "fk_appointments_patient",
		query: `DO $$ BEGIN
			ALTER TABLE clinical.appointments
				ADD CONSTRAINT fk_appointments_patient
				FOREIGN KEY (patient_id) REFERENCES clinical.patients (id);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	},
	{
		name: "fk_appointments_doctor",
		query: `DO $$ BEGIN
			ALTER TABLE clinical.appointments
				ADD CONSTRAINT fk_appointments_doctor
				FOREIGN KEY (doctor_id) REFERENCES clinical.doctors (id);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	},
	{
		name: "fk_prescriptions_patient",
		query: `DO $$ BEGIN
			ALTER TABLE clinical.prescriptions
				ADD CONSTRAINT fk_prescriptions_patient
				FOREIGN KEY (patient_id) REFERENCES clinical.patients (id);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	},
	{
		name: "fk_prescriptions_doctor",
		query: `DO $$ BEGIN
			ALTER TABLE clinical.prescriptions
				ADD CONSTRAINT fk_prescriptions_doctor
				FOREIGN KEY (doctor_id) REFERENCES clinical.doctors (id);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	},
}

func createForeignKeys(db *gorm.DB) error {
	for _, fk := range foreignKeys {
		if err := db.Exec(fk.query).Error; err != nil {
			return fmt.Errorf("creating foreign key %s: %w", fk.name, err)
		}
	}

	return nil
}
