package db

import (
	"log"
	"time"

	"github.com/trimlyapp/trimly-api/internal/config"
	"github.com/trimlyapp/trimly-api/internal/domain/schedule"
	"github.com/trimlyapp/trimly-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Company{},
		&models.CompanySettings{},
		&models.WorkingHours{},
		&models.User{},
		&models.CompanyMember{},
		&models.Client{},
		&models.Service{},
		&models.Product{},
		&models.Appointment{},
		&models.ServiceAppointment{},
		&models.ProductAppointment{},
		&models.CommissionConfig{},
		&models.CommissionRule{},
		&models.Goal{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE companies
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, cfg.DefaultTimezone)

	db.Exec(`
        UPDATE company_settings
        SET appointment_interval_min = ?
        WHERE appointment_interval_min IS NULL OR appointment_interval_min <= 0
    `, schedule.DefaultIntervalMin)

	// Segunda barreira contra double-booking: índice único parcial
	// sobre (profissional, horário) para agendamentos vivos.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uidx_appointments_user_slot
        ON appointments (user_id, scheduled_time)
        WHERE status <> 'CANCELED' AND deleted_at IS NULL
    `)

	// Telefone é a chave natural do cliente dentro da empresa; o índice
	// fecha a corrida do get-or-create do portal.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uidx_clients_company_phone
        ON clients (company_id, phone)
        WHERE deleted_at IS NULL
    `)

	return db
}
