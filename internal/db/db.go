package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
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
		&models.Shop{},
		&models.User{},
		&models.ScheduleBlock{},
		&models.ScheduleException{},
		&models.Service{},
		&models.ServiceModifier{},
		&models.Customer{},
		&models.CustomerTag{},
		&models.Booking{},
		&models.BookingService{},
		&models.BookingModifier{},
		&models.BookingLink{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Índice único parcial: só reservas vivas disputam a chave.
	// Cancelar libera o horário sem apagar a linha.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_bookings_active_slot
        ON bookings (shop_id, booking_date, start_time)
        WHERE status <> 'cancelled'
    `)

	db.Exec(`
        UPDATE shops
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
