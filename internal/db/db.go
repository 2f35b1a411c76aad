package db

import (
	"log"
	"time"

	"github.com/glowdesk/salon-scheduler/internal/config"
	"github.com/glowdesk/salon-scheduler/internal/models"
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
		&models.Salon{},
		&models.User{},
		&models.Service{},
		&models.WorkingWindow{},
		&models.Client{},
		&models.Appointment{},
		&models.Payment{},
		&models.GiftCard{},
		&models.InventoryItem{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE salons
        SET timezone = 'America/New_York'
        WHERE timezone IS NULL OR timezone = ''
    `)

	mustBackstop(db)

	return db
}

// Colunas time.Time migram como timestamptz, então o range é tstzrange.
const appointmentsNoOverlapDDL = `
    ALTER TABLE appointments
    ADD CONSTRAINT appointments_no_overlap
    EXCLUDE USING gist (
        staff_id WITH =,
        tstzrange(start_time, end_time) WITH &&
    )
    WHERE (status = 'scheduled')
`

// mustBackstop instala a exclusion constraint: dois agendamentos
// "scheduled" do mesmo profissional nunca se sobrepõem, mesmo sob
// corrida entre requests. Sem ela a checagem em transação fica sem
// rede de proteção, então falha de DDL aborta o boot.
func mustBackstop(db *gorm.DB) {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to enable btree_gist: %v", err)
	}

	if err := db.Exec(`
        ALTER TABLE appointments
        DROP CONSTRAINT IF EXISTS appointments_no_overlap
    `).Error; err != nil {
		log.Fatalf("failed to reset overlap constraint: %v", err)
	}

	if err := db.Exec(appointmentsNoOverlapDDL).Error; err != nil {
		log.Fatalf("failed to install overlap constraint: %v", err)
	}
}
