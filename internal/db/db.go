package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-admin/internal/config"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

// notifyTrigger avisa o change feed (canal agendamentos_changes) a cada
// agendamento inserido. Um comando por Exec: PrepareStmt não aceita vários.
var notifyTrigger = []string{
	`CREATE OR REPLACE FUNCTION notify_appointment_created() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify(
		'agendamentos_changes',
		json_build_object('id', NEW.id, 'barbershop_id', NEW.barbershop_id)::text
	);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS appointments_notify_insert ON appointments`,
	`CREATE TRIGGER appointments_notify_insert
	AFTER INSERT ON appointments
	FOR EACH ROW EXECUTE FUNCTION notify_appointment_created()`,
}

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

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE barbershops
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}

// Migrate cria as tabelas e tenta instalar o trigger de NOTIFY. Sem o
// trigger o change feed segue só com polling.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.Professional{},
		&models.Service{},
		&models.BusinessHours{},
		&models.Client{},
		&models.Appointment{},
		&models.AppointmentHistory{},
		&models.Setting{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	for _, stmt := range notifyTrigger {
		if err := db.Exec(stmt).Error; err != nil {
			log.Printf("notify trigger not installed, polling only: %v", err)
			break
		}
	}
	return nil
}
