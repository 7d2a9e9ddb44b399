package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) ListBarbershops(
	ctx context.Context,
) ([]models.Barbershop, error) {

	var shops []models.Barbershop
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	barbershopID uint,
	professionalID uint,
) (*models.Professional, error) {

	var prof models.Professional
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", professionalID, barbershopID).
		First(&prof).Error; err != nil {
		return nil, err
	}
	return &prof, nil
}

func (r *AppointmentGormRepository) ListServices(
	ctx context.Context,
	barbershopID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *AppointmentGormRepository) GetBusinessHours(
	ctx context.Context,
	barbershopID uint,
	weekday int,
) (*models.BusinessHours, error) {

	var wh models.BusinessHours
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND weekday = ?", barbershopID, weekday).
		First(&wh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

// --------------------------------------------------
// Appointment (active)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	barbershopID uint,
	appointmentID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", appointmentID, barbershopID).
		First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	barbershopID uint,
	professionalID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND professional_id = ? AND date = ? AND status = ?",
			barbershopID, professionalID, date, string(domain.StatusScheduled),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListActive(
	ctx context.Context,
	barbershopID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("date ASC, start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barbershopID uint,
	fromDate string,
	toDate string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND date >= ? AND date <= ?", barbershopID, fromDate, toDate).
		Order("date ASC, start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListCreatedSince(
	ctx context.Context,
	since time.Time,
	limit int,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// lockProfessional serializa as escritas na agenda de um profissional.
func lockProfessional(tx *gorm.DB, barbershopID, professionalID uint) error {
	var prof models.Professional
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND barbershop_id = ?", professionalID, barbershopID).
		First(&prof).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("professional_not_found")
	}
	return err
}

// assertNoOverlap compara "HH:MM" como texto; o formato fixo mantém a ordem.
func assertNoOverlap(tx *gorm.DB, ap *models.Appointment) error {
	var count int64
	if err := tx.
		Model(&models.Appointment{}).
		Where(
			"barbershop_id = ? AND professional_id = ? AND date = ? AND status = ? AND id <> ? AND start_time < ? AND end_time > ?",
			ap.BarbershopID,
			ap.ProfessionalID,
			ap.Date,
			string(domain.StatusScheduled),
			ap.ID,
			ap.EndTime,
			ap.StartTime,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}
	return nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProfessional(tx, ap.BarbershopID, ap.ProfessionalID); err != nil {
			return err
		}
		if err := assertNoOverlap(tx, ap); err != nil {
			return err
		}
		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProfessional(tx, ap.BarbershopID, ap.ProfessionalID); err != nil {
			return err
		}
		if err := assertNoOverlap(tx, ap); err != nil {
			return err
		}

		res := tx.
			Model(&models.Appointment{}).
			Where("id = ? AND barbershop_id = ? AND status = ?", ap.ID, ap.BarbershopID, string(domain.StatusScheduled)).
			Updates(map[string]any{
				"professional_id": ap.ProfessionalID,
				"client_name":     ap.ClientName,
				"client_phone":    ap.ClientPhone,
				"client_tax_id":   ap.ClientTaxID,
				"service":         ap.Service,
				"service_ids":     ap.ServiceIDs,
				"date":            ap.Date,
				"start_time":      ap.StartTime,
				"end_time":        ap.EndTime,
				"value":           ap.Value,
				"notes":           ap.Notes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("appointment_not_found")
		}
		return nil
	})
}

func (r *AppointmentGormRepository) SetClientConfirmed(
	ctx context.Context,
	barbershopID uint,
	appointmentID string,
	confirmed bool,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND barbershop_id = ?", appointmentID, barbershopID).
		Update("client_confirmed", confirmed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("appointment_not_found")
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	barbershopID uint,
	appointmentID string,
) error {

	return r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", appointmentID, barbershopID).
		Delete(&models.Appointment{}).Error
}

// --------------------------------------------------
// History
// --------------------------------------------------

func (r *AppointmentGormRepository) InsertHistory(
	ctx context.Context,
	h *models.AppointmentHistory,
) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *AppointmentGormRepository) ListHistoryForPeriod(
	ctx context.Context,
	barbershopID uint,
	fromDate string,
	toDate string,
) ([]models.AppointmentHistory, error) {

	var rows []models.AppointmentHistory
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND date >= ? AND date <= ?", barbershopID, fromDate, toDate).
		Order("date ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentGormRepository) ClosedAppointmentIDs(
	ctx context.Context,
	barbershopID uint,
	appointmentIDs []string,
) (map[string]bool, error) {

	out := map[string]bool{}
	if len(appointmentIDs) == 0 {
		return out, nil
	}

	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.AppointmentHistory{}).
		Where("barbershop_id = ? AND appointment_id IN ?", barbershopID, appointmentIDs).
		Pluck("appointment_id", &ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
