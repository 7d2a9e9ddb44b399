package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-admin/internal/domain/appointment"
	clientdomain "github.com/BruksfildServices01/barber-admin/internal/domain/client"
	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/usecase/report"
)

type ReportGormRepository struct {
	*AppointmentGormRepository
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{AppointmentGormRepository: NewAppointmentGormRepository(db)}
}

func (r *ReportGormRepository) CountActiveForDate(
	ctx context.Context,
	barbershopID uint,
	date string,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barbershop_id = ? AND date = ? AND status = ?", barbershopID, date, string(domain.StatusScheduled)).
		Count(&n).Error
	return n, err
}

func (r *ReportGormRepository) confirmed(ctx context.Context, barbershopID uint, fromDate, toDate string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.AppointmentHistory{}).
		Where(
			"barbershop_id = ? AND status = ? AND date >= ? AND date <= ?",
			barbershopID, string(domain.StatusConfirmed), fromDate, toDate,
		)
}

func (r *ReportGormRepository) SumConfirmedValue(
	ctx context.Context,
	barbershopID uint,
	fromDate string,
	toDate string,
) (decimal.Decimal, error) {

	var total decimal.Decimal
	row := r.confirmed(ctx, barbershopID, fromDate, toDate).
		Select("COALESCE(SUM(value), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *ReportGormRepository) CountConfirmed(
	ctx context.Context,
	barbershopID uint,
	fromDate string,
	toDate string,
) (int64, error) {

	var n int64
	err := r.confirmed(ctx, barbershopID, fromDate, toDate).Count(&n).Error
	return n, err
}

func (r *ReportGormRepository) CountActiveProfessionals(
	ctx context.Context,
	barbershopID uint,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Professional{}).
		Where("barbershop_id = ? AND active = ?", barbershopID, true).
		Count(&n).Error
	return n, err
}

func (r *ReportGormRepository) CountActiveClients(
	ctx context.Context,
	barbershopID uint,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("barbershop_id = ? AND status = ?", barbershopID, clientdomain.StatusActive).
		Count(&n).Error
	return n, err
}

var _ report.Repository = (*ReportGormRepository)(nil)
