package repository

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-admin/internal/domain/client"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func keyed(q *gorm.DB, key client.Key, phoneCol, taxCol string) *gorm.DB {
	if key.Phone != "" {
		return q.Where(phoneCol+" = ?", key.Phone)
	}
	return q.Where(taxCol+" = ?", key.TaxID)
}

func (r *ClientGormRepository) ConfirmedStats(
	ctx context.Context,
	barbershopID uint,
	key client.Key,
) (client.Stats, error) {

	var row struct {
		Confirmed int
		FirstDate sql.NullString
		LastDate  sql.NullString
	}

	q := r.db.WithContext(ctx).
		Model(&models.AppointmentHistory{}).
		Where("barbershop_id = ? AND status = ?", barbershopID, "confirmed")
	q = keyed(q, key, "client_phone", "client_tax_id")

	if err := q.
		Select("COUNT(*) AS confirmed, MIN(date) AS first_date, MAX(date) AS last_date").
		Scan(&row).Error; err != nil {
		return client.Stats{}, err
	}

	return client.Stats{
		Confirmed: row.Confirmed,
		FirstDate: row.FirstDate.String,
		LastDate:  row.LastDate.String,
	}, nil
}

func (r *ClientGormRepository) FindClient(
	ctx context.Context,
	barbershopID uint,
	key client.Key,
) (*models.Client, error) {

	var c models.Client
	q := r.db.WithContext(ctx).Where("barbershop_id = ?", barbershopID)
	err := keyed(q, key, "phone", "tax_id").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientGormRepository) CreateClient(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientGormRepository) UpdateClient(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ClientGormRepository) GetSetting(
	ctx context.Context,
	barbershopID uint,
	key string,
) (string, bool, error) {

	var s models.Setting
	err := r.db.WithContext(ctx).
		Where(`barbershop_id = ? AND "key" = ?`, barbershopID, key).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return s.Value, true, nil
}

var _ client.Repository = (*ClientGormRepository)(nil)
