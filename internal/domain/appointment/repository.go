package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarbershopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	ListBarbershops(
		ctx context.Context,
	) ([]models.Barbershop, error)

	// -------- Catalog --------
	GetProfessional(
		ctx context.Context,
		barbershopID uint,
		professionalID uint,
	) (*models.Professional, error)

	ListServices(
		ctx context.Context,
		barbershopID uint,
	) ([]models.Service, error)

	// GetBusinessHours devolve nil sem erro quando o dia não tem cadastro.
	GetBusinessHours(
		ctx context.Context,
		barbershopID uint,
		weekday int,
	) (*models.BusinessHours, error)

	// -------- Appointment (active) --------
	GetAppointment(
		ctx context.Context,
		barbershopID uint,
		appointmentID string,
	) (*models.Appointment, error)

	ListAppointmentsForDay(
		ctx context.Context,
		barbershopID uint,
		professionalID uint,
		date string,
	) ([]models.Appointment, error)

	ListActive(
		ctx context.Context,
		barbershopID uint,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barbershopID uint,
		fromDate string,
		toDate string,
	) ([]models.Appointment, error)

	ListCreatedSince(
		ctx context.Context,
		since time.Time,
		limit int,
	) ([]models.Appointment, error)

	// CreateAppointment e RescheduleAppointment rechecam conflito dentro da
	// transação, com o profissional travado; conflito vira "time_conflict".
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	SetClientConfirmed(
		ctx context.Context,
		barbershopID uint,
		appointmentID string,
		confirmed bool,
	) error

	DeleteAppointment(
		ctx context.Context,
		barbershopID uint,
		appointmentID string,
	) error

	// -------- History --------
	InsertHistory(
		ctx context.Context,
		h *models.AppointmentHistory,
	) error

	ListHistoryForPeriod(
		ctx context.Context,
		barbershopID uint,
		fromDate string,
		toDate string,
	) ([]models.AppointmentHistory, error)

	ClosedAppointmentIDs(
		ctx context.Context,
		barbershopID uint,
		appointmentIDs []string,
	) (map[string]bool, error)
}
