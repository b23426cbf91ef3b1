package schedule

import (
	"context"
	"time"

	"github.com/trimlyapp/trimly-api/internal/models"
)

type Repository interface {
	// -------- Company --------
	GetCompanyByID(
		ctx context.Context,
		id uint,
	) (*models.Company, error)

	GetCompanySettings(
		ctx context.Context,
		companyID uint,
	) (*models.CompanySettings, error)

	ListWorkingHours(
		ctx context.Context,
		companyID uint,
	) ([]models.WorkingHours, error)

	// -------- Professional --------
	GetProfessional(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	IsCompanyMember(
		ctx context.Context,
		companyID uint,
		userID uint,
	) (bool, error)

	// -------- Catalog --------
	ListServicesByIDs(
		ctx context.Context,
		companyID uint,
		ids []uint,
	) ([]models.Service, error)

	ListProductsByIDs(
		ctx context.Context,
		companyID uint,
		ids []uint,
	) ([]models.Product, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		companyID uint,
		clientID uint,
	) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		companyID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	// Check de conflito + insert na mesma transação (FOR UPDATE).
	CreateAppointmentChecked(
		ctx context.Context,
		ap *models.Appointment,
		blockEnd time.Time,
		defaultIntervalMin int,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForProfessional(
		ctx context.Context,
		appointmentID uint,
		userID uint,
	) (*models.Appointment, error)

	GetAppointmentByRef(
		ctx context.Context,
		companyID uint,
		ref string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	SoftDeleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListDayAppointments(
		ctx context.Context,
		userID uint,
		companyID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		userID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
