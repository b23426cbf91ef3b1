package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trimlyapp/trimly-api/internal/domain/schedule"
	"github.com/trimlyapp/trimly-api/internal/httperr"
	"github.com/trimlyapp/trimly-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Company
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCompanyByID(
	ctx context.Context,
	id uint,
) (*models.Company, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *AppointmentGormRepository) GetCompanySettings(
	ctx context.Context,
	companyID uint,
) (*models.CompanySettings, error) {

	var settings models.CompanySettings
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *AppointmentGormRepository) ListWorkingHours(
	ctx context.Context,
	companyID uint,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// --------------------------------------------------
// Professional
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AppointmentGormRepository) IsCompanyMember(
	ctx context.Context,
	companyID uint,
	userID uint,
) (bool, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, companyID).Error; err != nil {
		return false, err
	}
	if company.OwnerID == userID {
		return true, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CompanyMember{}).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) ListServicesByIDs(
	ctx context.Context,
	companyID uint,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if len(ids) == 0 {
		return services, nil
	}

	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *AppointmentGormRepository) ListProductsByIDs(
	ctx context.Context,
	companyID uint,
	ids []uint,
) ([]models.Product, error) {

	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}

	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	companyID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", clientID, companyID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	companyID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND phone = ?", companyID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		CompanyID: companyID,
		Name:      name,
		Phone:     phone,
		Email:     email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		// Dois agendamentos simultâneos do mesmo telefone: o índice
		// único em (company_id, phone) deixa só um insert passar;
		// o perdedor relê o cliente que o vencedor criou.
		if httperr.IsUniqueViolation(err) {
			var existing models.Client
			if ferr := r.db.WithContext(ctx).
				Where("company_id = ? AND phone = ?", companyID, phone).
				First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateAppointmentChecked roda o check de sobreposição e o insert na
// mesma transação, com FOR UPDATE sobre os agendamentos vivos do
// profissional. O índice único parcial em (user_id, scheduled_time)
// cobre a corrida restante.
func (r *AppointmentGormRepository) CreateAppointmentChecked(
	ctx context.Context,
	ap *models.Appointment,
	blockEnd time.Time,
	defaultIntervalMin int,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"user_id = ? AND status <> ? AND scheduled_time < ? AND COALESCE(end_scheduled_time, scheduled_time + make_interval(mins => ?)) > ?",
				ap.UserID,
				string(schedule.StatusCanceled),
				blockEnd,
				defaultIntervalMin,
				ap.ScheduledTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		for _, pa := range ap.Products {
			res := tx.
				Model(&models.Product{}).
				Where("id = ? AND stock >= ?", pa.ProductID, pa.Quantity).
				Update("stock", gorm.Expr("stock - ?", pa.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return httperr.ErrBusiness("insufficient_stock")
			}
		}

		if err := tx.Create(ap).Error; err != nil {
			if httperr.IsUniqueConflict(err) {
				return httperr.ErrBusiness("time_conflict")
			}
			return err
		}

		return nil
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForProfessional(
	ctx context.Context,
	appointmentID uint,
	userID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", appointmentID, userID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByRef(
	ctx context.Context,
	companyID uint,
	ref string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND public_ref = ?", companyID, ref).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) SoftDeleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	// gorm.DeletedAt → soft delete
	return r.db.WithContext(ctx).Delete(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListDayAppointments(
	ctx context.Context,
	userID uint,
	companyID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services.Service").
		Where(
			"user_id = ? AND company_id = ? AND status <> ? AND scheduled_time >= ? AND scheduled_time < ?",
			userID, companyID, string(schedule.StatusCanceled), start, end,
		).
		Order("scheduled_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	userID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services.Service").
		Preload("Products.Product").
		Where(
			"user_id = ? AND scheduled_time >= ? AND scheduled_time < ?",
			userID,
			start,
			end,
		).
		Order("scheduled_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ schedule.Repository = (*AppointmentGormRepository)(nil)
