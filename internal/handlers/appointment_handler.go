package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trimlyapp/trimly-api/internal/cache"
	"github.com/trimlyapp/trimly-api/internal/httpresp"
	"github.com/trimlyapp/trimly-api/internal/middleware"
	"github.com/trimlyapp/trimly-api/internal/models"
	"github.com/trimlyapp/trimly-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db    *gorm.DB
	cache *cache.Cache

	slotsUC    *appointment.GetAvailableSlots
	createUC   *appointment.CreateAppointment
	cancelUC   *appointment.CancelAppointment
	completeUC *appointment.CompleteAppointment
	deleteUC   *appointment.DeleteAppointment
	byDateUC   *appointment.ListAppointmentsByDate
	byMonthUC  *appointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	db *gorm.DB,
	cache *cache.Cache,
	slotsUC *appointment.GetAvailableSlots,
	createUC *appointment.CreateAppointment,
	cancelUC *appointment.CancelAppointment,
	completeUC *appointment.CompleteAppointment,
	deleteUC *appointment.DeleteAppointment,
	byDateUC *appointment.ListAppointmentsByDate,
	byMonthUC *appointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:         db,
		cache:      cache,
		slotsUC:    slotsUC,
		createUC:   createUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		deleteUC:   deleteUC,
		byDateUC:   byDateUC,
		byMonthUC:  byMonthUC,
	}
}

// --------- Requests ---------

type AppointmentServiceItem struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type AppointmentProductItem struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type CreateAppointmentRequest struct {
	ClientID uint `json:"client_id"`

	Services []AppointmentServiceItem `json:"services"`
	Products []AppointmentProductItem `json:"products"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:MM
	Notes string `json:"notes"`
}

// ======================================================
// AVAILABILITY
// GET /me/availability?professional_id=&date=YYYY-MM-DD
// professional_id ausente = agenda do próprio usuário.
// ======================================================

func (h *AppointmentHandler) GetSlots(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	professionalID := userID
	if raw := c.Query("professional_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_professional_id"})
			return
		}
		professionalID = uint(parsed)
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_date"})
		return
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), appointment.AvailableSlotsInput{
		CompanyID:      companyID,
		ProfessionalID: professionalID,
		Date:           date,
	})
	if err != nil {
		writeBusinessError(c, err, "failed_to_get_slots", "Erro ao buscar horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	in := appointment.CreateAppointmentInput{
		CompanyID:      companyID,
		ProfessionalID: userID,
		ClientID:       req.ClientID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
	}
	for _, s := range req.Services {
		in.Services = append(in.Services, appointment.ServiceItem{
			ServiceID: s.ServiceID,
			Quantity:  s.Quantity,
		})
	}
	for _, p := range req.Products {
		in.Products = append(in.Products, appointment.ProductItem{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
		})
	}

	ap, err := h.createUC.Execute(c.Request.Context(), in)
	if err != nil {
		writeBusinessError(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	h.invalidateSlots(c, ap)

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LISTS
// ======================================================

// GET /appointments?date=YYYY-MM-DD
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	dateStr := c.Query("date")

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "company_not_found"})
		return
	}

	date, err := parseDateInCompany(&company, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	out, err := h.byDateUC.Execute(c.Request.Context(), userID, companyID, date)
	if err != nil {
		writeBusinessError(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, out)
}

// GET /appointments/month?year=2026&month=8
func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_period"})
		return
	}

	out, err := h.byMonthUC.Execute(c.Request.Context(), userID, companyID, year, month)
	if err != nil {
		writeBusinessError(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), companyID, userID, uint(id))
	if err != nil {
		writeBusinessError(c, err, "failed_to_cancel_appointment", "Erro ao cancelar agendamento.")
		return
	}

	h.invalidateSlots(c, ap)

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), companyID, userID, uint(id))
	if err != nil {
		writeBusinessError(c, err, "failed_to_complete_appointment", "Erro ao concluir agendamento.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// DELETE (soft)
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	var ap models.Appointment
	if err := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&ap).Error; err == nil {
		defer h.invalidateSlots(c, &ap)
	}

	if err := h.deleteUC.Execute(c.Request.Context(), companyID, userID, uint(id)); err != nil {
		writeBusinessError(c, err, "failed_to_delete_appointment", "Erro ao remover agendamento.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------- Helpers ---------

// invalidateSlots derruba o cache de disponibilidade do dia afetado.
func (h *AppointmentHandler) invalidateSlots(c *gin.Context, ap *models.Appointment) {
	var company models.Company
	if err := h.db.First(&company, ap.CompanyID).Error; err != nil {
		return
	}

	loc := locationFromCompany(&company)
	date := ap.ScheduledTime.In(loc).Format("2006-01-02")

	h.cache.InvalidateSlots(c.Request.Context(), ap.CompanyID, ap.UserID, date)
}
