package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trimlyapp/trimly-api/internal/cache"
	"github.com/trimlyapp/trimly-api/internal/models"
	"github.com/trimlyapp/trimly-api/internal/usecase/appointment"
)

// ======================================================
// PORTAL PÚBLICO (sem autenticação, resolvido por slug)
// ======================================================

type PublicHandler struct {
	db    *gorm.DB
	cache *cache.Cache

	slotsUC  *appointment.GetAvailableSlots
	createUC *appointment.CreateAppointment
	deleteUC *appointment.DeleteAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	cache *cache.Cache,
	slotsUC *appointment.GetAvailableSlots,
	createUC *appointment.CreateAppointment,
	deleteUC *appointment.DeleteAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:       db,
		cache:    cache,
		slotsUC:  slotsUC,
		createUC: createUC,
		deleteUC: deleteUC,
	}
}

// --------- Requests ---------

type PublicCreateAppointmentRequest struct {
	ProfessionalID uint `json:"professional_id" binding:"required"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	Services []AppointmentServiceItem `json:"services"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:MM
	Notes string `json:"notes"`
}

// --------- Helpers ---------

func (h *PublicHandler) companyBySlug(c *gin.Context) (*models.Company, bool) {
	slug := c.Param("slug")

	var company models.Company
	if err := h.db.Where("slug = ?", slug).First(&company).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "company_not_found"})
		return nil, false
	}
	return &company, true
}

// ======================================================
// COMPANY PAGE
// GET /public/:slug
// ======================================================

func (h *PublicHandler) GetCompany(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("company_id = ? AND active = ?", company.ID, true).
		Order("id ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_company"})
		return
	}

	var members []models.CompanyMember
	if err := h.db.
		Preload("User").
		Where("company_id = ?", company.ID).
		Order("id ASC").
		Find(&members).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_company"})
		return
	}

	type publicProfessional struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	professionals := make([]publicProfessional, 0, len(members))
	for _, m := range members {
		professionals = append(professionals, publicProfessional{
			ID:   m.UserID,
			Name: m.User.Name,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"company": gin.H{
			"name":    company.Name,
			"slug":    company.Slug,
			"phone":   company.Phone,
			"address": company.Address,
		},
		"services":      services,
		"professionals": professionals,
	})
}

// ======================================================
// SERVICES
// GET /public/:slug/services
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("company_id = ? AND active = ?", company.ID, true).
		Order("id ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

// ======================================================
// AVAILABILITY (com cache)
// GET /public/:slug/availability?professional_id=&date=
// ======================================================

func (h *PublicHandler) GetAvailability(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	professionalID, err := strconv.ParseUint(c.Query("professional_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_professional_id"})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_date"})
		return
	}

	ctx := c.Request.Context()

	if slots, hit := h.cache.GetSlots(ctx, company.ID, uint(professionalID), date); hit {
		c.JSON(http.StatusOK, gin.H{"slots": slots})
		return
	}

	slots, err := h.slotsUC.Execute(ctx, appointment.AvailableSlotsInput{
		CompanyID:      company.ID,
		ProfessionalID: uint(professionalID),
		Date:           date,
	})
	if err != nil {
		writeBusinessError(c, err, "failed_to_get_slots", "Erro ao buscar horários.")
		return
	}

	h.cache.SetSlots(ctx, company.ID, uint(professionalID), date, slots)

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ======================================================
// CREATE
// POST /public/:slug/appointments
// ======================================================

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	in := appointment.CreateAppointmentInput{
		CompanyID:      company.ID,
		ProfessionalID: req.ProfessionalID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
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

	ap, err := h.createUC.Execute(c.Request.Context(), in)
	if err != nil {
		writeBusinessError(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	h.cache.InvalidateSlots(c.Request.Context(), company.ID, req.ProfessionalID, req.Date)

	// O portal só conhece a referência pública.
	c.JSON(http.StatusCreated, gin.H{
		"public_ref":     ap.PublicRef,
		"scheduled_time": ap.ScheduledTime,
		"status":         ap.Status,
		"value":          ap.Value,
	})
}

// ======================================================
// DELETE BY REF
// DELETE /public/:slug/appointments/:ref
// ======================================================

func (h *PublicHandler) DeleteAppointment(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	ref := c.Param("ref")

	// Carregamos antes para invalidar o cache do dia certo.
	var ap models.Appointment
	known := h.db.
		Where("company_id = ? AND public_ref = ?", company.ID, ref).
		First(&ap).Error == nil

	if err := h.deleteUC.ExecuteByRef(c.Request.Context(), company.ID, ref); err != nil {
		writeBusinessError(c, err, "failed_to_delete_appointment", "Erro ao remover agendamento.")
		return
	}

	if known {
		loc := locationFromCompany(company)
		date := ap.ScheduledTime.In(loc).Format("2006-01-02")
		h.cache.InvalidateSlots(c.Request.Context(), company.ID, ap.UserID, date)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
