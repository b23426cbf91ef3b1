package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trimlyapp/trimly-api/internal/domain/commission"
	"github.com/trimlyapp/trimly-api/internal/domain/schedule"
	"github.com/trimlyapp/trimly-api/internal/httperr"
	"github.com/trimlyapp/trimly-api/internal/middleware"
	"github.com/trimlyapp/trimly-api/internal/models"
)

type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

// --------- Helpers ---------

// periodWindow resolve o intervalo [início, fim) do relatório no
// timezone da empresa. Aceita from/to (YYYY-MM-DD, inclusivos) ou
// year/month; sem nada, usa o mês corrente.
func (h *ReportHandler) periodWindow(c *gin.Context, companyID uint) (time.Time, time.Time, bool) {
	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "company_not_found"})
		return time.Time{}, time.Time{}, false
	}

	loc := locationFromCompany(&company)

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr != "" || toStr != "" {
		from, err1 := time.ParseInLocation("2006-01-02", fromStr, loc)
		to, err2 := time.ParseInLocation("2006-01-02", toStr, loc)
		if err1 != nil || err2 != nil || to.Before(from) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_period"})
			return time.Time{}, time.Time{}, false
		}
		return from, to.AddDate(0, 0, 1), true
	}

	now := time.Now().In(loc)
	year := now.Year()
	month := int(now.Month())

	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_year"})
			return time.Time{}, time.Time{}, false
		}
		year = v
	}
	if raw := c.Query("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_month"})
			return time.Time{}, time.Time{}, false
		}
		month = v
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0), true
}

// targetUser aplica a regra de acesso dos relatórios: user_id na query
// só é permitido para o owner; ausente, relata o próprio usuário.
func targetUser(c *gin.Context) (uint, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_user_id"})
			return 0, false
		}
		if uint(parsed) != userID && role != "owner" {
			httperr.Forbidden(c, "owner_only", "Apenas o dono pode ver relatórios de outros membros.")
			return 0, false
		}
		return uint(parsed), true
	}

	return userID, true
}

// ======================================================
// REVENUE
// GET /me/reports/revenue?from=&to=
// Faturamento por dia (somente COMPLETED).
// ======================================================

func (h *ReportHandler) Revenue(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	userID, ok := targetUser(c)
	if !ok {
		return
	}

	start, end, ok := h.periodWindow(c, companyID)
	if !ok {
		return
	}

	var appointments []models.Appointment
	if err := h.db.
		Where("company_id = ? AND user_id = ? AND status = ?",
			companyID, userID, string(schedule.StatusCompleted)).
		Where("scheduled_time >= ? AND scheduled_time < ?", start, end).
		Order("scheduled_time ASC").
		Find(&appointments).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_revenue"})
		return
	}

	loc := start.Location()

	perDay := make(map[string]float64)
	total := 0.0
	for _, ap := range appointments {
		day := ap.ScheduledTime.In(loc).Format("2006-01-02")
		perDay[day] += ap.Value
		total += ap.Value
	}

	type dayRevenue struct {
		Date  string  `json:"date"`
		Value float64 `json:"value"`
	}

	days := make([]dayRevenue, 0, 31)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		days = append(days, dayRevenue{Date: key, Value: perDay[key]})
	}

	c.JSON(http.StatusOK, gin.H{
		"total": total,
		"days":  days,
	})
}

// ======================================================
// STATISTICS
// GET /me/reports/statistics?from=&to=
// ======================================================

func (h *ReportHandler) Statistics(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	userID, ok := targetUser(c)
	if !ok {
		return
	}

	start, end, ok := h.periodWindow(c, companyID)
	if !ok {
		return
	}

	base := h.db.Model(&models.Appointment{}).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		Where("scheduled_time >= ? AND scheduled_time < ?", start, end)

	type statusCount struct {
		Status string
		Total  int64
		Value  float64
	}

	var rows []statusCount
	if err := base.Session(&gorm.Session{}).
		Select("status, COUNT(*) AS total, COALESCE(SUM(value), 0) AS value").
		Group("status").
		Scan(&rows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_statistics"})
		return
	}

	stats := gin.H{
		"total":           int64(0),
		"pending":         int64(0),
		"completed":       int64(0),
		"canceled":        int64(0),
		"completed_value": 0.0,
	}

	var totalCount int64
	for _, r := range rows {
		totalCount += r.Total
		switch schedule.Status(r.Status) {
		case schedule.StatusPending:
			stats["pending"] = r.Total
		case schedule.StatusCompleted:
			stats["completed"] = r.Total
			stats["completed_value"] = r.Value
		case schedule.StatusCanceled:
			stats["canceled"] = r.Total
		}
	}
	stats["total"] = totalCount

	var distinctClients int64
	if err := base.Session(&gorm.Session{}).
		Distinct("client_id").
		Count(&distinctClients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_statistics"})
		return
	}
	stats["distinct_clients"] = distinctClients

	type topService struct {
		ServiceID uint   `json:"service_id"`
		Name      string `json:"name"`
		Bookings  int64  `json:"bookings"`
	}

	var top []topService
	if err := h.db.Model(&models.ServiceAppointment{}).
		Select("service_appointments.service_id, services.name, COUNT(*) AS bookings").
		Joins("JOIN appointments ON appointments.id = service_appointments.appointment_id").
		Joins("JOIN services ON services.id = service_appointments.service_id").
		Where("appointments.company_id = ? AND appointments.user_id = ?", companyID, userID).
		Where("appointments.scheduled_time >= ? AND appointments.scheduled_time < ?", start, end).
		Where("appointments.deleted_at IS NULL").
		Group("service_appointments.service_id, services.name").
		Order("bookings DESC").
		Limit(5).
		Scan(&top).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_statistics"})
		return
	}
	stats["top_services"] = top

	c.JSON(http.StatusOK, stats)
}

// ======================================================
// COMMISSIONS
// GET /me/reports/commissions?user_id=&from=&to=
// Comissão do profissional sobre os COMPLETED do período.
// ======================================================

func (h *ReportHandler) Commissions(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	userID, ok := targetUser(c)
	if !ok {
		return
	}

	start, end, ok := h.periodWindow(c, companyID)
	if !ok {
		return
	}

	var cfg models.CommissionConfig
	err := h.db.
		Preload("Rules").
		Where("company_id = ? AND user_id = ?", companyID, userID).
		First(&cfg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusOK, gin.H{
				"configured": false,
				"total":      0.0,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_commissions"})
		return
	}

	var appointments []models.Appointment
	if err := h.db.
		Preload("Services").
		Preload("Services.Service").
		Where("company_id = ? AND user_id = ? AND status = ?",
			companyID, userID, string(schedule.StatusCompleted)).
		Where("scheduled_time >= ? AND scheduled_time < ?", start, end).
		Find(&appointments).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_commissions"})
		return
	}

	total := commission.Compute(&cfg, appointments)

	c.JSON(http.StatusOK, gin.H{
		"configured":   true,
		"mode":         cfg.Mode,
		"appointments": len(appointments),
		"total":        total,
	})
}
