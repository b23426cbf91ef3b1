package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trimlyapp/trimly-api/internal/domain/schedule"
	"github.com/trimlyapp/trimly-api/internal/middleware"
	"github.com/trimlyapp/trimly-api/internal/models"
)

type GoalHandler struct {
	db *gorm.DB
}

func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{db: db}
}

// --------- Requests ---------

type CreateGoalRequest struct {
	Month       int     `json:"month" binding:"required,min=1,max=12"`
	Year        int     `json:"year" binding:"required,min=2000"`
	TargetValue float64 `json:"target_value" binding:"required,gt=0"`
}

type UpdateGoalRequest struct {
	TargetValue *float64 `json:"target_value,omitempty"`
}

// ======================================================
// LIST
// GET /goals?year=2026
// ======================================================

func (h *GoalHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	q := h.db.Where("company_id = ? AND user_id = ?", companyID, userID)

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_year"})
			return
		}
		q = q.Where("year = ?", year)
	}

	var goals []models.Goal
	if err := q.
		Order("year DESC, month DESC").
		Find(&goals).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_goals"})
		return
	}

	c.JSON(http.StatusOK, goals)
}

// ======================================================
// CREATE
// ======================================================

func (h *GoalHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var count int64
	h.db.Model(&models.Goal{}).
		Where("company_id = ? AND user_id = ? AND month = ? AND year = ?",
			companyID, userID, req.Month, req.Year).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal_already_exists"})
		return
	}

	goal := models.Goal{
		CompanyID:   companyID,
		UserID:      userID,
		Month:       req.Month,
		Year:        req.Year,
		TargetValue: req.TargetValue,
	}

	if err := h.db.Create(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_goal"})
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// ======================================================
// UPDATE
// ======================================================

func (h *GoalHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var goal models.Goal
	if err := h.db.
		Where("id = ? AND company_id = ? AND user_id = ?", id, companyID, userID).
		First(&goal).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_goal"})
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.TargetValue != nil {
		if *req.TargetValue <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_target_value"})
			return
		}
		goal.TargetValue = *req.TargetValue
	}

	if err := h.db.Save(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_goal"})
		return
	}

	c.JSON(http.StatusOK, goal)
}

// ======================================================
// DELETE (soft)
// ======================================================

func (h *GoalHandler) Delete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var goal models.Goal
	if err := h.db.
		Where("id = ? AND company_id = ? AND user_id = ?", id, companyID, userID).
		First(&goal).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_goal"})
		return
	}

	if err := h.db.Delete(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// PROGRESS
// GET /goals/:id/progress
// ======================================================

func (h *GoalHandler) Progress(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var goal models.Goal
	if err := h.db.
		Where("id = ? AND company_id = ? AND user_id = ?", id, companyID, userID).
		First(&goal).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_goal"})
		return
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "company_not_found"})
		return
	}

	loc := locationFromCompany(&company)
	start := time.Date(goal.Year, time.Month(goal.Month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	var achieved float64
	if err := h.db.Model(&models.Appointment{}).
		Where("user_id = ? AND company_id = ? AND status = ?",
			userID, companyID, string(schedule.StatusCompleted)).
		Where("scheduled_time >= ? AND scheduled_time < ?", start, end).
		Select("COALESCE(SUM(value), 0)").
		Scan(&achieved).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_compute_progress"})
		return
	}

	percent := 0.0
	if goal.TargetValue > 0 {
		percent = achieved / goal.TargetValue * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"goal":           goal,
		"achieved_value": achieved,
		"percent":        percent,
	})
}
