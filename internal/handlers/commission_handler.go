package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trimlyapp/trimly-api/internal/domain/commission"
	"github.com/trimlyapp/trimly-api/internal/httperr"
	"github.com/trimlyapp/trimly-api/internal/middleware"
	"github.com/trimlyapp/trimly-api/internal/models"
)

type CommissionHandler struct {
	db *gorm.DB
}

func NewCommissionHandler(db *gorm.DB) *CommissionHandler {
	return &CommissionHandler{db: db}
}

// --------- Requests ---------

type CommissionRuleRequest struct {
	ServiceID  uint    `json:"service_id" binding:"required"`
	Percentage float64 `json:"percentage" binding:"min=0,max=100"`
}

type UpdateCommissionConfigRequest struct {
	Mode       string                  `json:"mode" binding:"required,oneof=GENERAL SERVICE"`
	Percentage float64                 `json:"percentage" binding:"min=0,max=100"`
	Rules      []CommissionRuleRequest `json:"rules"`
}

// --------- Helpers ---------

// targetMember resolve o membro alvo de /me/staff/:id/commission e aplica
// a regra de acesso: membro comum só enxerga a própria configuração.
func (h *CommissionHandler) targetMember(c *gin.Context, requireOwner bool) (uint, bool) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	parsed, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_user_id"})
		return 0, false
	}
	targetID := uint(parsed)

	if role != "owner" {
		if requireOwner || targetID != userID {
			httperr.Forbidden(c, "owner_only", "Apenas o dono pode gerenciar comissões de outros membros.")
			return 0, false
		}
	}

	var count int64
	h.db.Model(&models.CompanyMember{}).
		Where("company_id = ? AND user_id = ?", companyID, targetID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "member_not_found"})
		return 0, false
	}

	return targetID, true
}

// ======================================================
// GET CONFIG
// GET /me/staff/:id/commission
// ======================================================

func (h *CommissionHandler) GetConfig(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	targetID, ok := h.targetMember(c, false)
	if !ok {
		return
	}

	var cfg models.CommissionConfig
	err := h.db.
		Preload("Rules").
		Preload("Rules.Service").
		Where("company_id = ? AND user_id = ?", companyID, targetID).
		First(&cfg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "commission_config_not_found"})
			return
		}
		httperr.Internal(c, "failed_to_get_commission_config", "Erro ao buscar configuração de comissão.")
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// ======================================================
// UPSERT CONFIG (somente owner)
// PUT /me/staff/:id/commission
// ======================================================

func (h *CommissionHandler) UpdateConfig(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	targetID, ok := h.targetMember(c, true)
	if !ok {
		return
	}

	var req UpdateCommissionConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// Regras só fazem sentido no modo SERVICE, e cada serviço precisa
	// pertencer à empresa.
	if commission.Mode(req.Mode) == commission.ModeService && len(req.Rules) > 0 {
		ids := make([]uint, 0, len(req.Rules))
		for _, r := range req.Rules {
			ids = append(ids, r.ServiceID)
		}

		var count int64
		h.db.Model(&models.Service{}).
			Where("company_id = ? AND id IN ?", companyID, ids).
			Count(&count)
		if count != int64(len(ids)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "service_not_found"})
			return
		}
	}

	var cfg models.CommissionConfig

	err := h.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("company_id = ? AND user_id = ?", companyID, targetID).
			First(&cfg).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			cfg = models.CommissionConfig{
				CompanyID: companyID,
				UserID:    targetID,
			}
		}

		cfg.Mode = req.Mode
		cfg.Percentage = req.Percentage

		if cfg.ID == 0 {
			if err := tx.Create(&cfg).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(&cfg).Error; err != nil {
				return err
			}
			// Substituição integral das regras.
			if err := tx.
				Unscoped().
				Where("commission_config_id = ?", cfg.ID).
				Delete(&models.CommissionRule{}).Error; err != nil {
				return err
			}
		}

		cfg.Rules = nil
		for _, r := range req.Rules {
			rule := models.CommissionRule{
				CommissionConfigID: cfg.ID,
				ServiceID:          r.ServiceID,
				Percentage:         r.Percentage,
			}
			if err := tx.Create(&rule).Error; err != nil {
				return err
			}
			cfg.Rules = append(cfg.Rules, rule)
		}

		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_commission_config", "Erro ao salvar configuração de comissão.")
		return
	}

	c.JSON(http.StatusOK, cfg)
}
