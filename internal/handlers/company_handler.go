package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trimlyapp/trimly-api/internal/httperr"
	"github.com/trimlyapp/trimly-api/internal/middleware"
	"github.com/trimlyapp/trimly-api/internal/models"
	"github.com/trimlyapp/trimly-api/internal/timezone"
)

type CompanyHandler struct {
	db *gorm.DB
}

func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{db: db}
}

type UpdateCompanyRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	Timezone *string `json:"timezone,omitempty"`

	AppointmentIntervalMin *int `json:"appointment_interval_min,omitempty"`
}

func (h *CompanyHandler) GetMeCompany(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar dados da empresa.")
		return
	}

	var settings models.CompanySettings
	h.db.Where("company_id = ?", companyID).First(&settings)

	c.JSON(http.StatusOK, gin.H{
		"company":  company,
		"settings": settings,
	})
}

func (h *CompanyHandler) UpdateMeCompany(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar dados da empresa.")
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido (use identificador IANA).")
			return
		}
		company.Timezone = *req.Timezone
	}

	if err := h.db.Save(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_update_company", "Erro ao salvar os dados da empresa.")
		return
	}

	var settings models.CompanySettings
	if err := h.db.Where("company_id = ?", companyID).First(&settings).Error; err != nil {
		settings = models.CompanySettings{CompanyID: companyID}
	}

	if req.AppointmentIntervalMin != nil {
		if *req.AppointmentIntervalMin <= 0 || *req.AppointmentIntervalMin > 240 {
			httperr.BadRequest(c, "invalid_interval", "Intervalo da grade deve estar entre 1 e 240 minutos.")
			return
		}
		settings.AppointmentIntervalMin = *req.AppointmentIntervalMin

		if err := h.db.Save(&settings).Error; err != nil {
			httperr.Internal(c, "failed_to_update_settings", "Erro ao salvar configurações.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"company":  company,
		"settings": settings,
	})
}
