package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/trimlyapp/trimly-api/internal/httperr"
	"github.com/trimlyapp/trimly-api/internal/middleware"
	"github.com/trimlyapp/trimly-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

// --------- Requests ---------

type AddStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

// ======================================================
// LIST
// ======================================================

func (h *StaffHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var members []models.CompanyMember
	if err := h.db.
		Preload("User").
		Where("company_id = ?", companyID).
		Order("id ASC").
		Find(&members).Error; err != nil {

		httperr.Internal(c, "failed_to_list_staff", "Erro ao listar equipe.")
		return
	}

	c.JSON(http.StatusOK, members)
}

// ======================================================
// ADD MEMBER (somente owner)
// ======================================================

func (h *StaffHandler) Add(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if role != "owner" {
		httperr.Forbidden(c, "owner_only", "Apenas o dono pode adicionar membros.")
		return
	}

	var req AddStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := h.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			httperr.Internal(c, "failed_to_add_staff", "Erro ao adicionar membro.")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Erro ao criar usuário.")
			return
		}

		user = models.User{
			Name:         req.Name,
			Email:        email,
			PasswordHash: string(hashed),
			Phone:        req.Phone,
		}
		if err := h.db.Create(&user).Error; err != nil {
			httperr.Internal(c, "failed_to_create_user", "Erro ao criar usuário.")
			return
		}
	}

	var count int64
	h.db.Model(&models.CompanyMember{}).
		Where("company_id = ? AND user_id = ?", companyID, user.ID).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "already_member", "Usuário já faz parte da equipe.")
		return
	}

	member := models.CompanyMember{
		CompanyID: companyID,
		UserID:    user.ID,
		Role:      "member",
	}
	if err := h.db.Create(&member).Error; err != nil {
		httperr.Internal(c, "failed_to_add_staff", "Erro ao adicionar membro.")
		return
	}

	member.User = user
	c.JSON(http.StatusCreated, member)
}
