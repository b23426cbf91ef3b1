package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trimlyapp/trimly-api/internal/httperr"
)

// Categoria achatada de erro de domínio: todo BusinessError vira 4xx
// com código snake_case; o resto é 500 genérico.
var businessMessages = map[string]string{
	"professional_not_found":        "Profissional não encontrado.",
	"professional_not_in_company":   "Profissional não pertence à empresa.",
	"company_not_found":             "Empresa não encontrada.",
	"settings_not_configured":       "Configurações da empresa ausentes.",
	"working_hours_not_configured":  "Horário de funcionamento não configurado.",
	"invalid_date":                  "Data inválida.",
	"invalid_date_or_time":          "Data ou hora inválida.",
	"in_the_past":                   "Horário no passado.",
	"not_on_slot_grid":              "Horário fora da grade de agendamento.",
	"outside_working_hours":         "Fora do horário de atendimento.",
	"service_not_found":             "Serviço não encontrado.",
	"product_not_found":             "Produto não encontrado.",
	"insufficient_stock":            "Estoque insuficiente.",
	"client_not_found":              "Cliente não encontrado.",
	"time_conflict":                 "Conflito de horário.",
	"appointment_not_found":         "Agendamento não encontrado.",
	"invalid_state":                 "Transição de status inválida.",
}

func writeBusinessError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	if code, ok := httperr.IsAnyBusiness(err); ok {
		msg := businessMessages[code]
		if msg == "" {
			msg = "Requisição inválida."
		}
		if code == "appointment_not_found" || code == "company_not_found" {
			httperr.NotFound(c, code, msg)
			return
		}
		httperr.BadRequest(c, code, msg)
		return
	}

	httperr.Internal(c, fallbackCode, fallbackMsg)
}
