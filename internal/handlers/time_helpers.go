package handlers

import (
	"time"

	"github.com/trimlyapp/trimly-api/internal/models"
	"github.com/trimlyapp/trimly-api/internal/timezone"
)

// Conversões de data sempre no timezone oficial da empresa — nunca
// round-trip por string de locale.

func locationFromCompany(company *models.Company) *time.Location {
	if company != nil {
		return timezone.Location(company.Timezone)
	}
	return timezone.Location("")
}

func parseDateInCompany(company *models.Company, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromCompany(company),
	)
}
