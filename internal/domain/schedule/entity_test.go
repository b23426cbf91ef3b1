package schedule

import (
	"testing"
	"time"

	"github.com/trimlyapp/trimly-api/internal/httperr"
	"github.com/trimlyapp/trimly-api/internal/models"
)

func TestCancel(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusPending)}
	if err := Cancel(ap, now); err != nil {
		t.Fatalf("Cancel pending: %v", err)
	}
	if ap.Status != string(StatusCanceled) {
		t.Errorf("status = %s, want CANCELED", ap.Status)
	}
	if ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
		t.Errorf("cancelled_at not set")
	}

	// Cancelar de novo é transição inválida.
	err := Cancel(ap, now)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("Cancel canceled = %v, want invalid_state", err)
	}
}

func TestComplete(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusPending)}
	if err := Complete(ap, now); err != nil {
		t.Fatalf("Complete pending: %v", err)
	}
	if ap.Status != string(StatusCompleted) {
		t.Errorf("status = %s, want COMPLETED", ap.Status)
	}
	if ap.CompletedAt == nil {
		t.Errorf("completed_at not set")
	}

	err := Complete(ap, now)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("Complete completed = %v, want invalid_state", err)
	}

	canceled := &models.Appointment{Status: string(StatusCanceled)}
	if err := Complete(canceled, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("Complete canceled = %v, want invalid_state", err)
	}
}
