package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "tutorbook/pkg/errors"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{apperrors.Conflict("taken"), "conflict"},
		{apperrors.NotFound("Booking"), "not_found"},
		{errors.New("boom"), "internal_error"},
	}

	for _, tt := range tests {
		if got := Outcome(tt.err); got != tt.want {
			t.Errorf("Outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRecordBooking(t *testing.T) {
	before := testutil.ToFloat64(bookingOperations.WithLabelValues("create", "conflict"))
	RecordBooking("create", "conflict")
	after := testutil.ToFloat64(bookingOperations.WithLabelValues("create", "conflict"))

	if after-before != 1 {
		t.Errorf("conflict counter delta = %v, want 1", after-before)
	}
}

func TestRecordKafkaMessage(t *testing.T) {
	before := testutil.ToFloat64(kafkaMessages.WithLabelValues("publish", "bookings", "error"))
	RecordKafkaMessage("publish", "bookings", time.Millisecond, errors.New("broker down"))
	after := testutil.ToFloat64(kafkaMessages.WithLabelValues("publish", "bookings", "error"))

	if after-before != 1 {
		t.Errorf("error counter delta = %v, want 1", after-before)
	}
}

func TestHandler_ExposesRegistry(t *testing.T) {
	RecordHTTPRequest("GET", "/api/v1/teachers", "200", 10*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tutorbook_http_requests_total") {
		t.Errorf("metrics output missing tutorbook_http_requests_total")
	}
}
