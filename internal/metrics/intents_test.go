package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRecordIntent(t *testing.T) {
	before := GetIntentStats()["setmood"]

	RecordIntent("setmood", nil)
	RecordIntent("setmood", nil)
	RecordIntent("setmood", errors.New("unsupported mood"))

	got := GetIntentStats()["setmood"]
	if got.OK-before.OK != 2 {
		t.Errorf("OK delta = %d, want 2", got.OK-before.OK)
	}
	if got.Errors-before.Errors != 1 {
		t.Errorf("Errors delta = %d, want 1", got.Errors-before.Errors)
	}
}

func TestGetIntentStatsReturnsCopy(t *testing.T) {
	RecordIntent("powerdown", nil)

	s := GetIntentStats()
	entry := s["powerdown"]
	entry.OK = 999
	s["powerdown"] = entry

	if GetIntentStats()["powerdown"].OK == 999 {
		t.Error("stats were modified through returned map")
	}
}

func TestSetCurrentPattern(t *testing.T) {
	SetCurrentPattern("1000")
	SetCurrentPattern("0001")

	if got := CurrentPattern(); got != "0001" {
		t.Errorf("CurrentPattern() = %q, want 0001", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordIntent("turnonled", nil)
	ObserveBackend("apply", time.Now(), nil)
	SetCurrentPattern("1010")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	text := string(body)
	for _, want := range []string{
		"ledintent_intent_requests_total",
		"ledintent_backend_requests_total",
		"ledintent_backend_request_duration_seconds",
		`ledintent_leds_current_pattern_info{pattern="1010"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
