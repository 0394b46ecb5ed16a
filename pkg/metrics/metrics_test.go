package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRequestEnd(t *testing.T) {
	classificationsTotal.Reset()
	inflight.Set(0)

	RecordRequestStart()
	RecordRequestStart()
	if got := testutil.ToFloat64(inflight); got != 2 {
		t.Errorf("Expected 2 in flight, got %f", got)
	}

	RecordRequestEnd(OutcomeSuccess, 120*time.Millisecond)
	RecordRequestEnd(OutcomeNoFace, 80*time.Millisecond)

	if got := testutil.ToFloat64(inflight); got != 0 {
		t.Errorf("Expected 0 in flight, got %f", got)
	}
	if got := testutil.ToFloat64(classificationsTotal.WithLabelValues(OutcomeSuccess)); got != 1 {
		t.Errorf("Expected 1 success, got %f", got)
	}
	if got := testutil.ToFloat64(classificationsTotal.WithLabelValues(OutcomeNoFace)); got != 1 {
		t.Errorf("Expected 1 no_face, got %f", got)
	}
}

func TestRecordDropped(t *testing.T) {
	droppedTotal.Reset()

	RecordDropped(DropSuperseded)
	RecordDropped(DropSuperseded)
	RecordDropped(DropInactive)

	if got := testutil.ToFloat64(droppedTotal.WithLabelValues(DropSuperseded)); got != 2 {
		t.Errorf("Expected 2 superseded, got %f", got)
	}
	if got := testutil.ToFloat64(droppedTotal.WithLabelValues(DropInactive)); got != 1 {
		t.Errorf("Expected 1 inactive, got %f", got)
	}
}

func TestGauges(t *testing.T) {
	SetSessionActive(true)
	if got := testutil.ToFloat64(sessionActive); got != 1 {
		t.Errorf("Expected session active 1, got %f", got)
	}
	SetSessionActive(false)
	if got := testutil.ToFloat64(sessionActive); got != 0 {
		t.Errorf("Expected session active 0, got %f", got)
	}

	SetBackendReady(true)
	if got := testutil.ToFloat64(backendReady); got != 1 {
		t.Errorf("Expected backend ready 1, got %f", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := NewRegistry()
	RecordTick()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, name := range []string{"emocam_poll_ticks_total", "emocam_session_active", "go_goroutines"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("Expected %s in exposition", name)
		}
	}
}
