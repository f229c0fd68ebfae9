package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveFormOperation_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveFormOperation("wheel_specification", "create", OutcomeSuccess)
	m.ObserveFormOperation("wheel_specification", "create", OutcomeSuccess)
	m.ObserveFormOperation("wheel_specification", "create", OutcomeConflict)

	got := testutil.ToFloat64(m.FormOperations.WithLabelValues("wheel_specification", "create", OutcomeSuccess))
	if got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	got = testutil.ToFloat64(m.FormOperations.WithLabelValues("wheel_specification", "create", OutcomeConflict))
	if got != 1 {
		t.Fatalf("expected 1 conflict, got %v", got)
	}
}

func TestObserveFormOperation_NilReceiver(t *testing.T) {
	var m *Metrics
	m.ObserveFormOperation("bogie_checksheet", "create", OutcomeSuccess)
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveFormOperation("bogie_checksheet", "create", OutcomeSuccess)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "kpa_forms_form_operations_total") {
		t.Fatalf("expected form operations metric in body: %s", w.Body.String())
	}
}
