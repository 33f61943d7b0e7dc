package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEngineMetrics_RegistersAndServes(t *testing.T) {
	m := NewEngineMetrics()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "effectkit_active_effects")
}

func TestEngineMetrics_RecordApplied(t *testing.T) {
	m := NewEngineMetrics()

	tests := []struct {
		name    string
		effect  string
		outcome string
	}{
		{name: "applied", effect: "poison_dot", outcome: "applied"},
		{name: "denied", effect: "poison_dot", outcome: "denied"},
		{name: "stacked", effect: "regen_buff", outcome: "stacked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				m.RecordApplied(tt.effect, tt.outcome)
			})
		})
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `effect="poison_dot"`))
}

func TestEngineMetrics_RemainingRecorders(t *testing.T) {
	m := NewEngineMetrics()

	assert.NotPanics(t, func() {
		m.RecordRemoved("poison_dot", "expired")
		m.SetActiveEffects(3)
		m.ObserveStackCount("poison_dot", 2)
		m.ObserveUpdateDuration(0.0042)
		m.ObserveCascadePasses(1)
		m.RecordCueDispatched("on_apply")
		m.RecordContentLoad("success")
	})
}

func TestEngineMetrics_NilReceiverIsNoOp(t *testing.T) {
	var m *EngineMetrics

	assert.NotPanics(t, func() {
		m.RecordApplied("x", "applied")
		m.RecordRemoved("x", "expired")
		m.SetActiveEffects(1)
		m.ObserveStackCount("x", 1)
		m.ObserveUpdateDuration(0.001)
		m.ObserveCascadePasses(1)
		m.RecordCueDispatched("on_apply")
		m.RecordContentLoad("success")
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
