package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()

	m.ObserveVerdict("Good")
	m.ObserveVerdict("Good")
	m.ObserveRegistration(3, 1)
	m.ObserveAncestorQuery()

	assert.InDelta(t, 2, testutil.ToFloat64(m.CompatibilityVerdicts.WithLabelValues("Good")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RegistrationRuns), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.RegistrationChanges.WithLabelValues("set")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RegistrationChanges.WithLabelValues("cleared")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.AncestorQueries), 0)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveVerdict("Good")
	m.ObserveRegistration(1, 1)
	m.ObserveAncestorQuery()
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveAncestorQuery()
	assert.InDelta(t, 0, testutil.ToFloat64(b.AncestorQueries), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveVerdict("Risk")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `pet_pedigree_compatibility_verdicts_total{label="Risk"} 1`))
}
