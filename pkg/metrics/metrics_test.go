package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := NewWithRegistry("engine", prometheus.NewRegistry())

	m.RecordBooking("created")
	m.RecordBooking("created")
	m.RecordBooking("slot_unavailable")
	m.RecordCancellation("canceled")
	m.ObserveQuery("insert", 0.01, errors.New("boom"))
	m.IncTxRetry()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("engine", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("engine", "slot_unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CancelOutcomes.WithLabelValues("engine", "canceled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("engine", "insert")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TxRetries.WithLabelValues("engine")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordBooking("created")
		m.RecordCancellation("canceled")
		m.RecordRateLimited("booking")
		m.ObserveHTTP("GET", "/", "200", 0.1)
		m.ObserveQuery("select", 0.1, nil)
		m.SetConnections(1, 2, 3)
		m.IncTxRetry()
	})
	assert.Equal(t, "", m.ServiceName())
}
