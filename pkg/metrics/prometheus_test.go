package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := NewWithRegistry(prometheus.NewRegistry()).TrackSymbols([]string{"AAPL"})

	r.RecordCacheResult(true)
	r.RecordCacheResult(true)
	r.RecordCacheResult(false)
	r.RecordAssembly("AAPL", 0.2, nil)
	r.RecordAssembly("AAPL", 0.1, errors.New("boom"))
	r.RecordProviderError("sentiment")
	r.RecordScore("AAPL", 0.42)
	r.RecordPublished("picks", 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.assemblies.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.providerErrors.WithLabelValues("sentiment")))
	assert.Equal(t, 0.42, testutil.ToFloat64(r.lastScore.WithLabelValues("AAPL")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.published.WithLabelValues("picks")))
}

func TestRecorderSeriesStayBoundedForUntrackedSymbols(t *testing.T) {
	r := NewWithRegistry(prometheus.NewRegistry()).TrackSymbols([]string{"AAPL", "MSFT"})

	for i := 0; i < 500; i++ {
		sym := fmt.Sprintf("JUNK%d", i)
		r.RecordDegraded(sym)
		r.RecordScore(sym, 0.1)
	}
	r.RecordScore("MSFT", -0.3)

	assert.Equal(t, 500.0, testutil.ToFloat64(r.degraded))
	assert.Equal(t, 1, testutil.CollectAndCount(r.lastScore))
	assert.Equal(t, -0.3, testutil.ToFloat64(r.lastScore.WithLabelValues("MSFT")))
}
