package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordUpstream(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("search", "ok"))
	RecordUpstream("search", "ok", 0.12)
	assert.Equal(t, before+1, testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("search", "ok")))
}

func TestRecordDetailFallback(t *testing.T) {
	before := testutil.ToFloat64(DetailFallbacksTotal)
	RecordDetailFallback()
	assert.Equal(t, before+1, testutil.ToFloat64(DetailFallbacksTotal))
}

func TestRecordHTTP(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/healthz", "200"))
	RecordHTTP("/healthz", "200")
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/healthz", "200")))
}
