package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, "2xx", classifyStatus(202))
	assert.Equal(t, "3xx", classifyStatus(304))
	assert.Equal(t, "4xx", classifyStatus(429))
	assert.Equal(t, "5xx", classifyStatus(500))
	assert.Equal(t, "unknown", classifyStatus(0))
}

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/catalog", "2xx"))
	RecordRequest("GET", "/catalog", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/catalog", "2xx"))
	assert.Equal(t, before+1, after)
}

func TestRecordSlugResolution(t *testing.T) {
	before := testutil.ToFloat64(slugResolutionsTotal.WithLabelValues("fuzzy"))
	RecordSlugResolution("fuzzy")
	assert.Equal(t, before+1, testutil.ToFloat64(slugResolutionsTotal.WithLabelValues("fuzzy")))
}
