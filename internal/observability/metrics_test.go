package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/jobs", "GET", 200, time.Millisecond)
	m.RecordRequest("/jobs", "GET", 200, time.Millisecond)
	m.RecordError("/jobs", "POST", "FORBIDDEN")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["GET /jobs|200"])
	assert.Equal(t, int64(1), snap.Errors["POST /jobs|FORBIDDEN"])

	var nilMetrics *Metrics
	nilMetrics.RecordRequest("/jobs", "GET", 200, 0)
	assert.Empty(t, nilMetrics.Snapshot().Requests)
}

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/jobs", func(c *fiber.Ctx) error {
		return c.SendString(RequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/jobs", nil))
	require.NoError(t, err)
	generated := resp.Header.Get(RequestIDHeader)
	assert.NotEmpty(t, generated)

	req := httptest.NewRequest("GET", "/jobs", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(RequestIDHeader))
	assert.Equal(t, int64(2), m.Snapshot().Requests["GET /jobs|200"])
}
