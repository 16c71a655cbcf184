package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCategory(t *testing.T) {
	assert.Equal(t, "2xx", statusCategory(http.StatusCreated))
	assert.Equal(t, "4xx", statusCategory(http.StatusNotFound))
	assert.Equal(t, "5xx", statusCategory(http.StatusInternalServerError))
	assert.Equal(t, "", statusCategory(http.StatusFound))
}

func TestMiddlewareCountsRequests(t *testing.T) {
	m := NewHTTPMetrics("test")
	NewHTTPMetrics("test")

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/ping/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping/7", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	var m2 dto.Metric
	require.NoError(t, RequestCounter.WithLabelValues("test", http.MethodGet, "/ping/:id", "204").Write(&m2))
	assert.Equal(t, float64(2), m2.GetCounter().GetValue())
}
