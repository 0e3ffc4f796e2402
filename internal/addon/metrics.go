package addon

import (
	"fmt"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var (
	upstreamSuccesses    = metrics.NewCounter(`stremthru_search_requests_total{result="ok"}`)
	upstreamStatusErrors = metrics.NewCounter(`stremthru_search_requests_total{result="status_error"}`)
	upstreamFailures     = metrics.NewCounter(`stremthru_search_requests_total{result="failure"}`)
	cacheHits            = metrics.NewCounter(`stremthru_search_cache_hits_total`)
	upstreamDuration     = metrics.NewHistogram(`stremthru_search_duration_seconds`)
)

// MetricsMiddleware counts requests per route and status and records their latency.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		metrics.GetOrCreateCounter(fmt.Sprintf(`http_requests_total{path=%q,status="%d"}`, route, status)).Inc()
		metrics.GetOrCreateHistogram(fmt.Sprintf(`http_request_duration_seconds{path=%q}`, route)).UpdateDuration(start)

		return err
	}
}

var HandleMetrics = adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	metrics.WritePrometheus(w, true)
})
