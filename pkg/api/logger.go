package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name: "fremantleline_api_request_seconds",
	Help: "Web API request latency by route and status",
}, []string{"route", "status"})

func init() {
	prometheus.MustRegister(requestDuration)
}

// NewLogger logs every request once it has been handled and records its
// latency against the matched route pattern.
func NewLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()
		err := c.Next()
		latency := time.Since(startTime)

		code := c.Response().StatusCode()
		if fiberErr, ok := err.(*fiber.Error); ok {
			code = fiberErr.Code
		}

		requestDuration.WithLabelValues(c.Route().Path, strconv.Itoa(code)).Observe(latency.Seconds())

		var event *zerolog.Event
		switch {
		case code >= fiber.StatusInternalServerError:
			event = log.Error()
		case code >= fiber.StatusBadRequest:
			event = log.Warn()
		default:
			event = log.Info()
		}

		if station := c.Params("name"); station != "" {
			event = event.Str("station", station)
		}

		event.
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Dur("latency", latency).
			Str("user-agent", c.Get(fiber.HeaderUserAgent)).
			Err(err).
			Msg("HTTP Request")

		return err
	}
}
