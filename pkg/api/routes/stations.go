package routes

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/fremantleline/fremantleline/pkg/board"
	"github.com/fremantleline/fremantleline/pkg/transperth"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
)

var ErrInvalidStationName = errors.New("invalid station name")

// OperatorFactory hands out a fresh operator for each request so that boards
// are never served from a previous request's scrape.
type OperatorFactory func() *transperth.Operator

func StationsRouter(router fiber.Router, newOperator OperatorFactory) {
	router.Get("/", listStations(newOperator))
	router.Get("/:name", getStation(newOperator))
	router.Get("/:name/departures", getStationDepartures(newOperator))
}

func listStations(newOperator OperatorFactory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := board.StationRecords(c.UserContext(), newOperator())
		if err != nil {
			return sendError(c, err)
		}

		return sendGrouped(c, records)
	}
}

func getStation(newOperator OperatorFactory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		station, err := lookupStation(c, newOperator())
		if err != nil {
			return sendError(c, err)
		}

		record, err := board.NewStationRecord(station)
		if err != nil {
			return sendError(c, err)
		}

		return sendGrouped(c, record)
	}
}

func getStationDepartures(newOperator OperatorFactory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		station, err := lookupStation(c, newOperator())
		if err != nil {
			return sendError(c, err)
		}

		records, err := board.DepartureRecords(c.UserContext(), station, transperth.Now())
		if err != nil {
			return sendError(c, err)
		}

		records, err = board.Filter(records, c.Query("filter"))
		if err != nil {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return sendGrouped(c, records)
	}
}

func lookupStation(c *fiber.Ctx, operator *transperth.Operator) (*transperth.Station, error) {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStationName, err)
	}

	return operator.Station(c.UserContext(), name)
}

// sendGrouped renders the basic fields, plus the detailed ones when ?detailed=true.
func sendGrouped(c *fiber.Ctx, data interface{}) error {
	groups := []string{"basic"}
	if c.QueryBool("detailed") {
		groups = append(groups, "detailed")
	}

	reducedData, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, data)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(reducedData)
}

func sendError(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, ErrInvalidStationName):
		status = fiber.StatusBadRequest
	case errors.Is(err, transperth.ErrStationNotFound):
		status = fiber.StatusNotFound
	default:
		status = fiber.StatusBadGateway
		log.Error().Err(err).Str("path", c.Path()).Msg("Failed to load from operator")
	}

	c.Status(status)
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}
