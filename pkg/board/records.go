package board

import (
	"context"
	"time"

	"github.com/fremantleline/fremantleline/pkg/transperth"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type StationRecord struct {
	Name string `groups:"basic"`
	URL  string `groups:"detailed"`
}

type DepartureRecord struct {
	Time        string    `groups:"basic"`
	DateTime    time.Time `groups:"detailed"`
	Destination string    `groups:"basic"`
	Line        string    `groups:"basic"`
	Status      string    `groups:"basic"`
	Description string    `groups:"basic"`
	StationName string    `groups:"detailed"`
}

func NewStationRecord(station *transperth.Station) (StationRecord, error) {
	var record StationRecord
	err := copier.Copy(&record, station)

	return record, err
}

// NewDepartureRecord copies the text fields straight off the departure and
// resolves the time and line, which can fail.
func NewDepartureRecord(departure *transperth.Departure, now time.Time) (DepartureRecord, error) {
	var record DepartureRecord
	if err := copier.Copy(&record, departure); err != nil {
		return record, err
	}

	departureDateTime, err := departure.DepartureDateTime(now)
	if err != nil {
		return record, err
	}
	record.DateTime = departureDateTime
	record.Time = departureDateTime.Format(transperth.TimeLayout)

	record.Line, err = departure.Line()
	if err != nil {
		return record, err
	}

	record.StationName = departure.Station().Name

	return record, nil
}

func StationRecords(ctx context.Context, operator *transperth.Operator) ([]StationRecord, error) {
	stations, err := operator.GetStations(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]StationRecord, 0, len(stations))
	for _, station := range stations {
		record, err := NewStationRecord(station)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}

// DepartureRecords builds the board for a station. Rows that cannot be read
// are logged and left off the board rather than failing it.
func DepartureRecords(ctx context.Context, station *transperth.Station, now time.Time) ([]DepartureRecord, error) {
	departures, err := station.GetDepartures(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]DepartureRecord, 0, len(departures))
	for i, departure := range departures {
		record, err := NewDepartureRecord(departure, now)
		if err != nil {
			log.Warn().Err(err).Str("station", station.Name).Int("row", i).Msg("Skipping unreadable departure")
			continue
		}

		records = append(records, record)
	}

	return records, nil
}
