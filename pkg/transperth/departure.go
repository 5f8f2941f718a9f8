package transperth

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fremantleline/fremantleline/pkg/util"
	iso8601 "github.com/senseyeio/duration"
)

const (
	lineColumn        = 0
	timeColumn        = 1
	destinationColumn = 2
	descriptionColumn = 3
	statusColumn      = 5

	TimeLayout        = "15:04"
	timeParseLayout   = "15:4"
	destinationMarker = "To "

	// Departures further than rolloverGrace in the past are taken to be
	// tomorrow's, and those further than rollbackWindow ahead yesterday's.
	rolloverGrace  = time.Hour
	rollbackWindow = 12 * time.Hour
)

// Departure is one row of a station's live departures table. Every accessor
// derives its value from the row's cells when called.
type Departure struct {
	station *Station
	cells   *goquery.Selection
}

func newDeparture(station *Station, cells *goquery.Selection) *Departure {
	return &Departure{
		station: station,
		cells:   cells,
	}
}

func (d *Departure) Station() *Station {
	return d.station
}

// Time is the scheduled time of day, on the zero date. Hours and minutes may
// be given with a single digit.
func (d *Departure) Time() (time.Time, error) {
	value := d.cellText(timeColumn)

	departureTime, err := time.Parse(timeParseLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", ErrInvalidTime, value, err)
	}

	return departureTime, nil
}

// DepartureDateTime places Time on the calendar day nearest to now.
func (d *Departure) DepartureDateTime(now time.Time) (time.Time, error) {
	departureTime, err := d.Time()
	if err != nil {
		return time.Time{}, err
	}

	departureDateTime := util.ClockOnDate(now, departureTime)

	switch {
	case departureDateTime.Before(now.Add(-rolloverGrace)):
		nextDayDuration, _ := iso8601.ParseISO8601("P1D")
		departureDateTime = nextDayDuration.Shift(departureDateTime)
	case departureDateTime.After(now.Add(rollbackWindow)):
		departureDateTime = departureDateTime.AddDate(0, 0, -1)
	}

	return departureDateTime, nil
}

func (d *Departure) Destination() string {
	destination := d.cellText(destinationColumn)

	if _, after, found := strings.Cut(destination, destinationMarker); found {
		return after
	}

	return destination
}

// Line is the title of the line icon in the first column.
func (d *Departure) Line() (string, error) {
	icon := d.cells.Eq(lineColumn).Find("img").First()
	if icon.Length() == 0 {
		return "", ErrLineIconMissing
	}

	title, ok := icon.Attr("title")
	if !ok {
		return "", fmt.Errorf("%w: icon has no title", ErrLineIconMissing)
	}

	return title, nil
}

func (d *Departure) Status() string {
	return d.cellText(statusColumn)
}

func (d *Departure) Description() string {
	return d.cellText(descriptionColumn)
}

func (d *Departure) String() string {
	departureTime := d.cellText(timeColumn)
	if parsed, err := d.Time(); err == nil {
		departureTime = parsed.Format(TimeLayout)
	}

	return fmt.Sprintf("%s %s %s", departureTime, d.Destination(), d.Status())
}

// cellText is the trimmed text of column i, or "" when the row is too short.
func (d *Departure) cellText(i int) string {
	return strings.TrimSpace(d.cells.Eq(i).Text())
}
