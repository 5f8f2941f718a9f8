package transperth

import (
	"context"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/fremantleline/fremantleline/pkg/fetcher"
	"github.com/rs/zerolog/log"
)

const departuresRegionSelector = "#dnn_ctr1608_ModuleContent"

// Station is a single stop with its own live departures page.
type Station struct {
	Name string
	URL  string

	fetcher fetcher.Fetcher

	departuresLock   sync.Mutex
	departures       []*Departure
	departuresLoaded bool
}

func NewStation(name string, url string, f fetcher.Fetcher) *Station {
	return &Station{
		Name:    name,
		URL:     url,
		fetcher: f,
	}
}

func (s *Station) String() string {
	return s.Name
}

// GetDepartures fetches the departures page on first use and returns the same slice afterwards.
func (s *Station) GetDepartures(ctx context.Context) ([]*Departure, error) {
	s.departuresLock.Lock()
	defer s.departuresLock.Unlock()

	if s.departuresLoaded {
		return s.departures, nil
	}

	document, err := getDocument(ctx, s.fetcher, s.URL)
	if err != nil {
		return nil, err
	}

	departures, err := s.parseDepartures(document)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("station", s.Name).Int("count", len(departures)).Msg("Loaded departures")

	s.departures = departures
	s.departuresLoaded = true

	return s.departures, nil
}

func (s *Station) parseDepartures(document *goquery.Document) ([]*Departure, error) {
	region := document.Find(departuresRegionSelector)
	if region.Length() == 0 {
		return nil, ErrDepartureTableNotFound
	}

	// Rows of tables nested inside another table of the region. The HTML
	// parser always wraps rows in a table section element.
	innerTables := region.Find("table").Find("table")
	if innerTables.Length() == 0 {
		return nil, ErrDepartureTableNotFound
	}
	rows := innerTables.ChildrenFiltered("thead, tbody, tfoot").ChildrenFiltered("tr")

	// First row is the header, last row the footer.
	if rows.Length() < 2 {
		return []*Departure{}, nil
	}
	rows = rows.Slice(1, rows.Length()-1)

	departures := make([]*Departure, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		departures = append(departures, newDeparture(s, row.ChildrenFiltered("td")))
	})

	return departures, nil
}
