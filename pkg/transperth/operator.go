package transperth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/fremantleline/fremantleline/pkg/fetcher"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

const (
	OperatorName = "Transperth Trains"
	OperatorURL  = "http://www.transperth.wa.gov.au/TimetablesMaps/LiveTrainTimes.aspx"

	stationQueryParameter = "stationname"
	stationNameSuffix     = " Stn"
)

// Operator is the rail company whose live train times page lists every station.
type Operator struct {
	Name string
	URL  string

	fetcher fetcher.Fetcher

	stationsLock   sync.Mutex
	stations       []*Station
	stationsLoaded bool
}

func NewOperator(name string, url string, f fetcher.Fetcher) *Operator {
	return &Operator{
		Name:    name,
		URL:     url,
		fetcher: f,
	}
}

// Transperth returns the Transperth Trains operator backed by f.
func Transperth(f fetcher.Fetcher) *Operator {
	return NewOperator(OperatorName, OperatorURL, f)
}

func (o *Operator) String() string {
	return o.Name
}

// GetStations fetches the station list on first use and returns the same slice afterwards.
// Failed fetches are not remembered, so a later call tries again.
func (o *Operator) GetStations(ctx context.Context) ([]*Station, error) {
	o.stationsLock.Lock()
	defer o.stationsLock.Unlock()

	if o.stationsLoaded {
		return o.stations, nil
	}

	document, err := getDocument(ctx, o.fetcher, o.URL)
	if err != nil {
		return nil, err
	}

	stations, err := o.parseStations(document)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("operator", o.Name).Int("count", len(stations)).Msg("Loaded stations")

	o.stations = stations
	o.stationsLoaded = true

	return o.stations, nil
}

// Station finds a station by name, ignoring case.
func (o *Operator) Station(ctx context.Context, name string) (*Station, error) {
	stations, err := o.GetStations(ctx)
	if err != nil {
		return nil, err
	}

	index := slices.IndexFunc(stations, func(station *Station) bool {
		return strings.EqualFold(station.Name, strings.TrimSpace(name))
	})
	if index == -1 {
		return nil, fmt.Errorf("%w: %q", ErrStationNotFound, name)
	}

	return stations[index], nil
}

func (o *Operator) parseStations(document *goquery.Document) ([]*Station, error) {
	selectList := document.Find("#EntryForm select")
	if selectList.Length() == 0 {
		return nil, ErrStationListNotFound
	}

	options := selectList.ChildrenFiltered("option")
	stations := make([]*Station, 0, options.Length())

	var err error
	options.EachWithBreak(func(i int, option *goquery.Selection) bool {
		value, ok := option.Attr("value")
		if !ok {
			err = fmt.Errorf("%w: option %d", ErrStationOptionInvalid, i)
			return false
		}

		stations = append(stations, NewStation(stationName(value), stationURL(o.URL, value), o.fetcher))
		return true
	})
	if err != nil {
		return nil, err
	}

	return stations, nil
}

// stationName drops everything from the last " Stn" onwards.
func stationName(value string) string {
	if index := strings.LastIndex(value, stationNameSuffix); index != -1 {
		return value[:index]
	}

	return value
}

func stationURL(baseURL string, value string) string {
	query := url.Values{stationQueryParameter: []string{value}}

	return fmt.Sprintf("%s?%s", baseURL, query.Encode())
}
