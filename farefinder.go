package farefinder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// DateLayout is the calendar date format used on the wire and in FlightRow.Date.
const DateLayout = "2006-01-02"

var ErrAirportsUnavailable = errors.New("failed to load airports")

type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Base bool   `json:"base"`
}

func (a Airport) Label() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Code)
}

// AirportLabels maps airport code to its display label.
func AirportLabels(airports []Airport) map[string]string {
	result := make(map[string]string, len(airports))
	for _, a := range airports {
		result[a.Code] = a.Label()
	}
	return result
}

type FareQuery struct {
	Origin      string
	Destination string
	Date        time.Time
}

func (q FareQuery) DateString() string {
	return q.Date.Format(DateLayout)
}

type FlightRow struct {
	Date          string  `json:"date"`
	Day           string  `json:"day"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Price         float64 `json:"price"`
}

type FlightTable []FlightRow

// FareFetcher returns the outbound fares for a single day.
type FareFetcher interface {
	Fares(ctx context.Context, q FareQuery) ([]FlightRow, error)
}

type airportFetcher interface {
	FetchAirports(ctx context.Context) ([]Airport, error)
}

type Options struct {
	AirportsURL string
	FaresURL    string
	UserAgent   string
	Language    string
	Market      string
	Currency    string
	Timeout     time.Duration
	Client      *http.Client
}

func (o Options) withDefaults() Options {
	if o.AirportsURL == "" {
		o.AirportsURL = AirportsAPI
	}
	if o.FaresURL == "" {
		o.FaresURL = FaresAPI
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.Market == "" {
		o.Market = DefaultMarket
	}
	if o.Currency == "" {
		o.Currency = DefaultCurrency
	}
	return o
}

// Finder holds the airport directory for the lifetime of the process and runs
// fare searches against the remote API.
type Finder struct {
	airports         airportFetcher
	fares            FareFetcher
	airportRequests  chan airportRequest
	requestQueueWait time.Duration
}

type airportRequest struct {
	resp chan airportResponse
}

type airportResponse struct {
	airports []Airport
	err      error
}

func NewFinder(opts Options) *Finder {
	fetcher := NewAPIFetcher(opts)
	return newFinder(fetcher, fetcher)
}

func newFinder(airports airportFetcher, fares FareFetcher) *Finder {
	result := &Finder{
		airports:         airports,
		fares:            fares,
		airportRequests:  make(chan airportRequest),
		requestQueueWait: time.Second * 5,
	}
	go result.monitorAirportFetch()
	return result
}

func (fd *Finder) monitorAirportFetch() {
	var airports []Airport
	for req := range fd.airportRequests {
		if airports != nil {
			req.resp <- airportResponse{airports: airports}
			continue
		}
		fetched, err := fd.airports.FetchAirports(context.Background())
		if err != nil {
			log.Printf("ERROR fetching airports: %v", err)
			req.resp <- airportResponse{err: err}
			continue
		}
		airports = fetched
		req.resp <- airportResponse{airports: airports}
	}
}

// Airports returns the base airports. A failed fetch is retried on the next call.
func (fd *Finder) Airports() ([]Airport, error) {
	resp := make(chan airportResponse, 1)
	select {
	case fd.airportRequests <- airportRequest{resp: resp}:
		r := <-resp
		if r.err != nil {
			return nil, r.err
		}
		return append([]Airport(nil), r.airports...), nil
	case <-time.After(fd.requestQueueWait):
		log.Printf("timeout waiting for remote request (airports fetch)... processing one-off")
	}
	return fd.airports.FetchAirports(context.Background())
}

func (fd *Finder) Search(ctx context.Context, req SearchRequest) SearchResult {
	return Search(ctx, fd.fares, req)
}

// APIFetcher talks to the airline's public JSON endpoints.
type APIFetcher struct {
	c           *http.Client
	userAgent   string
	airportsURL func() string
	faresURL    func(FareQuery) string
}

func NewAPIFetcher(opts Options) *APIFetcher {
	opts = opts.withDefaults()
	c := opts.Client
	if c == nil {
		c = &http.Client{Timeout: opts.Timeout}
	}
	return &APIFetcher{
		c:         c,
		userAgent: opts.UserAgent,
		airportsURL: func() string {
			return opts.AirportsURL
		},
		faresURL: func(q FareQuery) string {
			params := url.Values{}
			params.Set("departureAirportIataCode", q.Origin)
			params.Set("arrivalAirportIataCode", q.Destination)
			params.Set("outboundDepartureDateFrom", q.DateString())
			params.Set("outboundDepartureDateTo", q.DateString())
			params.Set("language", opts.Language)
			params.Set("market", opts.Market)
			params.Set("currency", opts.Currency)
			return opts.FaresURL + "?" + params.Encode()
		},
	}
}
