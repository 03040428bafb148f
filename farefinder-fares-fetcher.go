package farefinder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "error"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// FetchError is returned by Fares when a single day's call yields no rows
// because of the transport, the body or the payload shape.
type FetchError struct {
	Severity Severity
	Message  string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

var errNoOutbound = errors.New("fare has no outbound leg")

type apiFare struct {
	Outbound *apiOutbound `json:"outbound"`
}

type apiOutbound struct {
	DepartureDate *string   `json:"departureDate"`
	ArrivalDate   *string   `json:"arrivalDate"`
	Price         *apiPrice `json:"price"`
}

type apiPrice struct {
	Value *float64 `json:"value"`
}

func (f *APIFetcher) Fares(ctx context.Context, q FareQuery) ([]FlightRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.faresURL(q), nil)
	if err != nil {
		return nil, &FetchError{Severity: SeverityError, Message: "Error building fares request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)
	resp, err := f.c.Do(req)
	if err != nil {
		return nil, &FetchError{Severity: SeverityError, Message: "Error fetching flights", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Severity: SeverityError, Message: fmt.Sprintf("Error fetching flights: %d", resp.StatusCode)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Severity: SeverityError, Message: "Error reading flights response", Err: err}
	}
	return parseFares(body)
}

func parseFares(body []byte) ([]FlightRow, error) {
	if !json.Valid(body) {
		return nil, &FetchError{Severity: SeverityWarning, Message: "Invalid JSON in response."}
	}
	// valid JSON that is not an object carries no fares key either
	envelope := map[string]json.RawMessage{}
	_ = json.Unmarshal(body, &envelope)
	rawFares, ok := envelope["fares"]
	if !ok {
		return nil, &FetchError{Severity: SeverityInfo, Message: "No flight data returned."}
	}
	records := []json.RawMessage{}
	if err := json.Unmarshal(rawFares, &records); err != nil {
		return nil, &FetchError{Severity: SeverityWarning, Message: "Invalid JSON in response.", Err: err}
	}
	result := make([]FlightRow, 0, len(records))
	for _, record := range records {
		fare := apiFare{}
		if err := json.Unmarshal(record, &fare); err != nil {
			continue
		}
		row, err := fare.toFlightRow()
		if err != nil {
			continue
		}
		result = append(result, row)
	}
	return result, nil
}

func (af apiFare) toFlightRow() (FlightRow, error) {
	ob := af.Outbound
	if ob == nil {
		return FlightRow{}, errNoOutbound
	}
	if ob.DepartureDate == nil || ob.ArrivalDate == nil {
		return FlightRow{}, fmt.Errorf("fare is missing departure or arrival date")
	}
	if ob.Price == nil || ob.Price.Value == nil {
		return FlightRow{}, fmt.Errorf("fare is missing price value")
	}
	departure, err := parseTimestamp(*ob.DepartureDate)
	if err != nil {
		return FlightRow{}, err
	}
	arrival, err := parseTimestamp(*ob.ArrivalDate)
	if err != nil {
		return FlightRow{}, err
	}
	price := *ob.Price.Value
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return FlightRow{}, fmt.Errorf("invalid price %v", price)
	}
	return FlightRow{
		Date:          departure.Format(DateLayout),
		Day:           departure.Weekday().String(),
		DepartureTime: departure.Format("15:04"),
		ArrivalTime:   arrival.Format("15:04"),
		Price:         roundPrice(price),
	}, nil
}

// Offset-suffixed forms keep their wall clock; nothing is converted between zones.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04Z07:00",
	DateLayout,
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSuffix(strings.TrimSpace(value), "Z")
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse %q as timestamp", value)
}

// roundPrice rounds the exact binary value to 2 decimals, half to even.
func roundPrice(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
