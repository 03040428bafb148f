package farefinder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

var ErrInvalidRange = errors.New("invalid date range")

// Weekdays lists the day names in the order they are offered for filtering.
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

type SearchRequest struct {
	Origin      string
	Destination string
	Start       time.Time
	End         time.Time
	// Days restricts the result to these weekdays. Empty keeps every row.
	Days []time.Weekday
}

// Notice is a per-day fetch problem surfaced to the user alongside the results.
type Notice struct {
	Date     string   `json:"date"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

type SearchResult struct {
	Table FlightTable
	// Notices is empty when NoFlights is set: a search without rows reports
	// only the single "no flights" outcome.
	Notices   []Notice
	NoFlights bool
}

// Search fetches fares for every date from req.Start to req.End inclusive, one
// call per day and in date order, then filters by weekday and sorts the rows.
func Search(ctx context.Context, fetcher FareFetcher, req SearchRequest) SearchResult {
	perDay := []FlightTable{}
	notices := []Notice{}
	start, end := DateOnly(req.Start), DateOnly(req.End)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		q := FareQuery{Origin: req.Origin, Destination: req.Destination, Date: d}
		rows, err := fetcher.Fares(ctx, q)
		if err != nil {
			log.Printf("WARNING: fares %s to %s on %s: %v", q.Origin, q.Destination, q.DateString(), err)
			notices = append(notices, noticeFor(q, err))
			continue
		}
		if len(rows) == 0 {
			continue
		}
		perDay = append(perDay, rows)
	}
	if len(perDay) == 0 {
		return SearchResult{Table: FlightTable{}, NoFlights: true}
	}
	table := FlightTable{}
	for _, rows := range perDay {
		table = append(table, rows...)
	}
	table = FilterByDays(table, req.Days)
	SortTable(table)
	return SearchResult{Table: table, Notices: notices}
}

func noticeFor(q FareQuery, err error) Notice {
	var fe *FetchError
	if errors.As(err, &fe) {
		return Notice{Date: q.DateString(), Severity: fe.Severity, Message: fe.Message}
	}
	return Notice{Date: q.DateString(), Severity: SeverityError, Message: err.Error()}
}

// FilterByDays keeps rows whose weekday is in days. An empty days keeps all rows.
func FilterByDays(table FlightTable, days []time.Weekday) FlightTable {
	if len(days) == 0 {
		return table
	}
	selected := make(map[string]bool, len(days))
	for _, d := range days {
		selected[d.String()] = true
	}
	result := make(FlightTable, 0, len(table))
	for _, row := range table {
		if selected[row.Day] {
			result = append(result, row)
		}
	}
	return result
}

// SortTable orders rows by date then departure time. Both are fixed-width, so
// string order is chronological.
func SortTable(table FlightTable) {
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Date != table[j].Date {
			return table[i].Date < table[j].Date
		}
		return table[i].DepartureTime < table[j].DepartureTime
	})
}

// ParseWeekdays converts day names (any case) into weekdays, keeping input order.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	result := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		wd, ok := weekdayByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown day of week %q", name)
		}
		result = append(result, wd)
	}
	return result, nil
}

func weekdayByName(name string) (time.Weekday, bool) {
	name = strings.TrimSpace(name)
	for _, wd := range Weekdays {
		if strings.EqualFold(wd.String(), name) {
			return wd, true
		}
	}
	return 0, false
}

func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a date (want YYYY-MM-DD)", ErrInvalidRange, value)
	}
	return t, nil
}

// ValidateRange checks today <= start <= end <= today+horizonDays.
func ValidateRange(start, end, today time.Time, horizonDays int) error {
	start, end, today = DateOnly(start), DateOnly(end), DateOnly(today)
	latest := today.AddDate(0, 0, horizonDays)
	switch {
	case start.Before(today):
		return fmt.Errorf("%w: start date %s is before today (%s)", ErrInvalidRange, start.Format(DateLayout), today.Format(DateLayout))
	case end.Before(start):
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidRange, end.Format(DateLayout), start.Format(DateLayout))
	case end.After(latest):
		return fmt.Errorf("%w: end date %s is beyond %s", ErrInvalidRange, end.Format(DateLayout), latest.Format(DateLayout))
	}
	return nil
}

// DefaultRange returns today and today+spanDays, capped at the horizon.
func DefaultRange(today time.Time, spanDays, horizonDays int) (time.Time, time.Time) {
	start := DateOnly(today)
	end := start.AddDate(0, 0, spanDays)
	if latest := start.AddDate(0, 0, horizonDays); end.After(latest) {
		end = latest
	}
	return start, end
}

// DateOnly drops the clock and zone, keeping the calendar date as seen in t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
