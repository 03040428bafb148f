package handlers

import (
	"fmt"

	"github.com/arunsworld/farefinder"
)

type searchResults struct {
	Rows      []resultRow
	Notices   []farefinder.Notice
	NoFlights bool
	// NoMatches is set when flights were found but none fall on the selected days.
	NoMatches     bool
	Cheapest      string
	MostExpensive string
	Average       string
}

type resultRow struct {
	Date          string
	Day           string
	DepartureTime string
	ArrivalTime   string
	Price         string
	Color         string
}

// present turns a search result into the table and summary lines shown to the user.
func present(result farefinder.SearchResult, currencySymbol string) *searchResults {
	out := &searchResults{
		Notices:   result.Notices,
		NoFlights: result.NoFlights,
	}
	if result.NoFlights {
		return out
	}
	if len(result.Table) == 0 {
		out.NoMatches = true
		return out
	}
	summary := farefinder.Summarize(result.Table)
	out.Rows = make([]resultRow, 0, len(result.Table))
	for _, row := range result.Table {
		color := ""
		if c, ok := farefinder.PriceColor(row.Price, summary.Min, summary.Max); ok {
			color = c.Hex()
		}
		out.Rows = append(out.Rows, resultRow{
			Date:          row.Date,
			Day:           row.Day,
			DepartureTime: row.DepartureTime,
			ArrivalTime:   row.ArrivalTime,
			Price:         formatPrice(currencySymbol, row.Price),
			Color:         color,
		})
	}
	out.Cheapest = formatPrice(currencySymbol, summary.Min)
	out.MostExpensive = formatPrice(currencySymbol, summary.Max)
	out.Average = formatPrice(currencySymbol, summary.Mean)
	return out
}

func formatPrice(symbol string, v float64) string {
	return fmt.Sprintf("%s%.2f", symbol, v)
}
