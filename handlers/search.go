package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arunsworld/farefinder"
	"github.com/gorilla/mux"
)

var errBadRequest = errors.New("bad request")

type searchPage struct {
	Form    searchForm
	Results *searchResults
}

type searchForm struct {
	Airports    []farefinder.Airport
	Origin      string
	Destination string
	Start       string
	End         string
	MinDate     string
	MaxDate     string
	DayRows     [][]dayOption
	Error       string
}

type dayOption struct {
	Name    string
	Checked bool
}

// searchParams is a search as submitted, before validation.
type searchParams struct {
	Origin      string
	Destination string
	Start       string
	End         string
	Days        []string
}

func (h handlers) registerSearchHandlers() {
	h.handler.HandleFunc("/", h.index).Methods("GET")

	flightsGET := h.handler.PathPrefix("/flights/").Methods("GET").Subrouter()
	flights := flightsGET.HandleFunc("/{origin}/{destination}/{start}/{end}", h.flights)

	// the search form submits query parameters; they are moved into the path
	h.handler.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		queryParams := r.URL.Query()
		target, err := flights.URL(
			"origin", normaliseCode(queryParams.Get("origin")),
			"destination", normaliseCode(queryParams.Get("destination")),
			"start", strings.TrimSpace(queryParams.Get("start")),
			"end", strings.TrimSpace(queryParams.Get("end")),
		)
		if err != nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		if days, ok := queryParams["day"]; ok {
			target.RawQuery = url.Values{"day": days}.Encode()
		}
		http.Redirect(w, r, target.String(), http.StatusFound)
	}).Methods("GET")
}

func (h handlers) index(w http.ResponseWriter, r *http.Request) {
	airports, err := h.finder.Airports()
	if err != nil || len(airports) == 0 {
		h.handleAirportsUnavailable(w)
		return
	}
	today := h.settings.Today()
	start, end := farefinder.DefaultRange(today, h.settings.DefaultSpanDays, h.settings.HorizonDays)
	form := h.newForm(airports, today)
	form.Origin = airports[0].Code
	form.Destination = airports[0].Code
	form.Start = start.Format(farefinder.DateLayout)
	form.End = end.Format(farefinder.DateLayout)
	form.DayRows = dayRows(h.settings.DefaultDays)
	h.render(w, http.StatusOK, "index.html", searchPage{Form: form})
}

func (h handlers) flights(w http.ResponseWriter, r *http.Request) {
	airports, err := h.finder.Airports()
	if err != nil {
		h.handleAirportsUnavailable(w)
		return
	}
	vars := mux.Vars(r)
	params := searchParams{
		Origin:      normaliseCode(vars["origin"]),
		Destination: normaliseCode(vars["destination"]),
		Start:       vars["start"],
		End:         vars["end"],
		Days:        r.URL.Query()["day"],
	}
	today := h.settings.Today()
	form := h.newForm(airports, today)
	form.Origin = params.Origin
	form.Destination = params.Destination
	form.Start = params.Start
	form.End = params.End

	req, err := parseSearchRequest(params, airports, today, h.settings.HorizonDays)
	if err != nil {
		days, _ := farefinder.ParseWeekdays(params.Days)
		form.DayRows = dayRows(days)
		form.Error = strings.TrimPrefix(err.Error(), errBadRequest.Error()+": ")
		h.render(w, http.StatusBadRequest, "index.html", searchPage{Form: form})
		return
	}
	form.DayRows = dayRows(req.Days)

	result := h.finder.Search(r.Context(), req)
	h.render(w, http.StatusOK, "index.html", searchPage{
		Form:    form,
		Results: present(result, h.settings.CurrencySymbol),
	})
}

func (h handlers) newForm(airports []farefinder.Airport, today time.Time) searchForm {
	return searchForm{
		Airports: airports,
		MinDate:  today.Format(farefinder.DateLayout),
		MaxDate:  today.AddDate(0, 0, h.settings.HorizonDays).Format(farefinder.DateLayout),
	}
}

func dayRows(checked []time.Weekday) [][]dayOption {
	selected := map[time.Weekday]bool{}
	for _, d := range checked {
		selected[d] = true
	}
	options := make([]dayOption, 0, len(farefinder.Weekdays))
	for _, d := range farefinder.Weekdays {
		options = append(options, dayOption{Name: d.String(), Checked: selected[d]})
	}
	return splitIntoTabularFormat(options, 4)
}

func normaliseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// parseSearchRequest validates a submitted search. No days means no weekday
// filtering.
func parseSearchRequest(params searchParams, airports []farefinder.Airport, today time.Time, horizonDays int) (farefinder.SearchRequest, error) {
	known := farefinder.AirportLabels(airports)
	origin := normaliseCode(params.Origin)
	if _, ok := known[origin]; !ok {
		return farefinder.SearchRequest{}, fmt.Errorf("%w: unknown origin airport %q", errBadRequest, origin)
	}
	destination := normaliseCode(params.Destination)
	if _, ok := known[destination]; !ok {
		return farefinder.SearchRequest{}, fmt.Errorf("%w: unknown destination airport %q", errBadRequest, destination)
	}
	start, err := farefinder.ParseDate(params.Start)
	if err != nil {
		return farefinder.SearchRequest{}, fmt.Errorf("%w: start: %v", errBadRequest, err)
	}
	end, err := farefinder.ParseDate(params.End)
	if err != nil {
		return farefinder.SearchRequest{}, fmt.Errorf("%w: end: %v", errBadRequest, err)
	}
	if err := farefinder.ValidateRange(start, end, today, horizonDays); err != nil {
		return farefinder.SearchRequest{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	days, err := farefinder.ParseWeekdays(params.Days)
	if err != nil {
		return farefinder.SearchRequest{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return farefinder.SearchRequest{
		Origin:      origin,
		Destination: destination,
		Start:       start,
		End:         end,
		Days:        days,
	}, nil
}

func (h handlers) handleAirportsUnavailable(w http.ResponseWriter) {
	h.render(w, http.StatusServiceUnavailable, "airports-error.html", struct {
		Error string
	}{
		Error: "Failed to load airports.",
	})
}
