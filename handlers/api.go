package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/arunsworld/farefinder"
	"github.com/gorilla/mux"
)

type apiAirport struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

type apiSearchResponse struct {
	Flights   farefinder.FlightTable `json:"flights"`
	Summary   *farefinder.Summary    `json:"summary,omitempty"`
	Notices   []farefinder.Notice    `json:"notices"`
	NoFlights bool                   `json:"no_flights"`
}

type apiError struct {
	Error string `json:"error"`
}

func (h handlers) registerAPIHandlers() {
	apiGET := h.handler.PathPrefix("/api/").Methods("GET").Subrouter()
	apiGET.HandleFunc("/airports", func(w http.ResponseWriter, r *http.Request) {
		airports, err := h.finder.Airports()
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, apiError{Error: farefinder.ErrAirportsUnavailable.Error()})
			return
		}
		result := make([]apiAirport, 0, len(airports))
		for _, a := range airports {
			result = append(result, apiAirport{Code: a.Code, Name: a.Name, Label: a.Label()})
		}
		writeJSON(w, http.StatusOK, result)
	})
	apiGET.HandleFunc("/search/{origin}/{destination}", func(w http.ResponseWriter, r *http.Request) {
		airports, err := h.finder.Airports()
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, apiError{Error: farefinder.ErrAirportsUnavailable.Error()})
			return
		}
		vars := mux.Vars(r)
		queryParams := r.URL.Query()
		req, err := parseSearchRequest(searchParams{
			Origin:      vars["origin"],
			Destination: vars["destination"],
			Start:       queryParams.Get("start"),
			End:         queryParams.Get("end"),
			Days:        queryParams["day"],
		}, airports, h.settings.Today(), h.settings.HorizonDays)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, errBadRequest) {
				status = http.StatusBadRequest
			}
			writeJSON(w, status, apiError{Error: err.Error()})
			return
		}
		result := h.finder.Search(r.Context(), req)
		resp := apiSearchResponse{
			Flights:   result.Table,
			Notices:   result.Notices,
			NoFlights: result.NoFlights,
		}
		if resp.Notices == nil {
			resp.Notices = []farefinder.Notice{}
		}
		if len(result.Table) > 0 {
			summary := farefinder.Summarize(result.Table)
			resp.Summary = &summary
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR writing JSON response: %v", err)
	}
}
