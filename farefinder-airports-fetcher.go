package farefinder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type apiAirport struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Base bool   `json:"base"`
}

// FetchAirports returns the base airports in the order the API lists them.
func (f *APIFetcher) FetchAirports(ctx context.Context) ([]Airport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.airportsURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("problem building airports request: %v", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	resp, err := f.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: problem fetching airports from API: %v", ErrAirportsUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: airports API returned status %d", ErrAirportsUnavailable, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: problem reading airports response: %v", ErrAirportsUnavailable, err)
	}
	apiAirports := []apiAirport{}
	if err := json.Unmarshal(body, &apiAirports); err != nil {
		return nil, fmt.Errorf("%w: problem parsing airports response: %v", ErrAirportsUnavailable, err)
	}
	result := make([]Airport, 0, len(apiAirports))
	for _, a := range apiAirports {
		if !a.Base {
			continue
		}
		result = append(result, Airport{
			Code: a.Code,
			Name: a.Name,
			Base: a.Base,
		})
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: no base airports returned", ErrAirportsUnavailable)
	}
	return result, nil
}
