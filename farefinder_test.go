package farefinder

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const airportsBody = `[
	{"code":"DUB","name":"Dublin","base":true,"country":{"code":"ie"}},
	{"code":"XXX","name":"Nowhere","base":false},
	{"code":"STN","name":"London Stansted","base":true},
	{"code":"BVA","name":"Paris Beauvais"}
]`

func TestFetchAirportsKeepsBaseAirports(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/airports", r.URL.Path)
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		w.Write([]byte(airportsBody))
	})

	airports, err := f.FetchAirports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Airport{
		{Code: "DUB", Name: "Dublin", Base: true},
		{Code: "STN", Name: "London Stansted", Base: true},
	}, airports)
	assert.Equal(t, map[string]string{
		"DUB": "Dublin (DUB)",
		"STN": "London Stansted (STN)",
	}, AirportLabels(airports))
}

func TestFetchAirportsFailure(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	airports, err := f.FetchAirports(context.Background())
	assert.Empty(t, airports)
	assert.ErrorIs(t, err, ErrAirportsUnavailable)
}

func TestFetchAirportsNoBase(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"code":"XXX","name":"Nowhere","base":false}]`))
	})

	_, err := f.FetchAirports(context.Background())
	assert.ErrorIs(t, err, ErrAirportsUnavailable)
}

type countingAirports struct {
	calls    int32
	failures int32
}

func (c *countingAirports) FetchAirports(ctx context.Context) ([]Airport, error) {
	n := atomic.AddInt32(&c.calls, 1)
	if n <= c.failures {
		return nil, errors.New("boom")
	}
	return []Airport{{Code: "DUB", Name: "Dublin", Base: true}}, nil
}

func TestFinderAirportsCachedAfterSuccess(t *testing.T) {
	src := &countingAirports{failures: 1}
	fd := newFinder(src, &MockFareFetcher{})

	_, err := fd.Airports()
	assert.Error(t, err)

	for i := 0; i < 3; i++ {
		airports, err := fd.Airports()
		require.NoError(t, err)
		assert.Len(t, airports, 1)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}

func TestFinderAirportsReturnsCopy(t *testing.T) {
	fd := newFinder(&countingAirports{}, &MockFareFetcher{})

	airports, err := fd.Airports()
	require.NoError(t, err)
	airports[0].Name = "changed"

	again, err := fd.Airports()
	require.NoError(t, err)
	assert.Equal(t, "Dublin", again[0].Name)
}

func TestClockToday(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	c := NewClock(loc)
	c.now = func() time.Time { return time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC) }
	assert.Equal(t, day("2024-03-02"), c.Today())
}

type slowFirstAirports struct {
	calls   int32
	release chan struct{}
}

func (s *slowFirstAirports) FetchAirports(ctx context.Context) ([]Airport, error) {
	if atomic.AddInt32(&s.calls, 1) == 1 {
		<-s.release
	}
	return []Airport{{Code: "STN", Name: "London Stansted", Base: true}}, nil
}

func TestFinderAirportsOneOffWhenMonitorBusy(t *testing.T) {
	src := &slowFirstAirports{release: make(chan struct{})}
	fd := newFinder(src, &MockFareFetcher{})
	fd.requestQueueWait = 50 * time.Millisecond

	first := make(chan []Airport, 1)
	go func() {
		airports, _ := fd.Airports()
		first <- airports
	}()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&src.calls) == 1 }, time.Second, 5*time.Millisecond)

	airports, err := fd.Airports()
	require.NoError(t, err)
	assert.Equal(t, "STN", airports[0].Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.calls))

	close(src.release)
	select {
	case got := <-first:
		assert.Len(t, got, 1)
	case <-time.After(time.Second):
		t.Fatal("blocked airports request never completed")
	}
}
