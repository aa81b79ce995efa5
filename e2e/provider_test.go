//go:build e2e && unix

package main

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeProvider serves /data/2.5/weather for a fixed set of cities
type fakeProvider struct {
	*httptest.Server

	mu      sync.Mutex
	queries []string
	keys    []string
}

var cityPayloads = map[string]string{
	"London": `{
		"weather": [{"main": "Thunderstorm", "description": "thunderstorm with light rain", "icon": "11d"}],
		"main": {"temp": 21.6, "feels_like": 21.3, "humidity": 70},
		"wind": {"speed": 4.12},
		"sys": {"country": "GB"},
		"timezone": 3600,
		"name": "London"
	}`,
	"Paris": `{
		"weather": [{"main": "Clouds", "description": "broken clouds", "icon": "04d"}],
		"main": {"temp": 17.5, "feels_like": 17.6, "humidity": 64},
		"wind": {"speed": 3.6},
		"sys": {"country": "FR"},
		"timezone": 7200,
		"name": "Paris"
	}`,
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()
	fp := &fakeProvider{}
	fp.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/weather" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		fp.mu.Lock()
		fp.queries = append(fp.queries, q.Get("q"))
		fp.keys = append(fp.keys, q.Get("appid"))
		fp.mu.Unlock()

		body, ok := cityPayloads[q.Get("q")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(fp.Close)
	return fp
}

// Queries returns the q parameters received so far
func (fp *fakeProvider) Queries() []string {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return append([]string(nil), fp.queries...)
}

// Keys returns the appid parameters received so far
func (fp *fakeProvider) Keys() []string {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return append([]string(nil), fp.keys...)
}
