package geo

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// withTestServer points geoAPIURL at a test server for the duration of a
// test.
func withTestServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	old := geoAPIURL
	geoAPIURL = srv.URL
	t.Cleanup(func() { geoAPIURL = old })
}

func TestDetectLocation_Success(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "success",
			"lat": 45.4215,
			"lon": -75.6972,
			"city": "Ottawa",
			"country": "Canada",
			"timezone": "America/Toronto"
		}`))
	})

	loc, err := DetectLocation()
	if err != nil {
		t.Fatalf("DetectLocation: %v", err)
	}

	if loc.City != "Ottawa" || loc.Country != "Canada" {
		t.Errorf("place = %q, %q", loc.City, loc.Country)
	}
	if loc.Latitude != 45.4215 || loc.Longitude != -75.6972 {
		t.Errorf("coordinates = %v, %v", loc.Latitude, loc.Longitude)
	}
	if loc.Timezone != "America/Toronto" {
		t.Errorf("timezone = %q", loc.Timezone)
	}
}

func TestDetectLocation_APIFailureStatus(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "fail", "message": "private range"}`))
	})

	if _, err := DetectLocation(); err == nil {
		t.Error("expected error for status=fail")
	}
}

func TestDetectLocation_HTTPError(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, err := DetectLocation(); err == nil {
		t.Error("expected error for HTTP 503")
	}
}

func TestDetectLocation_MalformedJSON(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{broken`))
	})

	if _, err := DetectLocation(); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestDetectLocation_Unreachable(t *testing.T) {
	old := geoAPIURL
	geoAPIURL = "http://127.0.0.1:1/unreachable"
	t.Cleanup(func() { geoAPIURL = old })

	if _, err := DetectLocation(); err == nil {
		t.Error("expected error for unreachable endpoint")
	}
}
