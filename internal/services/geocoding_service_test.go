package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGeocodingService(t *testing.T, handler http.HandlerFunc) *GeocodingService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewGeocodingService("test-key", nil, zap.NewNop())
	svc.geocodeURL = server.URL
	svc.distanceURL = server.URL
	return svc
}

func TestGeocodingService_Geocode(t *testing.T) {
	svc := newTestGeocodingService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Campus Center", r.URL.Query().Get("address"))
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "Campus Center, West Lafayette, IN",
				"geometry": {"location": {"lat": 40.4259, "lng": -86.9081}}
			}]
		}`))
	})

	results, err := svc.Geocode(context.Background(), "Campus Center")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Campus Center, West Lafayette, IN", results[0].Address)
	require.InDelta(t, 40.4259, results[0].Latitude, 0.0001)
	require.InDelta(t, -86.9081, results[0].Longitude, 0.0001)
}

func TestGeocodingService_GeocodeZeroResults(t *testing.T) {
	svc := newTestGeocodingService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	_, err := svc.Geocode(context.Background(), "nowhere at all")
	require.ErrorIs(t, err, ErrAddressNotFound)
}

func TestGeocodingService_ProviderHTTPError(t *testing.T) {
	svc := newTestGeocodingService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := svc.Geocode(context.Background(), "Campus Center")
	require.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestGeocodingService_ProviderDeniedStatus(t *testing.T) {
	svc := newTestGeocodingService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED", "results": []}`))
	})

	_, err := svc.Geocode(context.Background(), "Campus Center")
	require.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestGeocodingService_NotConfigured(t *testing.T) {
	svc := NewGeocodingService("", nil, zap.NewNop())

	_, err := svc.Geocode(context.Background(), "Campus Center")
	require.ErrorIs(t, err, ErrGeocodingNotConfigured)

	_, err = svc.Distance(context.Background(), "A", "B")
	require.ErrorIs(t, err, ErrGeocodingNotConfigured)
}

func TestGeocodingService_Distance(t *testing.T) {
	svc := newTestGeocodingService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Campus Center", r.URL.Query().Get("origins"))
		require.Equal(t, "Downtown", r.URL.Query().Get("destinations"))
		w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{
				"status": "OK",
				"distance": {"text": "4.2 km", "value": 4200},
				"duration": {"text": "9 mins", "value": 540}
			}]}]
		}`))
	})

	result, err := svc.Distance(context.Background(), "Campus Center", "Downtown")
	require.NoError(t, err)
	require.Equal(t, 4200, result.DistanceMeters)
	require.Equal(t, "9 mins", result.DurationText)
	require.Equal(t, 540, result.DurationSeconds)
}

func TestGeocodingService_DistanceNoRoute(t *testing.T) {
	svc := newTestGeocodingService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{"status": "NOT_FOUND"}]}]
		}`))
	})

	_, err := svc.Distance(context.Background(), "A", "B")
	require.ErrorIs(t, err, ErrRouteNotFound)
}
