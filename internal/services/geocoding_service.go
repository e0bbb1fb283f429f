package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/junoapp/juno-backend/internal/constants"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	ErrGeocodingNotConfigured = errors.New("geocoding provider not configured")
	ErrAddressNotFound        = errors.New("address not found")
	ErrRouteNotFound          = errors.New("route not found")
	ErrProviderUnavailable    = errors.New("geocoding provider unavailable")
)

const (
	defaultGeocodeURL  = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultDistanceURL = "https://maps.googleapis.com/maps/api/distancematrix/json"
)

// GeocodeResult is one resolved address candidate.
type GeocodeResult struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceResult is a resolved route distance and duration.
type DistanceResult struct {
	DistanceText    string `json:"distance_text"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationText    string `json:"duration_text"`
	DurationSeconds int    `json:"duration_seconds"`
}

// GeocodingService delegates free-text address search to the Google Maps
// APIs. Requests carry a bounded timeout; provider failures surface as
// ErrProviderUnavailable, never as a hang or a silent empty result. Results
// are cached in Redis when a cache client is configured.
type GeocodingService struct {
	apiKey      string
	httpClient  *http.Client
	cache       *redis.Client
	log         *zap.Logger
	geocodeURL  string
	distanceURL string
}

// NewGeocodingService creates a new GeocodingService. cache may be nil.
func NewGeocodingService(apiKey string, cache *redis.Client, log *zap.Logger) *GeocodingService {
	return &GeocodingService{
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: constants.GeocodeTimeout},
		cache:       cache,
		log:         log,
		geocodeURL:  defaultGeocodeURL,
		distanceURL: defaultDistanceURL,
	}
}

// IsConfigured returns true if a provider API key is set.
func (s *GeocodingService) IsConfigured() bool {
	return s.apiKey != ""
}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status string `json:"status"`
}

// Geocode resolves a free-text address to candidates with coordinates.
func (s *GeocodingService) Geocode(ctx context.Context, address string) ([]GeocodeResult, error) {
	if !s.IsConfigured() {
		return nil, ErrGeocodingNotConfigured
	}

	cacheKey := "geocode:" + strings.ToLower(strings.TrimSpace(address))
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		var results []GeocodeResult
		if err := json.Unmarshal(cached, &results); err == nil {
			return results, nil
		}
	}

	query := url.Values{}
	query.Set("address", address)
	query.Set("key", s.apiKey)

	var resp geocodeResponse
	if err := s.fetch(ctx, s.geocodeURL+"?"+query.Encode(), &resp); err != nil {
		return nil, err
	}

	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, ErrAddressNotFound
	default:
		s.log.Warn("geocoding provider returned error status", zap.String("status", resp.Status))
		return nil, fmt.Errorf("%w: status %s", ErrProviderUnavailable, resp.Status)
	}

	results := make([]GeocodeResult, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = GeocodeResult{
			Address:   r.FormattedAddress,
			Latitude:  r.Geometry.Location.Lat,
			Longitude: r.Geometry.Location.Lng,
		}
	}

	s.cacheSet(ctx, cacheKey, results)
	return results, nil
}

type distanceResponse struct {
	Rows []struct {
		Elements []struct {
			Distance struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"distance"`
			Duration struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"duration"`
			Status string `json:"status"`
		} `json:"elements"`
	} `json:"rows"`
	Status string `json:"status"`
}

// Distance resolves the driving distance and duration between two addresses.
func (s *GeocodingService) Distance(ctx context.Context, origin, destination string) (*DistanceResult, error) {
	if !s.IsConfigured() {
		return nil, ErrGeocodingNotConfigured
	}

	query := url.Values{}
	query.Set("origins", origin)
	query.Set("destinations", destination)
	query.Set("key", s.apiKey)

	var resp distanceResponse
	if err := s.fetch(ctx, s.distanceURL+"?"+query.Encode(), &resp); err != nil {
		return nil, err
	}

	if resp.Status != "OK" || len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return nil, fmt.Errorf("%w: status %s", ErrProviderUnavailable, resp.Status)
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return nil, ErrRouteNotFound
	}

	return &DistanceResult{
		DistanceText:    element.Distance.Text,
		DistanceMeters:  element.Distance.Value,
		DurationText:    element.Duration.Text,
		DurationSeconds: element.Duration.Value,
	}, nil
}

func (s *GeocodingService) fetch(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Warn("geocoding provider request failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warn("geocoding provider returned http error", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: http %d", ErrProviderUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return nil
}

func (s *GeocodingService) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *GeocodingService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, constants.GeocodeCacheTTL).Err(); err != nil {
		s.log.Debug("failed to cache geocode result", zap.Error(err))
	}
}
