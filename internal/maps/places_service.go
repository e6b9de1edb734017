package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// PlaceInfo represents a resolved destination.
type PlaceInfo struct {
	Name             string
	FormattedAddress string
	PlaceID          string
	Rating           float32
	UserRatingsTotal int
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// ResolveDestination looks up a free-text destination name and returns the
// best match, or nil when the Places API has no result. Used to attach a
// canonical place name and address to extracted destination entities.
func (s *PlacesService) ResolveDestination(ctx context.Context, name string) (*PlaceInfo, error) {
	if name == "" {
		return nil, nil
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    name,
		Language: "en",
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}

	best := resp.Results[0]
	return &PlaceInfo{
		Name:             best.Name,
		FormattedAddress: best.FormattedAddress,
		PlaceID:          best.PlaceID,
		Rating:           best.Rating,
		UserRatingsTotal: best.UserRatingsTotal,
	}, nil
}
