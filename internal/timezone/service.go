// Package timezone resolves the IANA zone of a coordinate, used to annotate
// reverse geocoding responses.
package timezone

import (
	"fmt"
	"sync"

	"github.com/ringsaturn/tzf"

	"location-finder/internal/types"
)

// Service provides timezone lookup functionality
type Service interface {
	// Lookup returns a zone name such as "Europe/Istanbul"
	Lookup(coords types.Coords) (string, error)
}

// nameFinder is the part of tzf.F the service uses
type nameFinder interface {
	GetTimezoneName(lng float64, lat float64) string
}

type service struct {
	finder nameFinder
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService returns the process-wide timezone service.
// The finder keeps its polygon data in memory, so it is built once.
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{finder: finder}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

func (s *service) Lookup(coords types.Coords) (string, error) {
	if err := coords.Validate(); err != nil {
		return "", err
	}

	// tzf takes longitude first
	name := s.finder.GetTimezoneName(coords.Longitude, coords.Latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", coords.Latitude, coords.Longitude)
	}

	return name, nil
}
