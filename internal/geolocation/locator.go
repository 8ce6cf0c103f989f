package geolocation

import (
	"context"
	"errors"
)

var (
	// ErrUnsupported is returned when the platform has no position capability.
	ErrUnsupported = errors.New("geolocation is not supported")
	ErrDenied      = errors.New("geolocation permission denied")
)

type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

type LocatorFunc func(ctx context.Context) (Coordinates, error)

func (f LocatorFunc) Locate(ctx context.Context) (Coordinates, error) {
	return f(ctx)
}

type StaticLocator struct {
	coords Coordinates
}

func NewStaticLocator(lat, lon float64) *StaticLocator {
	return &StaticLocator{coords: Coordinates{Latitude: lat, Longitude: lon}}
}

func (l *StaticLocator) Locate(ctx context.Context) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}
	return l.coords, nil
}

type UnsupportedLocator struct{}

func (UnsupportedLocator) Locate(context.Context) (Coordinates, error) {
	return Coordinates{}, ErrUnsupported
}

// FromDefaults returns a static locator when both values are present.
func FromDefaults(lat, lon *float64) Locator {
	if lat == nil || lon == nil {
		return UnsupportedLocator{}
	}
	return NewStaticLocator(*lat, *lon)
}
