package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-widget/internal/geolocation"
	"ulascansenturk/weather-widget/internal/providers"
)

const (
	MsgGeolocationUnsupported = "Geolocation is not supported by this platform."
	MsgGeolocationFailed      = "Unable to retrieve location"
	MsgFetchFailed            = "Failed to fetch weather data"
	MsgCityFetchFailed        = "Failed to fetch weather data for this city"

	DefaultErrorAnimationDuration = time.Second
)

var (
	ErrEmptyCityName = errors.New("city name cannot be empty")
	// ErrSuperseded means a newer request started before this one resolved,
	// so its result was discarded.
	ErrSuperseded = errors.New("request superseded by a newer one")
)

type WeatherController interface {
	ResolveBySystemLocation(ctx context.Context) (State, error)
	FetchByCoordinates(ctx context.Context, lat, lon float64) (State, error)
	FetchByCityName(ctx context.Context, name string) (State, error)
	State() State
	Coordinates() (geolocation.Coordinates, bool)
}

type Option func(*weatherController)

func WithErrorAnimationDuration(d time.Duration) Option {
	return func(c *weatherController) {
		if d > 0 {
			c.animationDuration = d
		}
	}
}

// WithAfterFunc replaces time.AfterFunc for the error animation timer.
func WithAfterFunc(afterFunc func(time.Duration, func())) Option {
	return func(c *weatherController) {
		c.afterFunc = afterFunc
	}
}

type weatherController struct {
	provider providers.WeatherProvider
	locator  geolocation.Locator

	mu         sync.Mutex
	state      State
	generation uint64
	coords     *geolocation.Coordinates

	animationDuration time.Duration
	afterFunc         func(time.Duration, func())
}

func NewWeatherController(
	provider providers.WeatherProvider,
	locator geolocation.Locator,
	opts ...Option,
) WeatherController {
	c := &weatherController{
		provider:          provider,
		locator:           locator,
		state:             State{Kind: Idle},
		animationDuration: DefaultErrorAnimationDuration,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *weatherController) ResolveBySystemLocation(ctx context.Context) (State, error) {
	gen := c.begin(Loading)
	logger := log.With().Str("request_id", uuid.NewString()).Uint64("generation", gen).Logger()

	coords, err := c.locator.Locate(ctx)
	if err != nil {
		msg := MsgGeolocationFailed
		if errors.Is(err, geolocation.ErrUnsupported) {
			msg = MsgGeolocationUnsupported
		}
		logger.Warn().Err(err).Msg("failed to resolve system location")

		st := State{Kind: Error, Generation: gen, Message: msg}
		if !c.apply(gen, st) {
			return c.State(), ErrSuperseded
		}
		return st, fmt.Errorf("resolving system location: %w", err)
	}

	c.storeCoordinates(coords)

	if !c.isCurrent(gen) {
		logger.Info().Msg("location resolved after a newer request, skipping fetch")
		return c.State(), ErrSuperseded
	}

	return c.fetchCoordinates(ctx, logger, gen, coords.Latitude, coords.Longitude)
}

func (c *weatherController) FetchByCoordinates(ctx context.Context, lat, lon float64) (State, error) {
	gen := c.begin(Loading)
	logger := log.With().Str("request_id", uuid.NewString()).Uint64("generation", gen).Logger()

	return c.fetchCoordinates(ctx, logger, gen, lat, lon)
}

func (c *weatherController) fetchCoordinates(ctx context.Context, logger zerolog.Logger, gen uint64, lat, lon float64) (State, error) {
	logger = logger.With().Float64("lat", lat).Float64("lon", lon).Logger()

	snapshot, err := c.provider.GetByCoordinates(ctx, lat, lon)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch weather by coordinates")

		st := State{Kind: Error, Generation: gen, Message: MsgFetchFailed}
		if !c.apply(gen, st) {
			return c.State(), ErrSuperseded
		}
		return st, fmt.Errorf("fetching weather by coordinates: %w", err)
	}

	st := State{Kind: Success, Generation: gen, Snapshot: snapshot}
	if !c.apply(gen, st) {
		logger.Info().Msg("discarding superseded coordinate result")
		return c.State(), ErrSuperseded
	}

	logger.Debug().Str("location", snapshot.Name).Msg("weather by coordinates applied")
	return st, nil
}

func (c *weatherController) FetchByCityName(ctx context.Context, name string) (State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c.State(), ErrEmptyCityName
	}

	gen := c.begin(Searching)
	logger := log.With().
		Str("request_id", uuid.NewString()).
		Uint64("generation", gen).
		Str("city", name).
		Logger()

	snapshot, err := c.provider.GetByCity(ctx, name)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch weather for city")

		st := State{Kind: Error, Generation: gen, Message: MsgCityFetchFailed, Animated: true}
		if !c.apply(gen, st) {
			return c.State(), ErrSuperseded
		}
		c.afterFunc(c.animationDuration, func() {
			c.stopAnimation(gen)
		})
		return st, fmt.Errorf("fetching weather for %q: %w", name, err)
	}

	st := State{Kind: Success, Generation: gen, Snapshot: snapshot}
	if !c.apply(gen, st) {
		logger.Info().Msg("discarding superseded city result")
		return c.State(), ErrSuperseded
	}

	logger.Debug().Str("location", snapshot.Name).Msg("weather by city applied")
	return st, nil
}

func (c *weatherController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *weatherController) Coordinates() (geolocation.Coordinates, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.coords == nil {
		return geolocation.Coordinates{}, false
	}
	return *c.coords, true
}

// begin starts a new generation and moves the state to kind.
func (c *weatherController) begin(kind Kind) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.state = State{Kind: kind, Generation: c.generation}

	return c.generation
}

// apply writes st only if gen is still the latest generation.
func (c *weatherController) apply(gen uint64, st State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return false
	}
	c.state = st

	return true
}

func (c *weatherController) isCurrent(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return gen == c.generation
}

func (c *weatherController) storeCoordinates(coords geolocation.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.coords == nil {
		c.coords = &coords
	}
}

func (c *weatherController) stopAnimation(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Kind == Error && c.state.Generation == gen {
		c.state.Animated = false
	}
}
