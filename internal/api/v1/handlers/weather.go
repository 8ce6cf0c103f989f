package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-widget/internal/geolocation"
	"ulascansenturk/weather-widget/internal/render"
	"ulascansenturk/weather-widget/internal/service"
)

type WeatherHandler struct {
	controller service.WeatherController
	renderer   *render.Renderer
	timeout    time.Duration
	validate   *validator.Validate
	router     chi.Router
}

func NewWeatherHandler(controller service.WeatherController, renderer *render.Renderer, timeout time.Duration) *WeatherHandler {
	h := &WeatherHandler{
		controller: controller,
		renderer:   renderer,
		timeout:    timeout,
		validate:   validator.New(),
	}
	h.router = h.routes()

	return h
}

func (h *WeatherHandler) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", h.Health)
	r.Get("/", h.Page)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", h.GetState)
		r.Post("/search", h.Search)
		r.Post("/location", h.SubmitLocation)
		r.Post("/location/resolve", h.ResolveLocation)
	})

	return r
}

func (h *WeatherHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *WeatherHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *WeatherHandler) GetState(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.renderer.Build(h.controller.State()))
}

func (h *WeatherHandler) Search(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.FormValue("city"))
	if city == "" {
		respondWithError(w, http.StatusBadRequest, "city parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	st, err := h.controller.FetchByCityName(ctx, city)
	h.respondWithState(w, st, err)
}

func (h *WeatherHandler) SubmitLocation(w http.ResponseWriter, r *http.Request) {
	coords, err := parseCoordinates(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validate.Struct(coords); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid coordinates: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	st, err := h.controller.FetchByCoordinates(ctx, coords.Latitude, coords.Longitude)
	h.respondWithState(w, st, err)
}

func (h *WeatherHandler) ResolveLocation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	st, err := h.controller.ResolveBySystemLocation(ctx)
	h.respondWithState(w, st, err)
}

// Page renders the HTML widget. A non-empty city query runs a search first.
func (h *WeatherHandler) Page(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))

	st := h.controller.State()
	if city != "" {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		var err error
		st, err = h.controller.FetchByCityName(ctx, city)
		if err != nil {
			log.Warn().Err(err).Str("city", city).Msg("city search from page failed")
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WriteHTML(w, render.Page{View: h.renderer.Build(st), City: city}); err != nil {
		log.Error().Err(err).Msg("failed to render page")
	}
}

func (h *WeatherHandler) respondWithState(w http.ResponseWriter, st service.State, err error) {
	switch {
	case err == nil:
		respondWithJSON(w, http.StatusOK, h.renderer.Build(st))
	case errors.Is(err, service.ErrEmptyCityName):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSuperseded):
		respondWithJSON(w, http.StatusConflict, h.renderer.Build(st))
	case errors.Is(err, context.DeadlineExceeded):
		respondWithJSON(w, http.StatusGatewayTimeout, h.renderer.Build(st))
	default:
		respondWithJSON(w, http.StatusBadGateway, h.renderer.Build(st))
	}
}

func parseCoordinates(r *http.Request) (geolocation.Coordinates, error) {
	rawLat := r.FormValue("lat")
	rawLon := r.FormValue("lon")
	if rawLat == "" || rawLon == "" {
		return geolocation.Coordinates{}, errors.New("lat and lon parameters are required")
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return geolocation.Coordinates{}, errors.New("lat must be a number")
	}

	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return geolocation.Coordinates{}, errors.New("lon must be a number")
	}

	return geolocation.Coordinates{Latitude: lat, Longitude: lon}, nil
}
