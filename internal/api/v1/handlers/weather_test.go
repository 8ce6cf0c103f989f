package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"ulascansenturk/weather-widget/internal/api/v1/handlers"
	"ulascansenturk/weather-widget/internal/mocks"
	"ulascansenturk/weather-widget/internal/providers"
	"ulascansenturk/weather-widget/internal/render"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"ulascansenturk/weather-widget/internal/service"
)

type WeatherHandlerTestSuite struct {
	suite.Suite
	mockController *mocks.MockWeatherController
	handler        *handlers.WeatherHandler
}

func (s *WeatherHandlerTestSuite) SetupTest() {
	s.mockController = mocks.NewMockWeatherController(s.T())
	s.handler = handlers.NewWeatherHandler(s.mockController, render.NewRenderer(""), 5*time.Second)
}

func (s *WeatherHandlerTestSuite) serve(method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	recorder := httptest.NewRecorder()
	s.handler.ServeHTTP(recorder, req)

	return recorder
}

func (s *WeatherHandlerTestSuite) decodeView(recorder *httptest.ResponseRecorder) render.View {
	var view render.View
	s.Require().NoError(json.NewDecoder(recorder.Body).Decode(&view))
	return view
}

func (s *WeatherHandlerTestSuite) decodeError(recorder *httptest.ResponseRecorder) handlers.ErrorResponse {
	var response handlers.ErrorResponse
	s.Require().NoError(json.NewDecoder(recorder.Body).Decode(&response))
	s.Require().Len(response.Errors, 1)
	return response
}

func parisState() service.State {
	return service.State{
		Kind:       service.Success,
		Generation: 1,
		Snapshot: &providers.Snapshot{
			Name:        "Paris",
			Description: "clear sky",
			Icon:        "01d",
			Temperature: 18.5,
			Humidity:    40,
			WindSpeed:   3.2,
		},
	}
}

func (s *WeatherHandlerTestSuite) TestHealth() {
	recorder := s.serve(http.MethodGet, "/health", "")

	s.Equal(http.StatusOK, recorder.Code)
	s.JSONEq(`{"status":"ok"}`, recorder.Body.String())
}

func (s *WeatherHandlerTestSuite) TestGetState() {
	s.mockController.On("State").Return(service.State{Kind: service.Loading, Generation: 1})

	recorder := s.serve(http.MethodGet, "/v1/state", "")

	s.Equal(http.StatusOK, recorder.Code)
	view := s.decodeView(recorder)
	s.Equal("loading", view.State)
	s.True(view.Spinner)
}

func (s *WeatherHandlerTestSuite) TestSearchSuccess() {
	s.mockController.On("FetchByCityName", mock.Anything, "Paris").Return(parisState(), nil)

	recorder := s.serve(http.MethodPost, "/v1/search?city=Paris", "")

	s.Equal(http.StatusOK, recorder.Code)
	view := s.decodeView(recorder)
	s.Require().NotNil(view.Card)
	s.Equal("Paris", view.Card.Name)
	s.Equal("18.5°C", view.Card.Temperature)
	s.Equal("40%", view.Card.Humidity)
	s.Equal("3.2 m/s", view.Card.WindSpeed)
	s.True(strings.HasSuffix(view.Card.IconURL, "01d.png"))
}

func (s *WeatherHandlerTestSuite) TestSearchFromForm() {
	s.mockController.On("FetchByCityName", mock.Anything, "Paris").Return(parisState(), nil)

	recorder := s.serve(http.MethodPost, "/v1/search", url.Values{"city": {"Paris"}}.Encode())

	s.Equal(http.StatusOK, recorder.Code)
}

func (s *WeatherHandlerTestSuite) TestSearchMissingCity() {
	recorder := s.serve(http.MethodPost, "/v1/search?city=%20%20", "")

	s.Equal(http.StatusBadRequest, recorder.Code)
	response := s.decodeError(recorder)
	s.Equal("BAD_REQUEST", response.Errors[0].Code)
	s.Contains(response.Errors[0].Detail, "city parameter")

	s.mockController.AssertNotCalled(s.T(), "FetchByCityName", mock.Anything, mock.Anything)
}

func (s *WeatherHandlerTestSuite) TestSearchFailure() {
	s.mockController.On("FetchByCityName", mock.Anything, "Zzzzz").Return(
		service.State{Kind: service.Error, Generation: 2, Message: service.MsgCityFetchFailed, Animated: true},
		errors.New("fetching weather: status code: 404"),
	)

	recorder := s.serve(http.MethodPost, "/v1/search?city=Zzzzz", "")

	s.Equal(http.StatusBadGateway, recorder.Code)
	view := s.decodeView(recorder)
	s.False(view.Spinner)
	s.Nil(view.Card)
	s.Require().NotNil(view.Error)
	s.Equal("Failed to fetch weather data for this city", view.Error.Message)
	s.True(view.Error.Shake)
}

func (s *WeatherHandlerTestSuite) TestSearchSuperseded() {
	s.mockController.On("FetchByCityName", mock.Anything, "Paris").Return(
		service.State{Kind: service.Searching, Generation: 5},
		fmt.Errorf("wrapped: %w", service.ErrSuperseded),
	)

	recorder := s.serve(http.MethodPost, "/v1/search?city=Paris", "")

	s.Equal(http.StatusConflict, recorder.Code)
	view := s.decodeView(recorder)
	s.Equal("searching", view.State)
	s.Equal(uint64(5), view.Generation)
}

func (s *WeatherHandlerTestSuite) TestSearchTimeout() {
	s.mockController.On("FetchByCityName", mock.Anything, "SlowCity").
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return(service.State{Kind: service.Error, Message: service.MsgCityFetchFailed}, context.DeadlineExceeded)

	s.handler = handlers.NewWeatherHandler(s.mockController, render.NewRenderer(""), 50*time.Millisecond)

	recorder := s.serve(http.MethodPost, "/v1/search?city=SlowCity", "")

	s.Equal(http.StatusGatewayTimeout, recorder.Code)
}

func (s *WeatherHandlerTestSuite) TestSubmitLocation() {
	s.mockController.On("FetchByCoordinates", mock.Anything, 48.8566, 2.3522).Return(parisState(), nil)

	recorder := s.serve(http.MethodPost, "/v1/location?lat=48.8566&lon=2.3522", "")

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal("Paris", s.decodeView(recorder).Card.Name)
}

func (s *WeatherHandlerTestSuite) TestSubmitLocationValidation() {
	cases := map[string]string{
		"/v1/location":                 "lat and lon parameters are required",
		"/v1/location?lat=1":           "lat and lon parameters are required",
		"/v1/location?lat=abc&lon=2":   "lat must be a number",
		"/v1/location?lat=1&lon=abc":   "lon must be a number",
		"/v1/location?lat=91&lon=2":    "invalid coordinates",
		"/v1/location?lat=10&lon=-181": "invalid coordinates",
	}

	for target, detail := range cases {
		recorder := s.serve(http.MethodPost, target, "")

		s.Equal(http.StatusBadRequest, recorder.Code, target)
		response := s.decodeError(recorder)
		s.Contains(response.Errors[0].Detail, detail, target)
	}

	s.mockController.AssertNotCalled(s.T(), "FetchByCoordinates", mock.Anything, mock.Anything, mock.Anything)
}

func (s *WeatherHandlerTestSuite) TestSubmitLocationFailure() {
	s.mockController.On("FetchByCoordinates", mock.Anything, 1.0, 2.0).Return(
		service.State{Kind: service.Error, Message: service.MsgFetchFailed},
		errors.New("status code: 500"),
	)

	recorder := s.serve(http.MethodPost, "/v1/location?lat=1&lon=2", "")

	s.Equal(http.StatusBadGateway, recorder.Code)
	view := s.decodeView(recorder)
	s.Require().NotNil(view.Error)
	s.Equal("Failed to fetch weather data", view.Error.Message)
	s.False(view.Error.Shake)
}

func (s *WeatherHandlerTestSuite) TestResolveLocation() {
	s.mockController.On("ResolveBySystemLocation", mock.Anything).Return(
		service.State{Kind: service.Error, Message: service.MsgGeolocationUnsupported},
		errors.New("resolving system location: geolocation is not supported"),
	)

	recorder := s.serve(http.MethodPost, "/v1/location/resolve", "")

	s.Equal(http.StatusBadGateway, recorder.Code)
	s.Equal(service.MsgGeolocationUnsupported, s.decodeView(recorder).Error.Message)
}

func (s *WeatherHandlerTestSuite) TestPageRendersState() {
	s.mockController.On("State").Return(parisState())

	recorder := s.serve(http.MethodGet, "/", "")

	s.Equal(http.StatusOK, recorder.Code)
	s.Contains(recorder.Header().Get("Content-Type"), "text/html")
	s.Contains(recorder.Body.String(), "<h2>Paris</h2>")
}

func (s *WeatherHandlerTestSuite) TestPageSearch() {
	s.mockController.On("State").Return(service.State{Kind: service.Idle})
	s.mockController.On("FetchByCityName", mock.Anything, "Zzzzz").Return(
		service.State{Kind: service.Error, Message: service.MsgCityFetchFailed, Animated: true},
		errors.New("status code: 404"),
	)

	recorder := s.serve(http.MethodGet, "/?city=Zzzzz", "")

	s.Equal(http.StatusOK, recorder.Code)
	s.Contains(recorder.Body.String(), service.MsgCityFetchFailed)
	s.Contains(recorder.Body.String(), `value="Zzzzz"`)
}

func (s *WeatherHandlerTestSuite) TestWrongMethod() {
	recorder := s.serve(http.MethodGet, "/v1/search?city=Paris", "")

	s.Equal(http.StatusMethodNotAllowed, recorder.Code)
	response := s.decodeError(recorder)
	s.Equal("METHOD_NOT_ALLOWED", response.Errors[0].Code)

	s.mockController.AssertNotCalled(s.T(), "FetchByCityName", mock.Anything, mock.Anything)
}

func (s *WeatherHandlerTestSuite) TestWrongPath() {
	recorder := s.serve(http.MethodGet, "/forecast?q=Istanbul", "")

	s.Equal(http.StatusNotFound, recorder.Code)
	response := s.decodeError(recorder)
	s.Equal("NOT_FOUND", response.Errors[0].Code)
	s.Contains(response.Errors[0].Detail, "not found")
}

func TestWeatherHandlerSuite(t *testing.T) {
	suite.Run(t, new(WeatherHandlerTestSuite))
}
