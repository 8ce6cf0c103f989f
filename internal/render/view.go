// Package render turns controller state into what the widget displays.
package render

import (
	"net/url"
	"strconv"
	"time"

	"ulascansenturk/weather-widget/internal/providers"
	"ulascansenturk/weather-widget/internal/service"
)

const (
	backgroundBaseURL = "https://source.unsplash.com/1600x900/"
	timestampLayout   = "2006-01-02 15:04:05"
)

type View struct {
	State         string     `json:"state"`
	Generation    uint64     `json:"generation"`
	Spinner       bool       `json:"spinner"`
	Error         *ErrorView `json:"error,omitempty"`
	Card          *CardView  `json:"card,omitempty"`
	BackgroundURL string     `json:"background_url"`
}

type ErrorView struct {
	Message string `json:"message"`
	Shake   bool   `json:"shake"`
}

type CardView struct {
	Name        string `json:"name"`
	IconURL     string `json:"icon_url"`
	IconAlt     string `json:"icon_alt"`
	Temperature string `json:"temperature"`
	Description string `json:"description"`
	Humidity    string `json:"humidity"`
	WindSpeed   string `json:"wind_speed"`
	ObservedAt  string `json:"observed_at"`
}

type Renderer struct {
	iconBaseURL string
	now         func() time.Time
}

func NewRenderer(iconBaseURL string) *Renderer {
	if iconBaseURL == "" {
		iconBaseURL = providers.DefaultIconBaseURL
	}
	return &Renderer{iconBaseURL: iconBaseURL, now: time.Now}
}

// WithClock returns a copy of r that reads the render timestamp from now.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	cp := *r
	cp.now = now
	return &cp
}

// Build maps st onto exactly one dominant element: spinner, error or card.
func (r *Renderer) Build(st service.State) View {
	view := View{
		State:         st.Kind.String(),
		Generation:    st.Generation,
		BackgroundURL: BackgroundURL(st.Snapshot),
	}

	switch st.Kind {
	case service.Loading, service.Searching:
		view.Spinner = true
	case service.Error:
		view.Error = &ErrorView{Message: st.Message, Shake: st.Animated}
	case service.Success:
		if st.Snapshot != nil {
			view.Card = r.card(st.Snapshot)
		}
	}

	return view
}

func (r *Renderer) card(snap *providers.Snapshot) *CardView {
	return &CardView{
		Name:        snap.Name,
		IconURL:     providers.IconURLWithBase(r.iconBaseURL, snap.Icon),
		IconAlt:     snap.Description,
		Temperature: formatFloat(snap.Temperature) + "°C",
		Description: snap.Description,
		Humidity:    strconv.Itoa(snap.Humidity) + "%",
		WindSpeed:   formatFloat(snap.WindSpeed) + " m/s",
		ObservedAt:  r.now().Format(timestampLayout),
	}
}

func BackgroundURL(snap *providers.Snapshot) string {
	query := "weather"
	if snap != nil && snap.Description != "" {
		query = snap.Description
	}
	return backgroundBaseURL + "?" + url.QueryEscape(query)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
