package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName   string `validate:"required"`
	ServerAddress string `validate:"required"`

	Env         string
	LogLevel    string
	HTTPTimeout int32 `validate:"gt=0"`

	OpenWeatherAPIKey      string `validate:"required"`
	OpenWeatherBaseURL     string `validate:"required,url"`
	OpenWeatherIconBaseURL string `validate:"required,url"`

	ErrorAnimationDuration time.Duration `validate:"gt=0"`

	// DefaultLatitude and DefaultLongitude stand in for the platform position.
	// Both must be set for the startup geolocation to succeed.
	DefaultLatitude  *float64 `validate:"omitempty,latitude"`
	DefaultLongitude *float64 `validate:"omitempty,longitude"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "weather-widget")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:3000")
	v.SetDefault("HTTP_TIMEOUT", 10)
	v.SetDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("OPENWEATHER_ICON_BASE_URL", "http://openweathermap.org/img/wn")
	v.SetDefault("ERROR_ANIMATION_DURATION", time.Second)

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	config := &Config{
		ServiceName:            v.GetString("SERVICE_NAME"),
		ServerAddress:          v.GetString("SERVER_ADDRESS"),
		Env:                    v.GetString("ENV"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		HTTPTimeout:            v.GetInt32("HTTP_TIMEOUT"),
		OpenWeatherAPIKey:      v.GetString("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL:     v.GetString("OPENWEATHER_BASE_URL"),
		OpenWeatherIconBaseURL: v.GetString("OPENWEATHER_ICON_BASE_URL"),
		ErrorAnimationDuration: v.GetDuration("ERROR_ANIMATION_DURATION"),
	}

	if v.IsSet("DEFAULT_LATITUDE") && v.IsSet("DEFAULT_LONGITUDE") {
		lat := v.GetFloat64("DEFAULT_LATITUDE")
		lon := v.GetFloat64("DEFAULT_LONGITUDE")
		config.DefaultLatitude = &lat
		config.DefaultLongitude = &lon
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}
