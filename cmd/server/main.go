package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"ulascansenturk/weather-widget/config"
	"ulascansenturk/weather-widget/internal/api/v1/handlers"
	"ulascansenturk/weather-widget/internal/geolocation"
	"ulascansenturk/weather-widget/internal/providers"
	"ulascansenturk/weather-widget/internal/render"
	"ulascansenturk/weather-widget/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || conf.LogLevel == "" {
		logLevel = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Str("env", conf.Env).
		Timestamp().
		Logger()

	ctx, mainCtxStop := context.WithCancel(context.Background())
	defer mainCtxStop()

	provider := providers.NewOpenWeatherProvider(
		conf.OpenWeatherAPIKey,
		conf.OpenWeatherBaseURL,
		conf.HTTPTimeoutDuration(),
	)
	locator := geolocation.FromDefaults(conf.DefaultLatitude, conf.DefaultLongitude)

	controller := service.NewWeatherController(
		provider,
		locator,
		service.WithErrorAnimationDuration(conf.ErrorAnimationDuration),
	)

	handler := handlers.NewWeatherHandler(
		controller,
		render.NewRenderer(conf.OpenWeatherIconBaseURL),
		conf.HTTPTimeoutDuration(),
	)

	httpServer := &http.Server{
		Addr:              conf.ServerAddress,
		Handler:           handler,
		ReadHeaderTimeout: conf.HTTPTimeoutDuration(),
	}

	handleSignals(ctx, mainCtxStop, func() {
		if shutdownErr := httpServer.Shutdown(ctx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("server shutdown failed")
		}
	})

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		// A failed startup lookup is a widget state, not a process failure.
		st, err := controller.ResolveBySystemLocation(groupCtx)
		if err != nil {
			log.Warn().Err(err).Str("state", st.Kind.String()).Msg("startup location lookup did not produce weather")
			return nil
		}
		log.Info().Str("location", st.Snapshot.Name).Msg("startup weather loaded")
		return nil
	})

	group.Go(func() error {
		log.Info().Msgf("started server on %s", conf.ServerAddress)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		log.Err(err).Msg("server stopped")
		mainCtxStop()
	}
	<-ctx.Done()
}

func handleSignals(ctx context.Context, cancelCtx context.CancelFunc, callback func()) {
	sig := make(chan os.Signal, 1)

	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	const shutdownDuration = 30 * time.Second

	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownDuration)

		go func() {
			<-shutdownCtx.Done()

			if shutdownCtx.Err() == context.DeadlineExceeded {
				panic("graceful shutdown timed out.. forcing exit.")
			}
		}()

		callback()

		cancel()
		cancelCtx()
	}()
}
