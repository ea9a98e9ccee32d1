package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spencer-p/sunphase/pkg/data"
	"github.com/spencer-p/sunphase/pkg/handlers"
	"github.com/spencer-p/sunphase/pkg/metrics"
	"github.com/spencer-p/sunphase/pkg/sunphase"
)

type Config struct {
	Port        string `default:"8080"`
	Prefix      string `default:"/"`
	Development bool

	Calculator string        `default:"suncalc"`
	CacheTTL   time.Duration `default:"24h" split_words:"true"`
	CacheSize  int           `default:"100000" split_words:"true"`

	LocalLatitude  *float64 `split_words:"true"`
	LocalLongitude *float64 `split_words:"true"`
	LocalHeight    float64  `split_words:"true"`

	SessionKey    string `default:"deadbeef" split_words:"true"`
	EncryptionKey string `default:"deadbeef" split_words:"true"`
	SecureCookies bool   `default:"true" split_words:"true"`

	DB data.Config
}

// Local returns the configured local coordinates, which may be unset.
func (c Config) Local() sunphase.Local {
	if c.LocalLatitude == nil || c.LocalLongitude == nil {
		return sunphase.Local{}
	}
	return sunphase.NewLocal(sunphase.Coordinates{
		Latitude:  *c.LocalLatitude,
		Longitude: *c.LocalLongitude,
		Height:    c.LocalHeight,
	})
}

func newLogger(development bool) *zap.SugaredLogger {
	var logger *zap.Logger
	var err error
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	return logger.Sugar()
}

func main() {
	var env Config
	if err := envconfig.Process("sunphase", &env); err != nil {
		log.Fatal(err.Error())
	}
	logger := newLogger(env.Development)
	defer logger.Sync()

	calc, err := sunphase.NewCalculator(env.Calculator)
	if err != nil {
		logger.Fatalw("Bad calculator", "error", err)
	}
	calc = sunphase.Cached(metrics.InstrumentCalculator(env.Calculator, calc), env.CacheTTL, env.CacheSize)

	local := env.Local()
	if c, err := local.Get(); err == nil {
		if err := c.Validate(); err != nil {
			logger.Fatalw("Bad local coordinates", "error", err)
		}
		logger.Infow("Using local coordinates", "coordinates", c.String())
	}

	server := &handlers.Server{
		Calculator: calc,
		Local:      local,
		Sessions:   handlers.NewCookieStore(env.SessionKey, env.EncryptionKey, env.SecureCookies),
		Logger:     logger,
	}
	if env.DB.Enabled() {
		store, err := data.Open(env.DB)
		if err != nil {
			logger.Fatalw("Failed to open places database", "error", err)
		}
		server.Places = store
	}

	r := mux.NewRouter().StrictSlash(true)
	r.Use(metrics.LatencyHandler)
	s := r.PathPrefix(env.Prefix).Subrouter()
	registerHealth(s)
	s.Handle("/metrics", promhttp.Handler())
	server.Register(s)

	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	logger.Infow("Listening and serving", "addr", srv.Addr, "prefix", env.Prefix, "calculator", env.Calculator)
	logger.Fatal(srv.ListenAndServe())
}
