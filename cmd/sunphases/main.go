// Command sunphases prints the next sun phase instants at the local
// coordinates, one per line.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/spencer-p/sunphase/pkg/sunphase"
)

type Config struct {
	Calculator string `default:"suncalc"`
	Phases     string `default:"sunrise,sunset"`
	Count      int    `default:"10"`
	// Start defaults to now.
	Start time.Time

	LocalLatitude  *float64 `split_words:"true"`
	LocalLongitude *float64 `split_words:"true"`
	LocalHeight    float64  `split_words:"true"`
}

func main() {
	var env Config
	if err := envconfig.Process("sunphase", &env); err != nil {
		fmt.Printf("bad config: %v\n", err)
		os.Exit(1)
	}
	if err := run(env); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}

func run(env Config) error {
	local := sunphase.Local{}
	if env.LocalLatitude != nil && env.LocalLongitude != nil {
		local = sunphase.NewLocal(sunphase.Coordinates{
			Latitude:  *env.LocalLatitude,
			Longitude: *env.LocalLongitude,
			Height:    env.LocalHeight,
		})
	}
	coords, err := local.Get()
	if err != nil {
		return fmt.Errorf("set SUNPHASE_LOCAL_LATITUDE and SUNPHASE_LOCAL_LONGITUDE: %w", err)
	}
	calc, err := sunphase.NewCalculator(env.Calculator)
	if err != nil {
		return err
	}
	phases, err := sunphase.ParsePhases(env.Phases)
	if err != nil {
		return err
	}

	start := env.Start
	if start.IsZero() {
		start = time.Now()
	}
	tl := sunphase.New(calc, coords, phases)
	instants, err := tl.Instants(start.UTC(), env.Count)
	if err != nil {
		return err
	}
	for _, t := range instants {
		fmt.Printf("%s\n", t.Format(time.RFC3339))
	}
	return nil
}
