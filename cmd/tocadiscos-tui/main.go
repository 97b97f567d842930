// Command tocadiscos-tui is the interactive terminal menu for the catalog.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/tocadiscos/internal/app"
	"github.com/handiism/tocadiscos/internal/config"
	"github.com/handiism/tocadiscos/internal/logging"
	"github.com/handiism/tocadiscos/internal/tui"
)

func main() {
	var (
		configFlag  = flag.String("config", "tocadiscos.json", "Path to settings file")
		dataDirFlag = flag.String("data-dir", "", "Data directory (overrides settings)")
	)
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dataDirFlag != "" {
		settings.SetDataDir(*dataDirFlag)
	}

	// The terminal belongs to the menu; diagnostics go to a log file.
	var opts []app.Option
	if f, err := os.OpenFile("tocadiscos.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
		defer f.Close()
		l := logging.New(f)
		opts = append(opts, app.WithLogger(&l))
	} else {
		opts = append(opts, app.WithLogger(logging.Nop()))
	}

	a, err := app.New(settings, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := tui.Run(a); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
