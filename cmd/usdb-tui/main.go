package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mjhalwa/usdb-syncer/internal/config"
	"github.com/mjhalwa/usdb-syncer/internal/db"
	"github.com/mjhalwa/usdb-syncer/internal/log"
	"github.com/mjhalwa/usdb-syncer/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file")
	flag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	store, err := db.Open(settings.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	logger := log.New(os.Stderr, log.LevelWarn)

	if err := tui.Run(settings, store, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
