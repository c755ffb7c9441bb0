package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mjhalwa/usdb-syncer/internal/config"
	"github.com/mjhalwa/usdb-syncer/internal/db"
	"github.com/mjhalwa/usdb-syncer/internal/download"
	"github.com/mjhalwa/usdb-syncer/internal/log"
	"github.com/mjhalwa/usdb-syncer/internal/model"
)

func main() {
	// Command line flags
	var (
		configFlag  = flag.String("config", "", "Path to config file")
		dirFlag     = flag.String("dir", "", "Song directory (overrides config)")
		dbFlag      = flag.String("db", "", "Song database path (overrides config)")
		importFlag  = flag.String("import", "", "Import a song list JSON dump into the database")
		searchFlag  = flag.String("search", "", "Search songs and print the matches")
		syncFlag    = flag.String("sync", "", "Sync the given song ids (comma-separated)")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag  = flag.Bool("dry-run", false, "Resolve songs without downloading")
	)

	flag.Parse()

	if *importFlag == "" && *searchFlag == "" && *syncFlag == "" {
		fmt.Println("USDB Syncer - Browse and sync UltraStar songs")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  usdb-dl -import <dump.json> [options]")
		fmt.Println("  usdb-dl -search <text> [options]")
		fmt.Println("  usdb-dl -sync <id>[,<id>...] [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: usdb-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *dirFlag != "" {
		settings.SongDir = *dirFlag
	}
	if *dbFlag != "" {
		settings.DBPath = *dbFlag
	}

	level := log.LevelInfo
	if *verboseFlag {
		level = log.LevelDebug
	}
	logger := log.New(os.Stderr, level)

	store, err := db.Open(settings.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *importFlag != "" {
		importSongs(store, *importFlag)
	}
	if *searchFlag != "" {
		searchSongs(store, *searchFlag)
	}
	if *syncFlag != "" {
		syncSongs(settings, store, logger, *syncFlag, *verboseFlag, *dryRunFlag)
	}
}

func importSongs(store *db.Store, path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening dump: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	n, err := store.ImportJSON(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing dump: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d songs\n", n)
}

func searchSongs(store *db.Store, text string) {
	songs, err := store.Search(&db.Search{Text: text})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching: %v\n", err)
		os.Exit(1)
	}
	for _, song := range songs {
		fmt.Printf("%6s  %s - %s\n", song.ID, song.Artist, song.Title)
	}
	fmt.Printf("%d songs\n", len(songs))
}

func syncSongs(settings *config.Settings, store *db.Store, logger *log.Logger, ids string, verbose, dryRun bool) {
	var songs []model.Song
	for _, field := range strings.Split(ids, ",") {
		id, err := model.ParseSongID(field)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		song, err := store.Get(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading song %s: %v\n", id, err)
			os.Exit(1)
		}
		if song == nil {
			fmt.Fprintf(os.Stderr, "Song %s is not in the database\n", id)
			os.Exit(1)
		}
		songs = append(songs, *song)
	}

	if dryRun {
		fmt.Println("[Dry run - not downloading]")
		for _, song := range songs {
			fmt.Printf("Would sync %s into %s\n", song.FolderName(), song.FolderPath(settings.SongDir))
		}
		return
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	manager := download.NewManager(settings, store, logger, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "✗ "
		case download.LevelWarning:
			prefix = "! "
		case download.LevelSuccess:
			prefix = "✓ "
		case download.LevelInfo:
			prefix = "› "
		default:
			prefix = "  "
		}

		fmt.Println(prefix + event.Message)
	})

	if err := manager.SyncSongs(ctx, songs); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nSync cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during sync: %v\n", err)
		os.Exit(1)
	}

	synced, total := manager.GetProgress()
	fmt.Printf("\nComplete! Synced %d/%d songs\n", synced, total)
}
