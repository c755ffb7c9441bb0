// Package download provides the sync orchestration logic for fetching
// song assets.
//
// # Manager
//
// The Manager coordinates one sync batch:
//
//  1. Load the stored notes of each selected song
//  2. Decode the resource meta tags from the #VIDEO header
//  3. Download audio, video, cover and background
//  4. Rewrite the notes file with the downloaded filenames
//  5. Tag the audio file with ID3 metadata
//  6. Write the sync marker
//
// # Basic Usage
//
//	manager := download.NewManager(settings, store, logger, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	err := manager.SyncSongs(ctx, selectedSongs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// Songs sync in parallel up to settings.MaxConcurrentSongs; the assets of
// one song download sequentially.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    SongID  model.SongID
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// # Retry Logic
//
// Failed syncs are automatically retried with exponential backoff,
// configurable via settings.DownloadMaxRetries and settings.DownloadRetryCooldown.
package download
