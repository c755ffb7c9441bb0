package download

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mjhalwa/usdb-syncer/internal/audio"
	"github.com/mjhalwa/usdb-syncer/internal/config"
	"github.com/mjhalwa/usdb-syncer/internal/db"
	"github.com/mjhalwa/usdb-syncer/internal/http"
	"github.com/mjhalwa/usdb-syncer/internal/ioutils"
	"github.com/mjhalwa/usdb-syncer/internal/log"
	"github.com/mjhalwa/usdb-syncer/internal/meta"
	"github.com/mjhalwa/usdb-syncer/internal/model"
	"github.com/mjhalwa/usdb-syncer/internal/resource"
	syncpkg "github.com/mjhalwa/usdb-syncer/internal/sync"
	"github.com/mjhalwa/usdb-syncer/internal/txt"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a sync progress update.
type ProgressEvent struct {
	SongID  model.SongID
	Message string
	Level   ProgressLevel
}

// Manager coordinates song syncs.
type Manager struct {
	settings     *config.Settings
	store        *db.Store
	httpClient   *http.Client
	tagger       *audio.Tagger
	imageService *ioutils.ImageService
	logger       *log.Logger

	totalSongs  int32
	syncedSongs int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new sync Manager. onProgress may be nil.
func NewManager(settings *config.Settings, store *db.Store, logger *log.Logger, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:     settings,
		store:        store,
		httpClient:   http.NewClient(),
		tagger:       audio.NewTagger(audio.DefaultTagConfig()),
		imageService: ioutils.NewImageService(),
		logger:       logger,
		onProgress:   onProgress,
	}
}

// SyncSongs downloads the assets of all given songs into the song
// directory, limited to the configured number of parallel songs. Songs
// that fail are reported via progress events and do not abort the batch.
func (m *Manager) SyncSongs(ctx context.Context, songs []model.Song) error {
	atomic.StoreInt32(&m.totalSongs, int32(len(songs)))
	atomic.StoreInt32(&m.syncedSongs, 0)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentSongs)

	for i := range songs {
		song := songs[i]
		g.Go(func() error {
			if err := m.syncSongWithRetry(ctx, &song); err != nil {
				m.progress(ProgressEvent{SongID: song.ID, Message: fmt.Sprintf("Error syncing %s: %v", song.FolderName(), err), Level: LevelError})
				return nil
			}
			atomic.AddInt32(&m.syncedSongs, 1)
			m.progress(ProgressEvent{SongID: song.ID, Message: fmt.Sprintf("Synced %s", song.FolderName()), Level: LevelSuccess})
			return nil
		})
	}

	return g.Wait()
}

// GetProgress returns the number of synced songs and the batch size.
func (m *Manager) GetProgress() (synced, total int32) {
	return atomic.LoadInt32(&m.syncedSongs), atomic.LoadInt32(&m.totalSongs)
}

func (m *Manager) syncSongWithRetry(ctx context.Context, song *model.Song) error {
	var err error
	for tries := 0; tries < m.settings.DownloadMaxRetries; tries++ {
		if tries > 0 {
			m.progress(ProgressEvent{SongID: song.ID, Message: fmt.Sprintf("Retry %d/%d for %s", tries, m.settings.DownloadMaxRetries-1, song.FolderName()), Level: LevelWarning})
		}
		if err = m.syncSong(ctx, song); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		m.waitForRetry(ctx, tries)
	}
	return err
}

func (m *Manager) syncSong(ctx context.Context, song *model.Song) error {
	logger := m.logger.ForSong(song.ID)
	m.progress(ProgressEvent{SongID: song.ID, Message: fmt.Sprintf("Syncing %s", song.FolderName()), Level: LevelInfo})

	contents, err := m.store.GetTxt(song.ID)
	if err != nil {
		return err
	}
	if contents == "" {
		return fmt.Errorf("no stored notes for song %s", song.ID)
	}
	parsed, err := txt.Parse(contents)
	if err != nil {
		return fmt.Errorf("stored notes for song %s: %w", song.ID, err)
	}

	folder := song.FolderPath(m.settings.SongDir)
	if err := ioutils.EnsureDir(folder); err != nil {
		return err
	}

	tags := meta.Parse(parsed.Headers.Video)
	stem := song.FolderName()

	m.syncAudio(ctx, song, parsed, tags, folder, stem, logger)
	if m.settings.DownloadVideo {
		m.syncVideo(ctx, song, parsed, tags, folder, stem, logger)
	}
	cover := m.syncImage(ctx, song, parsed, tags.Cover, resource.ImageKindCover, folder, stem, logger)
	m.syncImage(ctx, song, parsed, tags.Background, resource.ImageKindBackground, folder, stem, logger)

	if err := m.writeTxt(song, parsed, folder); err != nil {
		return err
	}
	m.tagAudio(song, parsed, folder, cover)

	return syncpkg.WriteMarker(song, m.settings.SongDir)
}

// syncAudio downloads the audio resource and points the MP3 header at the
// downloaded file. The audio resource defaults to the video resource when
// no separate one is tagged.
func (m *Manager) syncAudio(ctx context.Context, song *model.Song, parsed *txt.SongTxt, tags *meta.MetaTags, folder, stem string, logger *log.Logger) {
	res := tags.Audio
	if res == "" {
		res = tags.Video
	}
	if res == "" {
		m.progress(ProgressEvent{SongID: song.ID, Message: "No audio resource", Level: LevelWarning})
		return
	}
	ext := resource.DownloadVideo(ctx, m.httpClient, res, m.settings.ToAudioOptions(), m.settings.Browser, filepath.Join(folder, stem), logger)
	if ext == "" {
		m.progress(ProgressEvent{SongID: song.ID, Message: "Audio download failed", Level: LevelWarning})
		return
	}
	parsed.Headers.Mp3 = stem + "." + ext
	m.progress(ProgressEvent{SongID: song.ID, Message: fmt.Sprintf("Downloaded audio: %s", parsed.Headers.Mp3), Level: LevelVerbose})
}

func (m *Manager) syncVideo(ctx context.Context, song *model.Song, parsed *txt.SongTxt, tags *meta.MetaTags, folder, stem string, logger *log.Logger) {
	if tags.Video == "" {
		m.progress(ProgressEvent{SongID: song.ID, Message: "No video resource", Level: LevelVerbose})
		return
	}
	ext := resource.DownloadVideo(ctx, m.httpClient, tags.Video, m.settings.ToVideoOptions(), m.settings.Browser, filepath.Join(folder, stem), logger)
	if ext == "" {
		m.progress(ProgressEvent{SongID: song.ID, Message: "Video download failed", Level: LevelWarning})
		return
	}
	parsed.Headers.Video = stem + "." + ext
	m.progress(ProgressEvent{SongID: song.ID, Message: fmt.Sprintf("Downloaded video: %s", parsed.Headers.Video), Level: LevelVerbose})
}

// syncImage downloads one image asset and points the matching header at
// the written file. Returns the written filename, or "".
func (m *Manager) syncImage(ctx context.Context, song *model.Song, parsed *txt.SongTxt, tags *meta.ImageMetaTags, kind resource.ImageKind, folder, stem string, logger *log.Logger) string {
	fname := resource.DownloadAndProcessImage(ctx, m.httpClient, m.imageService,
		song, tags, folder, stem, kind, m.settings.MaxImageWidth, logger)
	if fname == "" {
		return ""
	}
	switch kind {
	case resource.ImageKindCover:
		parsed.Headers.Cover = fname
	case resource.ImageKindBackground:
		parsed.Headers.Background = fname
	}
	m.progress(ProgressEvent{SongID: song.ID, Message: fmt.Sprintf("Downloaded %s: %s", kind, fname), Level: LevelVerbose})
	return fname
}

// writeTxt renders the notes back into the song folder. The headers now
// reference the downloaded files, and the rendering is canonical, so a
// re-parse yields the identical document.
func (m *Manager) writeTxt(song *model.Song, parsed *txt.SongTxt, folder string) error {
	path := filepath.Join(folder, song.TxtFileName())
	return ioutils.WriteFile(path, []byte(parsed.String()))
}

func (m *Manager) tagAudio(song *model.Song, parsed *txt.SongTxt, folder, coverFile string) {
	if !m.settings.ModifyTags || parsed.Headers.Mp3 == "" {
		return
	}
	var artwork []byte
	if coverFile != "" {
		artwork, _ = os.ReadFile(filepath.Join(folder, coverFile))
	}
	path := filepath.Join(folder, parsed.Headers.Mp3)
	if err := m.tagger.SaveTags(path, &parsed.Headers, artwork); err != nil {
		m.progress(ProgressEvent{SongID: song.ID, Message: fmt.Sprintf("Error tagging %s: %v", parsed.Headers.Mp3, err), Level: LevelWarning})
	}
}

func (m *Manager) waitForRetry(ctx context.Context, tries int) {
	cooldown := m.settings.DownloadRetryCooldown * math.Pow(m.settings.DownloadRetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
