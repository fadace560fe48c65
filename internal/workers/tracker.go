package workers

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"associates/internal/engine/export"
	"associates/internal/engine/paapi"
	"associates/internal/engine/products"
	"associates/internal/platform/config"
)

type Searcher interface {
	SearchItems(ctx context.Context, keywords string, itemCount int, searchIndex string) (*paapi.Response, error)
}

// Tracker writes the trending CSV for each configured keyword once a day.
type Tracker struct {
	searcher Searcher
	cfg      config.TrackerConfig
	clock    clockwork.Clock
}

func NewTracker(searcher Searcher, cfg config.TrackerConfig, clock clockwork.Clock) *Tracker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Tracker{searcher: searcher, cfg: cfg, clock: clock}
}

// NextRun returns the next RunHour:00 UTC strictly after now.
func NextRun(now time.Time, hour int) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run sleeps until each daily run and stops when ctx is cancelled.
func (t *Tracker) Run(ctx context.Context) {
	for {
		next := NextRun(t.clock.Now(), t.cfg.RunHour)
		wait := next.Sub(t.clock.Now())
		log.Info().Time("next_run", next).Dur("wait", wait).Msg("tracker sleeping")

		select {
		case <-ctx.Done():
			return
		case <-t.clock.After(wait):
		}

		files, err := t.RunOnce(ctx)
		if err != nil {
			log.Error().Err(err).Msg("tracker run failed")
			continue
		}
		log.Info().Strs("files", files).Msg("tracker run complete")
	}
}

// RunOnce tracks every keyword and returns the files written. A failed
// keyword is logged and skipped; the error is only set when the output
// directory cannot be created.
func (t *Tracker) RunOnce(ctx context.Context) ([]string, error) {
	if err := os.MkdirAll(t.cfg.OutputDir, 0755); err != nil {
		return nil, err
	}

	written := []string{}
	for _, keywords := range t.cfg.Keywords {
		path, err := t.track(ctx, keywords)
		if err != nil {
			log.Warn().Err(err).Str("keywords", keywords).Msg("tracking failed")
			continue
		}
		written = append(written, path)
	}
	return written, nil
}

func (t *Tracker) track(ctx context.Context, keywords string) (string, error) {
	resp, err := t.searcher.SearchItems(ctx, keywords, t.cfg.ItemCount, paapi.DefaultSearchIndex)
	if err != nil {
		return "", err
	}
	records := products.NormalizeAll(resp.Items())

	path := filepath.Join(t.cfg.OutputDir, export.FileName("trending", keywords, t.clock.Now()))
	err = writeFile(path, func(w io.Writer) error {
		return export.WriteTrending(w, records)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// writeFile renders into path and removes the file again if rendering or
// closing fails, so only complete exports stay in the output directory.
func writeFile(path string, render func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	err = render(file)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
