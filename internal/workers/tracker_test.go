package workers

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"associates/internal/engine/paapi"
	"associates/internal/platform/config"
)

type fakeSearcher struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeSearcher) SearchItems(ctx context.Context, keywords string, itemCount int, searchIndex string) (*paapi.Response, error) {
	f.calls = append(f.calls, keywords)
	if f.fail[keywords] {
		return nil, &paapi.HTTPError{StatusCode: 429, Message: "TooManyRequests"}
	}
	raw := map[string]any{"SearchResult": map[string]any{"Items": []any{
		map[string]any{"ASIN": "B0C76343HK"},
	}}}
	return &paapi.Response{Operation: paapi.OperationSearchItems, Raw: raw}, nil
}

func TestNextRun(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{"Later today", time.Date(2024, 12, 3, 0, 30, 0, 0, time.UTC), 1, time.Date(2024, 12, 3, 1, 0, 0, 0, time.UTC)},
		{"Tomorrow", time.Date(2024, 12, 3, 15, 0, 0, 0, time.UTC), 1, time.Date(2024, 12, 4, 1, 0, 0, 0, time.UTC)},
		{"Exactly on the hour", time.Date(2024, 12, 3, 1, 0, 0, 0, time.UTC), 1, time.Date(2024, 12, 4, 1, 0, 0, 0, time.UTC)},
		{"Month end", time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC), 1, time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextRun(tt.now, tt.hour); !got.Equal(tt.want) {
				t.Errorf("NextRun() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTracker_RunOnce(t *testing.T) {
	dir := t.TempDir()
	searcher := &fakeSearcher{fail: map[string]bool{"broken": true}}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 12, 3, 1, 0, 0, 0, time.UTC))

	tracker := NewTracker(searcher, config.TrackerConfig{
		Keywords:  []string{"christmas ornaments", "broken", "tea"},
		ItemCount: 10,
		OutputDir: filepath.Join(dir, "exports"),
	}, clock)

	files, err := tracker.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if len(searcher.calls) != 3 {
		t.Errorf("Expected 3 searches, got %v", searcher.calls)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %v", files)
	}

	want := filepath.Join(dir, "exports", "trending_christmas_ornaments_20241203.csv")
	if files[0] != want {
		t.Errorf("file = %s, want %s", files[0], want)
	}

	f, err := os.Open(want)
	if err != nil {
		t.Fatalf("Failed to open export: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "B0C76343HK" {
		t.Errorf("unexpected export: %v", rows)
	}
}

func TestTracker_RunStopsOnCancel(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC))
	searcher := &fakeSearcher{}
	tracker := NewTracker(searcher, config.TrackerConfig{
		Keywords:  []string{"tea"},
		ItemCount: 5,
		OutputDir: t.TempDir(),
		RunHour:   1,
	}, clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tracker.Run(ctx)
		close(done)
	}()

	clock.BlockUntil(1)
	clock.Advance(time.Hour)
	clock.BlockUntil(1)

	if len(searcher.calls) != 1 {
		t.Errorf("Expected one run, got %v", searcher.calls)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
}

func TestTracker_OutputDirError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tracker := NewTracker(&fakeSearcher{}, config.TrackerConfig{OutputDir: filepath.Join(file, "sub")}, nil)
	if _, err := tracker.RunOnce(context.Background()); err == nil {
		t.Error("Expected error for unusable output dir")
	}
}

func TestWriteFile_RemovesPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trending_tea_20241203.csv")
	errRender := errors.New("disk full")

	err := writeFile(path, func(w io.Writer) error {
		io.WriteString(w, "ASIN,Title\n")
		return errRender
	})
	if !errors.Is(err, errRender) {
		t.Fatalf("writeFile() error = %v, want %v", err, errRender)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("partial file left behind: stat error = %v", err)
	}
}

func TestWriteFile_KeepsCompleteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trending_tea_20241203.csv")

	err := writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "ASIN,Title\n")
		return err
	})
	if err != nil {
		t.Fatalf("writeFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "ASIN,Title\n" {
		t.Errorf("file = %q, %v", data, err)
	}
}
