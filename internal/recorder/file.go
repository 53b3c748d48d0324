package recorder

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/tessro/pausemark/internal/core"
	pmerrors "github.com/tessro/pausemark/internal/errors"
	"github.com/tessro/pausemark/internal/logging"
	"github.com/tessro/pausemark/internal/timecode"
)

const (
	journalFileMode = 0600
	journalDirMode  = 0700
)

// File is a recorder persisted as a JSON-lines journal, one core.PauseEvent
// per line. Count and last position are derived by replaying the journal,
// so separate processes sharing a path see the same tally. Writers take an
// exclusive flock on "<path>.lock" and readers a shared one.
type File struct {
	mu    sync.Mutex
	path  string
	lock  *flock.Flock
	limit int
	now   func() time.Time
	log   *slog.Logger
}

// NewFile returns a recorder for the journal at path. The file is created
// lazily on first write.
func NewFile(path string, limit int, log *slog.Logger) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal: path is empty")
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &File{
		path:  path,
		lock:  flock.New(path + ".lock"),
		limit: limit,
		now:   time.Now,
		log:   logging.OrDefault(log),
	}, nil
}

// Path returns the journal location.
func (f *File) Path() string {
	return f.path
}

// Record implements core.Recorder.
func (f *File) Record(ctx context.Context, position timecode.Timecode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return f.withLock(true, func() error {
		result, err := f.replay()
		if err != nil {
			return err
		}
		if core.IsStartupReset(result.Data.Count, position) {
			return f.resetLocked()
		}
		return f.pauseLocked(position, result.Data.Count)
	})
}

// Pause implements core.Recorder.
func (f *File) Pause(ctx context.Context, position timecode.Timecode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return f.withLock(true, func() error {
		result, err := f.replay()
		if err != nil {
			return err
		}
		return f.pauseLocked(position, result.Data.Count)
	})
}

func (f *File) pauseLocked(position timecode.Timecode, count int) error {
	if err := f.append(core.NewPauseEvent(core.EventPause, position, f.now())); err != nil {
		return err
	}
	f.log.Debug("recorded pause", "position", position.String(), "count", count+1)
	return nil
}

// withLock holds f.mu and the journal flock while fn runs.
func (f *File) withLock(exclusive bool, fn func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), journalDirMode); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	lock := f.lock.RLock
	if exclusive {
		lock = f.lock.Lock
	}
	if err := lock(); err != nil {
		return fmt.Errorf("failed to lock journal: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	return fn()
}

// Reset implements core.Recorder. The journal is truncated to a single
// reset marker.
func (f *File) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return f.withLock(true, f.resetLocked)
}

func (f *File) resetLocked() error {
	line, err := json.Marshal(core.NewPauseEvent(core.EventReset, 0, f.now()))
	if err != nil {
		return fmt.Errorf("failed to marshal reset marker: %w", err)
	}
	if err := os.WriteFile(f.path, append(line, '\n'), journalFileMode); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	f.log.Debug("journal reset", "path", f.path)
	return nil
}

// Count implements core.Recorder.
func (f *File) Count(ctx context.Context) (int, error) {
	snap, err := f.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return snap.Count, nil
}

// LastTimecode implements core.Recorder.
func (f *File) LastTimecode(ctx context.Context) (timecode.Timecode, error) {
	snap, err := f.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return snap.Last, nil
}

// Snapshot implements core.Recorder. Corrupt lines are skipped and logged.
func (f *File) Snapshot(ctx context.Context) (*core.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result *pmerrors.PartialResult[*core.Snapshot]
	err := f.withLock(false, func() error {
		var err error
		result, err = f.replay()
		return err
	})
	if err != nil {
		return nil, err
	}
	if result.HasErrors() {
		f.log.Warn("skipped corrupt journal lines", "path", f.path, "errors", len(result.Errors))
	}
	return result.Data, nil
}

// Verify replays the journal and reports every corrupt line.
func (f *File) Verify(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var result *pmerrors.PartialResult[*core.Snapshot]
	err := f.withLock(false, func() error {
		var err error
		result, err = f.replay()
		return err
	})
	if err != nil {
		return err
	}
	if result.HasErrors() {
		return fmt.Errorf("%w: %s", pmerrors.ErrJournalCorrupt, strings.TrimSpace(result.ErrorSummary()))
	}
	return nil
}

func (f *File) append(e core.PauseEvent) error {
	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_RDWR, journalFileMode)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := f.trimTornLine(file); err != nil {
		return err
	}

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append to journal: %w", err)
	}
	return nil
}

// trimTornLine truncates a trailing line with no newline, left behind by
// an interrupted write, so the next append starts on a fresh line.
func (f *File) trimTornLine(file *os.File) error {
	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat journal: %w", err)
	}
	size := info.Size()
	if size == 0 {
		return nil
	}

	last := make([]byte, 1)
	if _, err := file.ReadAt(last, size-1); err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	if last[0] == '\n' {
		return nil
	}

	data, err := io.ReadAll(io.NewSectionReader(file, 0, size))
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	keep := int64(bytes.LastIndexByte(data, '\n') + 1)
	f.log.Warn("dropping torn journal line", "path", f.path, "bytes", size-keep)
	if err := file.Truncate(keep); err != nil {
		return fmt.Errorf("failed to truncate torn journal line: %w", err)
	}
	return nil
}

// replay folds the journal into a snapshot. A missing file is an empty
// tally. A trailing line without a newline is a torn write and is ignored.
func (f *File) replay() (*pmerrors.PartialResult[*core.Snapshot], error) {
	result := &pmerrors.PartialResult[*core.Snapshot]{Data: &core.Snapshot{}}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	if i := bytes.LastIndexByte(data, '\n'); i < len(data)-1 {
		data = data[:i+1]
	}

	snap := result.Data
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var e core.PauseEvent
		if err := json.Unmarshal(line, &e); err != nil {
			result.AddError(fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}

		switch e.Kind {
		case core.EventReset:
			snap.Count = 0
			snap.Last = 0
			snap.LastAt = time.Time{}
			snap.Events = nil
		case core.EventPause:
			snap.Count++
			snap.Last = e.Position
			snap.LastAt = e.At
			snap.Events = appendBounded(snap.Events, e, f.limit)
		default:
			result.AddError(fmt.Errorf("line %d: unknown event kind %q", lineNo, e.Kind))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan journal: %w", err)
	}

	return result, nil
}
