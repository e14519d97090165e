package acquire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"tubeclip/internal/config"
	"tubeclip/internal/highlights"
	"tubeclip/internal/history"
	"tubeclip/internal/logging"
	"tubeclip/internal/services"
	"tubeclip/internal/youtube"
)

// ErrLocked is returned when another tubeclip run holds the lock.
var ErrLocked = errors.New("another tubeclip run is in progress")

// Downloader fetches metadata and streams for a video URL.
type Downloader interface {
	Info(ctx context.Context, url string) (youtube.VideoInfo, error)
	DownloadVideo(ctx context.Context, url, dir, name string) (string, error)
	DownloadAudio(ctx context.Context, url, dir, name string) (string, error)
}

// Highlighter renders laughter clips.
type Highlighter interface {
	Run(ctx context.Context, req highlights.Request) (highlights.Result, error)
}

// AudioTools converts and segments local audio.
type AudioTools interface {
	ConvertToWAV(ctx context.Context, src, dst string) error
	Segment(ctx context.Context, src, outDir string, clipSeconds int, name string) ([]string, error)
}

// Deps bundles the collaborators a session drives. Unused ones may be nil.
type Deps struct {
	Captions    highlights.CaptionSource
	Downloader  Downloader
	Highlighter Highlighter
	Audio       AudioTools
}

// Session is one locked acquisition run.
type Session struct {
	cfg    *config.Config
	store  *history.Store
	deps   Deps
	lock   *flock.Flock
	runID  string
	logger *slog.Logger
}

// Open acquires the run lock and starts a session. It fails with ErrLocked
// when another process holds the lock.
func Open(cfg *config.Config, store *history.Store, deps Deps, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("acquire: config is required")
	}
	if store == nil {
		return nil, errors.New("acquire: history store is required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, cfg.LockPath())
	}

	runID := uuid.NewString()
	return &Session{
		cfg:    cfg,
		store:  store,
		deps:   deps,
		lock:   lock,
		runID:  runID,
		logger: logging.NewComponentLogger(logger, "acquire").With(logging.String(logging.FieldRunID, runID)),
	}, nil
}

// RunID returns the identifier stamped on this session's ledger entries.
func (s *Session) RunID() string {
	return s.runID
}

// Close releases the run lock.
func (s *Session) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	if err := s.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

func (s *Session) context(ctx context.Context, stage string) context.Context {
	return services.WithStage(services.WithRunID(ctx, s.runID), stage)
}

// track records entry as running, executes fn, and stores the outcome. fn
// returns the final output path.
func (s *Session) track(ctx context.Context, entry history.Entry, fn func() (string, error)) (string, error) {
	entry.RunID = s.runID
	recorded, err := s.store.Begin(ctx, entry)
	if err != nil {
		return "", fmt.Errorf("record %s start: %w", entry.Kind, err)
	}
	logger := logging.WithContext(ctx, s.logger)

	output, runErr := fn()
	if runErr != nil {
		if err := s.store.Fail(context.WithoutCancel(ctx), recorded.ID, runErr); err != nil {
			logging.WarnWithContext(logger, "history update failed", "history_update_failed",
				logging.Int64("entry_id", recorded.ID),
				logging.Error(err),
				logging.String(logging.FieldImpact, "ledger shows the step as running"),
			)
		}
		logging.ErrorWithContext(logger, "step failed", "step_failed",
			logging.String("kind", string(entry.Kind)),
			logging.String("url", entry.SourceURL),
			logging.Error(runErr),
			logging.String(logging.FieldErrorHint, services.Hint(runErr)),
		)
		return "", runErr
	}
	if err := s.store.Complete(ctx, recorded.ID, output); err != nil {
		return output, fmt.Errorf("record %s completion: %w", entry.Kind, err)
	}
	logger.Info("step completed",
		logging.String("kind", string(entry.Kind)),
		logging.String("output", output),
	)
	return output, nil
}

func classifyDownloadError(stage, op string, err error) error {
	switch {
	case errors.Is(err, youtube.ErrInvalidURL):
		return services.Wrap(services.ErrValidation, stage, op, "", err)
	case errors.Is(err, youtube.ErrRestricted), errors.Is(err, youtube.ErrNoStream):
		return services.Wrap(services.ErrNotFound, stage, op, "", err)
	case errors.Is(err, context.DeadlineExceeded):
		return services.Wrap(services.ErrTimeout, stage, op, "", err)
	default:
		return services.Wrap(services.ErrExternalTool, stage, op, "", err)
	}
}
