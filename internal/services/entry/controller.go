// Package entry drives the competition entry flow: a five-step
// session state machine from badge scan to submission confirmation.
package entry

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tirehaus/arcade/internal/blob"
	"github.com/tirehaus/arcade/internal/dependencies/clock"
	"github.com/tirehaus/arcade/internal/dependencies/ident"
	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/qr"
	"github.com/tirehaus/arcade/internal/services/directory"
	"github.com/tirehaus/arcade/internal/services/ledger"
	"github.com/tirehaus/arcade/internal/storage"
)

// Config holds entry flow configuration
type Config struct {
	// ClosesAt is the competition closing boundary. Zero means the
	// competition never closes.
	ClosesAt time.Time
	// SuccessResetDelay is how long the success screen is shown
	// before the session resets to scan
	SuccessResetDelay time.Duration
	// GuardInterval is how often the closing boundary is re-evaluated
	// by the background monitor
	GuardInterval time.Duration
}

// DefaultConfig returns default entry flow configuration
func DefaultConfig() Config {
	return Config{
		SuccessResetDelay: 5 * time.Second,
		GuardInterval:     time.Minute,
	}
}

// Controller manages entry session state and transitions
type Controller struct {
	storage   storage.Storage
	directory *directory.Service
	ledger    *ledger.Service
	photos    blob.Store
	clock     clock.Clock
	ident     ident.Generator
	cfg       Config
	logger    *slog.Logger

	closed atomic.Bool
}

// NewController creates a new entry Controller
func NewController(
	storage storage.Storage,
	directory *directory.Service,
	ledger *ledger.Service,
	photos blob.Store,
	clock clock.Clock,
	ident ident.Generator,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if cfg.SuccessResetDelay == 0 {
		cfg.SuccessResetDelay = DefaultConfig().SuccessResetDelay
	}
	if cfg.GuardInterval == 0 {
		cfg.GuardInterval = DefaultConfig().GuardInterval
	}

	c := &Controller{
		storage:   storage,
		directory: directory,
		ledger:    ledger,
		photos:    photos,
		clock:     clock,
		ident:     ident,
		cfg:       cfg,
		logger:    logger,
	}
	c.closed.Store(c.closedAt(clock.Now()))
	return c
}

// StartSession creates a new session at the scan step
func (c *Controller) StartSession(ctx context.Context) (*model.EntrySession, error) {
	now := c.clock.Now()
	session := &model.EntrySession{
		ID:        model.SessionID(c.ident.NewID()),
		Step:      model.StepScan,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession retrieves a session, applying the success auto-reset if
// the fixed display delay has elapsed
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.EntrySession, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Step == model.StepSuccess && session.CompletedAt != nil {
		if c.clock.Now().Sub(*session.CompletedAt) >= c.cfg.SuccessResetDelay {
			session.Reset(c.clock.Now())
			if err := c.storage.SaveSession(ctx, session); err != nil {
				return nil, err
			}
		}
	}

	return session, nil
}

// Scan resolves a decoded badge payload against the directory and
// moves the session to welcome. On any failure the session stays at
// scan with the error surfaced inline.
func (c *Controller) Scan(ctx context.Context, id model.SessionID, payload string) (*model.EntrySession, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step != model.StepScan {
		return nil, model.ErrInvalidStep
	}

	now := c.clock.Now()
	if c.closedAt(now) {
		return session, c.fail(ctx, session, model.ErrCompetitionClosed)
	}

	parsed, err := qr.ParsePayload(payload)
	if err != nil {
		return session, c.fail(ctx, session, err)
	}

	employee, err := c.directory.Lookup(ctx, model.EmployeeID(parsed.UUID))
	if err != nil {
		return session, c.fail(ctx, session, err)
	}

	// The directory record wins over anything embedded in the badge;
	// the scanned name is only ever display input.
	merged := *employee
	merged.ID = model.EmployeeID(parsed.UUID)

	session.Employee = &merged
	session.Step = model.StepWelcome
	session.LastError = ""
	session.UpdatedAt = now

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Confirm advances welcome -> game after the participant confirms
// their identity
func (c *Controller) Confirm(ctx context.Context, id model.SessionID) (*model.EntrySession, error) {
	return c.advance(ctx, id, model.StepWelcome, model.StepGame)
}

// SelectGame records the chosen game and advances game -> score
func (c *Controller) SelectGame(ctx context.Context, id model.SessionID, game string) (*model.EntrySession, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step != model.StepGame {
		return nil, model.ErrInvalidStep
	}
	if !model.IsGame(game) {
		return session, c.fail(ctx, session, model.ErrUnknownGame)
	}

	session.SelectedGame = game
	session.Step = model.StepScore
	session.LastError = ""
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back steps the session backwards: welcome resets to scan, game
// returns to welcome, score returns to game
func (c *Controller) Back(ctx context.Context, id model.SessionID) (*model.EntrySession, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	switch session.Step {
	case model.StepWelcome:
		session.Reset(now)
	case model.StepGame:
		session.Step = model.StepWelcome
		session.SelectedGame = ""
	case model.StepScore:
		session.Step = model.StepGame
	default:
		return nil, model.ErrInvalidStep
	}
	session.LastError = ""
	session.UpdatedAt = now

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit records the score. The photo is uploaded first; an upload
// failure degrades to the upload-error sentinel rather than aborting,
// because losing the score entirely is worse than losing the photo.
// Only a ledger write failure is surfaced as blocking, and the
// session stays at score so the participant can retry.
func (c *Controller) Submit(ctx context.Context, id model.SessionID, rawScore string, photo []byte, filename string) (*model.EntrySession, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step != model.StepScore || session.Employee == nil {
		return nil, model.ErrInvalidStep
	}

	now := c.clock.Now()
	if c.closedAt(now) {
		return session, c.fail(ctx, session, model.ErrCompetitionClosed)
	}

	// Precondition: the form layer blocks submission without a photo,
	// so an empty payload here is a contract violation
	if len(photo) == 0 {
		return session, model.ErrPhotoRequired
	}

	score, err := strconv.Atoi(strings.TrimSpace(rawScore))
	if err != nil || score < 0 {
		return session, c.fail(ctx, session, model.ErrInvalidScore)
	}

	photoURL := c.uploadPhoto(ctx, session.Employee.ID, photo, filename, now)

	record := &model.ScoreRecord{
		ID:           c.ident.NewID(),
		EmployeeID:   session.Employee.ID,
		EmployeeName: session.Employee.Name,
		Game:         session.SelectedGame,
		Score:        score,
		PhotoURL:     photoURL,
		SubmittedAt:  now,
		EventDate:    now.Format("2006-01-02"),
	}

	if err := c.ledger.Append(ctx, record); err != nil {
		return session, c.fail(ctx, session, err)
	}

	session.Step = model.StepSuccess
	session.LastError = ""
	session.CompletedAt = &now
	session.UpdatedAt = now

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ResetSession returns the session to the scan step
func (c *Controller) ResetSession(ctx context.Context, id model.SessionID) (*model.EntrySession, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Reset(c.clock.Now())
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession discards a session entirely. Kiosks call this when the
// attract loop restarts; without it, abandoned sessions accumulate
// on backends that have no expiry.
func (c *Controller) EndSession(ctx context.Context, id model.SessionID) error {
	if _, err := c.storage.GetSession(ctx, id); err != nil {
		return err
	}
	return c.storage.DeleteSession(ctx, id)
}

// IsClosed reports the monitor's view of the closing boundary
func (c *Controller) IsClosed() bool {
	return c.closed.Load()
}

// RunGuardMonitor re-evaluates the closing boundary on a fixed
// interval until ctx is cancelled, so a session already inside the
// flow observes the boundary without needing a transition first
func (c *Controller) RunGuardMonitor(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.GuardInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			closed := c.closedAt(c.clock.Now())
			if closed && !c.closed.Load() {
				c.logger.Info("competition closing boundary passed",
					slog.Time("closes_at", c.cfg.ClosesAt))
			}
			c.closed.Store(closed)
		}
	}
}

// closedAt reports whether the closing boundary has passed at t
func (c *Controller) closedAt(t time.Time) bool {
	return !c.cfg.ClosesAt.IsZero() && t.After(c.cfg.ClosesAt)
}

// uploadPhoto stores the score photo and returns its URL, degrading
// to the upload-error sentinel on failure
func (c *Controller) uploadPhoto(ctx context.Context, employeeID model.EmployeeID, photo []byte, filename string, now time.Time) string {
	objectPath := fmt.Sprintf("scores/%s/%d_%s", employeeID, now.UnixMilli(), sanitizeFilename(filename))

	url, err := c.photos.Put(ctx, objectPath, photo, "image/jpeg")
	if err != nil {
		c.logger.Warn("photo upload failed, recording submission without photo",
			slog.String("employee_id", string(employeeID)),
			slog.String("error", err.Error()),
		)
		return model.PhotoUploadFailed
	}
	return url
}

// advance moves a session from one step to the next
func (c *Controller) advance(ctx context.Context, id model.SessionID, from, to model.Step) (*model.EntrySession, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step != from {
		return nil, model.ErrInvalidStep
	}

	session.Step = to
	session.LastError = ""
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// fail records an inline error on the session without advancing it
func (c *Controller) fail(ctx context.Context, session *model.EntrySession, cause error) error {
	session.LastError = cause.Error()
	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("saving session error state", slog.String("error", err.Error()))
	}
	return cause
}

// sanitizeFilename strips any path components and whitespace from an
// uploaded filename
func sanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == "/" || base == "" {
		return "photo.jpg"
	}
	return base
}
