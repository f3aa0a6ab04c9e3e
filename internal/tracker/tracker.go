// Package tracker mediates the start, stop and clear actions between the
// view layer and the night store.
//
// All storage work runs on one goroutine owned by the Tracker, in the order
// actions were submitted, so every action observes the writes of the ones
// before it. The view layer reads State snapshots, subscribes to changes and
// drains one-shot events from an explicit queue.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/emilianohg/sleeptracker/internal/format"
	"github.com/emilianohg/sleeptracker/internal/models"
)

var (
	ErrClosed          = errors.New("tracker closed")
	ErrInvalidQuality  = errors.New("invalid sleep quality")
	ErrNightNotFound   = errors.New("night not found")
	ErrNightInProgress = errors.New("night still in progress")
)

// Store is the narrow set of storage operations the tracker needs.
type Store interface {
	Insert(ctx context.Context, night *models.SleepNight) error
	Update(ctx context.Context, night *models.SleepNight) error
	Get(ctx context.Context, id int64) (*models.SleepNight, error)
	GetTonight(ctx context.Context) (*models.SleepNight, error)
	GetAllNights(ctx context.Context) ([]models.SleepNight, error)
	DeleteAllRows(ctx context.Context) error
}

// Formatter renders the history shown by the view layer.
type Formatter func(nights []models.SleepNight) string

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithFormatter(f Formatter) Option {
	return func(t *Tracker) { t.format = f }
}

var validate = validator.New()

type rating struct {
	Quality int `validate:"gte=0,lte=5"`
}

type action struct {
	name    string
	run     func(ctx context.Context) error
	pending *Pending
}

type Tracker struct {
	store  Store
	logger *zap.SugaredLogger
	now    func() time.Time
	format Formatter

	ctx     context.Context
	cancel  context.CancelFunc
	wake    chan struct{}
	stopped chan struct{}

	// pubMu orders deliveries to subscribers.
	pubMu sync.Mutex

	mu      sync.Mutex
	closed  bool
	state   State
	subs    map[int]func(State)
	nextSub int
	queue   []*action
	events  []Event
	notify  chan struct{}
}

// New starts the tracker's worker and queues the initial load of tonight
// and the history.
func New(store Store, logger *zap.SugaredLogger, opts ...Option) *Tracker {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Tracker{
		store:   store,
		logger:  logger,
		now:     time.Now,
		format:  format.Formatter{}.Nights,
		ctx:     ctx,
		cancel:  cancel,
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
		subs:    make(map[int]func(State)),
		notify:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.state = newState(nil, nil, t.format)

	go t.run()
	t.submit("load", t.reload)
	return t
}

func (t *Tracker) run() {
	defer close(t.stopped)
	for {
		select {
		case <-t.ctx.Done():
			return
		case <-t.wake:
		}

		for a := t.next(); a != nil; a = t.next() {
			err := a.run(t.ctx)
			if t.ctx.Err() != nil {
				a.pending.resolve(ErrClosed)
				return
			}
			if err != nil {
				t.logger.Errorw("action failed", "action", a.name, "error", err)
			}
			a.pending.resolve(err)
		}
	}
}

func (t *Tracker) next() *action {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.queue) == 0 || t.closed {
		return nil
	}
	a := t.queue[0]
	t.queue[0] = nil
	t.queue = t.queue[1:]
	return a
}

// submit queues an action without ever blocking the caller.
func (t *Tracker) submit(name string, run func(ctx context.Context) error) *Pending {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return resolved(ErrClosed)
	}
	p := newPending(t.ctx.Done())
	t.queue = append(t.queue, &action{name: name, run: run, pending: p})
	t.mu.Unlock()

	select {
	case t.wake <- struct{}{}:
	default:
	}
	return p
}

// ValidateQuality reports whether quality is a rating RateNight accepts.
func ValidateQuality(quality int) error {
	if err := validate.Struct(rating{Quality: quality}); err != nil {
		return fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}
	return nil
}

// StartTracking inserts a new in-progress night and makes it the current
// one. It does nothing while another night is in progress.
func (t *Tracker) StartTracking() *Pending {
	return t.submit("start", func(ctx context.Context) error {
		current, err := t.tonightFromDatabase(ctx)
		if err != nil {
			return err
		}
		if current != nil {
			t.logger.Debugw("already tracking", "night_id", current.ID)
			return t.publishNights(ctx, current)
		}

		if err := t.store.Insert(ctx, models.NewSleepNight(t.now())); err != nil {
			return fmt.Errorf("insert night: %w", err)
		}

		tonight, err := t.tonightFromDatabase(ctx)
		if err != nil {
			return err
		}
		if tonight != nil {
			t.logger.Infow("tracking started", "night_id", tonight.ID)
		}
		return t.publishNights(ctx, tonight)
	})
}

// StopTracking ends the current night and queues EventNavigateToQuality.
// Without a current night it is a no-op.
func (t *Tracker) StopTracking() *Pending {
	return t.submit("stop", func(ctx context.Context) error {
		t.mu.Lock()
		var night models.SleepNight
		tracking := t.state.Tonight != nil
		if tracking {
			night = *t.state.Tonight
		}
		t.mu.Unlock()
		if !tracking {
			return nil
		}

		night.EndTimeMilli = t.now().UnixMilli()
		if night.EndTimeMilli <= night.StartTimeMilli {
			night.EndTimeMilli = night.StartTimeMilli + 1
		}

		if err := t.store.Update(ctx, &night); err != nil {
			return fmt.Errorf("update night %d: %w", night.ID, err)
		}
		t.logger.Infow("tracking stopped", "night_id", night.ID, "duration", night.Duration().String())

		if err := t.publishNights(ctx, nil); err != nil {
			return err
		}
		t.pushEvent(Event{Kind: EventNavigateToQuality, Night: &night})
		return nil
	})
}

// Clear deletes every night and queues EventCleared.
func (t *Tracker) Clear() *Pending {
	return t.submit("clear", func(ctx context.Context) error {
		if err := t.store.DeleteAllRows(ctx); err != nil {
			return fmt.Errorf("delete nights: %w", err)
		}
		t.logger.Info("all nights cleared")

		t.publish(newState(nil, nil, t.format))
		t.pushEvent(Event{Kind: EventCleared})
		return nil
	})
}

// RateNight sets the quality of a finished night. Nights still in
// progress are rejected.
func (t *Tracker) RateNight(id int64, quality int) *Pending {
	if err := ValidateQuality(quality); err != nil {
		return resolved(err)
	}

	return t.submit("rate", func(ctx context.Context) error {
		night, err := t.store.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get night %d: %w", id, err)
		}
		if night == nil {
			return fmt.Errorf("%w: %d", ErrNightNotFound, id)
		}
		if night.InProgress() {
			return fmt.Errorf("%w: %d", ErrNightInProgress, id)
		}

		night.SleepQuality = quality
		if err := t.store.Update(ctx, night); err != nil {
			return fmt.Errorf("update night %d: %w", id, err)
		}
		t.logger.Infow("night rated", "night_id", id, "quality", quality)

		return t.reload(ctx)
	})
}

// Refresh reloads tonight and the history from the store.
func (t *Tracker) Refresh() *Pending {
	return t.submit("refresh", t.reload)
}

func (t *Tracker) reload(ctx context.Context) error {
	tonight, err := t.tonightFromDatabase(ctx)
	if err != nil {
		return err
	}
	return t.publishNights(ctx, tonight)
}

// tonightFromDatabase returns the latest night only while it is in progress.
func (t *Tracker) tonightFromDatabase(ctx context.Context) (*models.SleepNight, error) {
	night, err := t.store.GetTonight(ctx)
	if err != nil {
		return nil, fmt.Errorf("get tonight: %w", err)
	}
	if night != nil && !night.InProgress() {
		return nil, nil
	}
	return night, nil
}

func (t *Tracker) publishNights(ctx context.Context, tonight *models.SleepNight) error {
	nights, err := t.store.GetAllNights(ctx)
	if err != nil {
		return fmt.Errorf("get nights: %w", err)
	}
	t.publish(newState(tonight, nights, t.format))
	return nil
}

func (t *Tracker) publish(s State) {
	t.pubMu.Lock()
	defer t.pubMu.Unlock()

	t.mu.Lock()
	t.state = s
	subs := make([]func(State), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	for _, fn := range subs {
		fn(s.clone())
	}
}

func (t *Tracker) pushEvent(e Event) {
	t.mu.Lock()
	t.events = append(t.events, e)
	t.mu.Unlock()

	select {
	case t.notify <- struct{}{}:
	default:
	}
}

// State returns a snapshot of the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.clone()
}

// Subscribe calls fn with the current state and after every change.
// Deliveries are ordered; later ones run on the tracker's worker, so fn must
// not block.
func (t *Tracker) Subscribe(fn func(State)) (unsubscribe func()) {
	t.pubMu.Lock()
	defer t.pubMu.Unlock()

	t.mu.Lock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	current := t.state.clone()
	t.mu.Unlock()

	fn(current)

	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// Events is signalled whenever new events are queued.
func (t *Tracker) Events() <-chan struct{} {
	return t.notify
}

// DrainEvents returns the queued events in order and empties the queue.
func (t *Tracker) DrainEvents() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	events := t.events
	t.events = nil
	return events
}

// Close abandons queued and in-flight actions and stops the worker.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.subs = make(map[int]func(State))
	t.queue = nil
	t.mu.Unlock()

	t.cancel()
	<-t.stopped
}
