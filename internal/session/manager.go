package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/darshan/internal/auth"
	"github.com/Nixie-Tech-LLC/darshan/internal/model"
)

// Delays simulate the latency of the operations that used to talk to a
// (nonexistent) backend.
type Delays struct {
	Login  time.Duration
	Status time.Duration
	Alert  time.Duration
	Search time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Login:  1000 * time.Millisecond,
		Status: 800 * time.Millisecond,
		Alert:  1000 * time.Millisecond,
		Search: 150 * time.Millisecond,
	}
}

// Notifier receives every acknowledgment raised for a session.
type Notifier interface {
	Notify(ctx context.Context, sessionID string, t model.Toast) error
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, model.Toast) error { return nil }

type Options struct {
	Directory     Directory
	Store         Store
	Authenticator auth.Authenticator
	Notifier      Notifier
	Delays        Delays
	ToastTTL      time.Duration
	Now           func() time.Time
	NewID         func() string
}

// Manager runs session operations. Operations on one session are applied
// one at a time; delayed operations finish on their own goroutine and are
// dropped if the session has moved to another screen meanwhile.
type Manager struct {
	machine  *Machine
	store    Store
	authn    auth.Authenticator
	notifier Notifier
	delays   Delays

	mu    sync.Mutex
	locks map[string]*sessionLock

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(opts Options) *Manager {
	machine := NewMachine(opts.Directory)
	if opts.ToastTTL > 0 {
		machine.ToastTTL = opts.ToastTTL
	}
	if opts.Now != nil {
		machine.Now = opts.Now
	}
	if opts.NewID != nil {
		machine.NewID = opts.NewID
	}
	if opts.Store == nil {
		opts.Store = NewMemoryStore(0)
	}
	if opts.Authenticator == nil {
		opts.Authenticator = auth.DemoCredentials()
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		machine:  machine,
		store:    opts.Store,
		authn:    opts.Authenticator,
		notifier: opts.Notifier,
		delays:   opts.Delays,
		locks:    make(map[string]*sessionLock),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Machine exposes the transitions, mostly for rendering.
func (m *Manager) Machine() *Machine { return m.machine }

// Close stops pending delayed operations and waits for them to return.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}

func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

// update loads the session, applies fn and saves the result even when fn
// fails, since failures may still raise an acknowledgment. With create set
// an unknown session starts fresh; otherwise it is reported as stale.
func (m *Manager) update(ctx context.Context, id string, create bool, fn func(st *State) error) (*State, error) {
	res, err := m.apply(ctx, id, create, fn)
	if err != nil {
		return nil, err
	}
	for _, t := range res.fresh {
		if nerr := m.notifier.Notify(ctx, id, t); nerr != nil {
			log.Warn().Err(nerr).Str("session", id).Str("toast", t.Title).Msg("failed to forward acknowledgment")
		}
	}
	return res.state, res.opErr
}

type applied struct {
	state *State
	fresh []model.Toast
	opErr error
}

func (m *Manager) apply(ctx context.Context, id string, create bool, fn func(st *State) error) (applied, error) {
	unlock := m.lock(id)
	defer unlock()

	st, err := m.store.Load(ctx, id)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		if !create {
			return applied{}, ErrStale
		}
		st = m.machine.NewState()
		log.Debug().Str("session", id).Msg("session started")
	case err != nil:
		return applied{}, fmt.Errorf("load session: %w", err)
	}

	m.machine.Prune(st)
	opErr := fn(st)
	st.LastSeen = m.machine.Now()
	fresh := st.drainFresh()
	if err := m.store.Save(ctx, id, st); err != nil {
		return applied{}, fmt.Errorf("save session: %w", err)
	}
	return applied{state: st.Clone(), fresh: fresh, opErr: opErr}, nil
}

// Task is a delayed operation in flight. It cannot be cancelled; waiting on
// it is optional.
type Task struct {
	Op   Op
	done chan struct{}
	err  error
}

func newTask(op Op) *Task {
	return &Task{Op: op, done: make(chan struct{})}
}

func doneTask(op Op, err error) *Task {
	t := newTask(op)
	t.finish(err)
	return t
}

func (t *Task) finish(err error) {
	t.err = err
	close(t.done)
}

func (t *Task) Done() <-chan struct{} { return t.done }

// Err is the outcome once Done is closed.
func (t *Task) Err() error {
	<-t.done
	return t.err
}

// Wait blocks until the task lands or ctx ends. Giving up does not stop the task.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// schedule runs work after delay and then lands the result through complete.
func (m *Manager) schedule(id string, delay time.Duration, ticket Ticket, work func(ctx context.Context) error, complete func(st *State, workErr error) error) *Task {
	task := newTask(ticket.Op)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-m.ctx.Done():
				timer.Stop()
				task.finish(ErrClosed)
				return
			}
		}
		if m.ctx.Err() != nil {
			task.finish(ErrClosed)
			return
		}

		var workErr error
		if work != nil {
			workErr = work(m.ctx)
		}
		_, err := m.update(m.ctx, id, false, func(st *State) error {
			return complete(st, workErr)
		})
		if errors.Is(err, ErrStale) {
			log.Debug().Str("session", id).Str("op", string(ticket.Op)).Msg("dropped result for a screen that is gone")
		}
		task.finish(err)
	}()
	return task
}

// State returns a copy of the session, starting one if needed.
func (m *Manager) State(ctx context.Context, id string) (*State, error) {
	return m.update(ctx, id, true, func(*State) error { return nil })
}

// Screen returns the session resolved for rendering.
func (m *Manager) Screen(ctx context.Context, id string) (Screen, error) {
	st, err := m.State(ctx, id)
	if err != nil {
		return Screen{}, err
	}
	sc := m.machine.Screen(st)
	if st.View.Kind == KindAdminLogin {
		if h, ok := m.authn.(auth.Hinter); ok {
			sc.LoginHint = h.Hint()
		}
	}
	return sc, nil
}

func (m *Manager) SetQuery(ctx context.Context, id, query string) (*Task, error) {
	var (
		ticket  Ticket
		started bool
	)
	_, err := m.update(ctx, id, true, func(st *State) error {
		var err error
		ticket, started, err = m.machine.SetQuery(st, query)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !started {
		return doneTask(OpSearch, nil), nil
	}
	return m.schedule(id, m.delays.Search, ticket, nil, func(st *State, _ error) error {
		return m.machine.CompleteSearch(st, ticket)
	}), nil
}

func (m *Manager) Select(ctx context.Context, id, templeID string) error {
	_, err := m.update(ctx, id, true, func(st *State) error {
		m.machine.Select(st, templeID)
		return nil
	})
	return err
}

func (m *Manager) Back(ctx context.Context, id string) error {
	_, err := m.update(ctx, id, true, func(st *State) error {
		m.machine.Back(st)
		return nil
	})
	return err
}

func (m *Manager) Directions(ctx context.Context, id string) (string, error) {
	var link string
	_, err := m.update(ctx, id, true, func(st *State) error {
		var err error
		link, err = m.machine.Directions(st)
		return err
	})
	return link, err
}

func (m *Manager) ToggleNotifications(ctx context.Context, id string) (bool, error) {
	var on bool
	_, err := m.update(ctx, id, true, func(st *State) error {
		var err error
		on, err = m.machine.ToggleNotifications(st)
		return err
	})
	return on, err
}

func (m *Manager) Acknowledge(ctx context.Context, id string, s Stub) error {
	_, err := m.update(ctx, id, true, func(st *State) error {
		return m.machine.Acknowledge(st, s)
	})
	return err
}

func (m *Manager) OpenAdminLogin(ctx context.Context, id string) error {
	_, err := m.update(ctx, id, true, func(st *State) error {
		return m.machine.OpenAdminLogin(st)
	})
	return err
}

func (m *Manager) CancelLogin(ctx context.Context, id string) error {
	_, err := m.update(ctx, id, true, func(st *State) error {
		return m.machine.CancelLogin(st)
	})
	return err
}

// SubmitLogin checks the credentials after the login delay. The password
// only lives in the task's closure.
func (m *Manager) SubmitLogin(ctx context.Context, id, username, password string) (*Task, error) {
	var ticket Ticket
	_, err := m.update(ctx, id, true, func(st *State) error {
		var err error
		ticket, err = m.machine.BeginLogin(st, username)
		return err
	})
	if err != nil {
		return nil, err
	}

	var hint string
	if h, ok := m.authn.(auth.Hinter); ok {
		hint = h.Hint()
	}
	return m.schedule(id, m.delays.Login, ticket,
		func(ctx context.Context) error {
			return m.authn.Authenticate(ctx, username, password)
		},
		func(st *State, authErr error) error {
			err := m.machine.CompleteLogin(st, ticket, authErr, hint)
			switch {
			case err == nil:
				log.Info().Str("session", id).Str("temple", ticket.View.TempleID).Msg("admin logged in")
			case errors.Is(err, ErrInvalidCredentials):
				log.Info().Str("session", id).Str("temple", ticket.View.TempleID).Msg("admin login rejected")
			}
			return err
		},
	), nil
}

func (m *Manager) EditDashboard(ctx context.Context, id string, e DashboardEdit) error {
	_, err := m.update(ctx, id, true, func(st *State) error {
		return m.machine.EditDashboard(st, e)
	})
	return err
}

func (m *Manager) UpdateStatus(ctx context.Context, id string) (*Task, error) {
	var ticket Ticket
	_, err := m.update(ctx, id, true, func(st *State) error {
		var err error
		ticket, err = m.machine.BeginUpdateStatus(st)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m.schedule(id, m.delays.Status, ticket, nil, func(st *State, _ error) error {
		return m.machine.CompleteUpdateStatus(st, ticket)
	}), nil
}

func (m *Manager) PublishAlert(ctx context.Context, id string) (*Task, error) {
	var ticket Ticket
	_, err := m.update(ctx, id, true, func(st *State) error {
		var err error
		ticket, err = m.machine.BeginPublishAlert(st)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m.schedule(id, m.delays.Alert, ticket, nil, func(st *State, _ error) error {
		return m.machine.CompletePublishAlert(st, ticket)
	}), nil
}

func (m *Manager) Logout(ctx context.Context, id string) error {
	_, err := m.update(ctx, id, true, func(st *State) error {
		return m.machine.Logout(st)
	})
	return err
}

func (m *Manager) SetLanguage(ctx context.Context, id, code string) error {
	_, err := m.update(ctx, id, true, func(st *State) error {
		return m.machine.SetLanguage(st, code)
	})
	return err
}

func (m *Manager) DismissToast(ctx context.Context, id, toastID string) error {
	_, err := m.update(ctx, id, true, func(st *State) error {
		m.machine.DismissToast(st, toastID)
		return nil
	})
	return err
}

// End forgets a session. Delayed operations still in flight are dropped
// when they land.
func (m *Manager) End(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()
	return m.store.Delete(ctx, id)
}

// Sweep removes sessions idle for longer than idle.
func (m *Manager) Sweep(ctx context.Context, idle time.Duration) (int, error) {
	return m.store.Sweep(ctx, m.machine.Now().Add(-idle))
}
