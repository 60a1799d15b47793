package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Nixie-Tech-LLC/darshan/internal/directory"
	"github.com/Nixie-Tech-LLC/darshan/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingNotifier struct {
	mu     sync.Mutex
	toasts map[string][]model.Toast
	err    error
}

func (r *recordingNotifier) Notify(_ context.Context, sessionID string, t model.Toast) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.toasts == nil {
		r.toasts = make(map[string][]model.Toast)
	}
	r.toasts[sessionID] = append(r.toasts[sessionID], t)
	return r.err
}

func (r *recordingNotifier) titles(sessionID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, t := range r.toasts[sessionID] {
		out = append(out, t.Title)
	}
	return out
}

// gateAuth blocks every attempt until release is closed.
type gateAuth struct {
	release chan struct{}
}

func (g gateAuth) Authenticate(ctx context.Context, username, password string) error {
	select {
	case <-g.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	if username == "admin" && password == "temple123" {
		return nil
	}
	return ErrInvalidCredentials
}

func newTestManager(t *testing.T, opts Options) *Manager {
	t.Helper()
	if opts.Directory == nil {
		dir, err := directory.New(fixtureTemples())
		require.NoError(t, err)
		opts.Directory = dir
	}
	m := NewManager(opts)
	t.Cleanup(m.Close)
	return m
}

func wait(t *testing.T, task *Task) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := task.Wait(ctx)
	require.NotErrorIs(t, err, context.DeadlineExceeded)
	return err
}

func dashboardSession(t *testing.T, m *Manager, id, templeID string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, m.Select(ctx, id, templeID))
	require.NoError(t, m.OpenAdminLogin(ctx, id))
	task, err := m.SubmitLogin(ctx, id, "admin", "temple123")
	require.NoError(t, err)
	require.NoError(t, wait(t, task))
}

func TestManagerStartsSessionsOnFirstUse(t *testing.T) {
	m := newTestManager(t, Options{})
	ctx := context.Background()

	sc, err := m.Screen(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, Landing(), sc.View)
	assert.Len(t, sc.Popular, 3)
	assert.Len(t, sc.Languages, len(Languages))

	require.NoError(t, m.Select(ctx, "s1", "sun-shrine"))
	other, err := m.State(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, Landing(), other.View)
}

func TestManagerSearchLandsAfterDelay(t *testing.T) {
	m := newTestManager(t, Options{Delays: Delays{Search: 10 * time.Millisecond}})
	ctx := context.Background()

	task, err := m.SetQuery(ctx, "s1", "hilltop")
	require.NoError(t, err)

	st, err := m.State(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, st.Search.Pending)

	require.NoError(t, wait(t, task))
	sc, err := m.Screen(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, sc.Suggestions, 1)
	assert.Equal(t, "sun-shrine", sc.Suggestions[0].ID)
}

func TestManagerOnlyLatestSearchLands(t *testing.T) {
	m := newTestManager(t, Options{Delays: Delays{Search: 20 * time.Millisecond}})
	ctx := context.Background()

	first, err := m.SetQuery(ctx, "s1", "sun")
	require.NoError(t, err)
	second, err := m.SetQuery(ctx, "s1", "lotus")
	require.NoError(t, err)

	assert.ErrorIs(t, wait(t, first), ErrStale)
	require.NoError(t, wait(t, second))

	st, err := m.State(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"lotus-hall"}, st.Search.MatchIDs)
}

func TestManagerShortQueryFinishesImmediately(t *testing.T) {
	m := newTestManager(t, Options{Delays: Delays{Search: time.Hour}})

	task, err := m.SetQuery(context.Background(), "s1", "l")
	require.NoError(t, err)
	select {
	case <-task.Done():
	default:
		t.Fatal("short query should not wait for the search delay")
	}
	assert.NoError(t, task.Err())
}

func TestManagerLoginFlow(t *testing.T) {
	notes := &recordingNotifier{}
	m := newTestManager(t, Options{Notifier: notes})
	ctx := context.Background()

	require.NoError(t, m.Select(ctx, "s1", "lotus-hall"))
	require.NoError(t, m.OpenAdminLogin(ctx, "s1"))

	sc, err := m.Screen(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Try: admin / temple123", sc.LoginHint)

	task, err := m.SubmitLogin(ctx, "s1", "admin", "wrong")
	require.NoError(t, err)
	assert.ErrorIs(t, wait(t, task), ErrInvalidCredentials)

	st, err := m.State(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, AdminLogin("lotus-hall"), st.View)
	assert.Equal(t, "admin", st.Login.Username)

	task, err = m.SubmitLogin(ctx, "s1", "admin", "temple123")
	require.NoError(t, err)
	require.NoError(t, wait(t, task))

	st, err = m.State(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, AdminDashboard("lotus-hall"), st.View)
	assert.Equal(t, []string{"Login Failed", "Login Successful"}, notes.titles("s1"))
}

func TestManagerLoginIsBusyWhilePending(t *testing.T) {
	gate := gateAuth{release: make(chan struct{})}
	m := newTestManager(t, Options{Authenticator: gate})
	ctx := context.Background()

	require.NoError(t, m.Select(ctx, "s1", "lotus-hall"))
	require.NoError(t, m.OpenAdminLogin(ctx, "s1"))

	task, err := m.SubmitLogin(ctx, "s1", "admin", "temple123")
	require.NoError(t, err)
	_, err = m.SubmitLogin(ctx, "s1", "admin", "temple123")
	assert.ErrorIs(t, err, ErrBusy)

	close(gate.release)
	require.NoError(t, wait(t, task))
}

func TestManagerDropsLoginAfterBack(t *testing.T) {
	gate := gateAuth{release: make(chan struct{})}
	notes := &recordingNotifier{}
	m := newTestManager(t, Options{Authenticator: gate, Notifier: notes})
	ctx := context.Background()

	require.NoError(t, m.Select(ctx, "s1", "lotus-hall"))
	require.NoError(t, m.OpenAdminLogin(ctx, "s1"))
	task, err := m.SubmitLogin(ctx, "s1", "admin", "temple123")
	require.NoError(t, err)

	require.NoError(t, m.Back(ctx, "s1"))
	close(gate.release)
	assert.ErrorIs(t, wait(t, task), ErrStale)

	st, err := m.State(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, Landing(), st.View)
	assert.Empty(t, st.Toasts)
	assert.Empty(t, notes.titles("s1"))
}

func TestManagerDropsAlertAfterLogout(t *testing.T) {
	m := newTestManager(t, Options{Delays: Delays{Alert: 30 * time.Millisecond}})
	ctx := context.Background()
	dashboardSession(t, m, "s1", "sun-shrine")

	draft := "Evening closed"
	require.NoError(t, m.EditDashboard(ctx, "s1", DashboardEdit{AlertDraft: &draft}))
	task, err := m.PublishAlert(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx, "s1"))

	assert.ErrorIs(t, wait(t, task), ErrStale)
	st, err := m.State(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, Detail("sun-shrine"), st.View)
	require.Len(t, st.Toasts, 1)
	assert.Equal(t, "Logged Out", st.Toasts[0].Title)
}

func TestManagerDashboardOperations(t *testing.T) {
	m := newTestManager(t, Options{})
	ctx := context.Background()
	dashboardSession(t, m, "s1", "sun-shrine")

	task, err := m.UpdateStatus(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, wait(t, task))

	_, err = m.PublishAlert(ctx, "s1")
	assert.ErrorIs(t, err, ErrValidation)

	draft := "Evening closed"
	require.NoError(t, m.EditDashboard(ctx, "s1", DashboardEdit{AlertDraft: &draft}))
	task, err = m.PublishAlert(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, wait(t, task))

	st, err := m.State(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, st.Dashboard.AlertDraft)
	assert.Equal(t, "Alert Published", st.Toasts[0].Title)

	rec, ok := m.Machine().Directory.Lookup("sun-shrine")
	require.True(t, ok)
	assert.Equal(t, []string{"Evening queue is long"}, rec.Alerts)
}

func TestManagerEndDropsPendingWork(t *testing.T) {
	m := newTestManager(t, Options{Delays: Delays{Status: 30 * time.Millisecond}})
	ctx := context.Background()
	dashboardSession(t, m, "s1", "lotus-hall")

	task, err := m.UpdateStatus(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, m.End(ctx, "s1"))
	assert.ErrorIs(t, wait(t, task), ErrStale)

	st, err := m.State(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, Landing(), st.View)
}

func TestManagerCloseStopsDelayedWork(t *testing.T) {
	dir, err := directory.New(fixtureTemples())
	require.NoError(t, err)
	m := NewManager(Options{Directory: dir, Delays: Delays{Status: time.Hour}})
	ctx := context.Background()
	dashboardSession(t, m, "s1", "lotus-hall")

	task, err := m.UpdateStatus(ctx, "s1")
	require.NoError(t, err)
	m.Close()
	assert.ErrorIs(t, task.Err(), ErrClosed)
}

func TestManagerNotifierFailureDoesNotFailTheOperation(t *testing.T) {
	notes := &recordingNotifier{err: errors.New("broker down")}
	m := newTestManager(t, Options{Notifier: notes})
	ctx := context.Background()

	require.NoError(t, m.Select(ctx, "s1", "river-ghat"))
	on, err := m.ToggleNotifications(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []string{"Notifications Enabled"}, notes.titles("s1"))
}

func TestManagerConcurrentOperationsStayConsistent(t *testing.T) {
	m := newTestManager(t, Options{})
	ctx := context.Background()
	require.NoError(t, m.Select(ctx, "s1", "river-ghat"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.ToggleNotifications(ctx, "s1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	st, err := m.State(ctx, "s1")
	require.NoError(t, err)
	// an even number of toggles ends where it started
	assert.False(t, st.Notifications)
}

func TestManagerSweepRemovesIdleSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 14, 6, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(0)
	m := newTestManager(t, Options{Store: store, Now: clock.Now})
	ctx := context.Background()

	_, err := m.State(ctx, "old")
	require.NoError(t, err)
	clock.Advance(time.Hour)
	_, err = m.State(ctx, "new")
	require.NoError(t, err)

	n, err := m.Sweep(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, store.Len())
}

func TestJanitorRunsOnSchedule(t *testing.T) {
	store := NewMemoryStore(0)
	m := newTestManager(t, Options{Store: store})
	_, err := m.State(context.Background(), "s1")
	require.NoError(t, err)

	c, err := StartJanitor(m, "@every 1s", -time.Hour)
	require.NoError(t, err)
	defer func() { <-c.Stop().Done() }()

	assert.Eventually(t, func() bool { return store.Len() == 0 }, 5*time.Second, 50*time.Millisecond)
}

func TestJanitorRejectsBadSchedule(t *testing.T) {
	m := newTestManager(t, Options{})
	_, err := StartJanitor(m, "every so often", time.Minute)
	assert.Error(t, err)
}
