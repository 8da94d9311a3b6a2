package alerts

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/models"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/store"
	"github.com/dmitrijs2005/trackmydeposits/internal/logging"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (t *fakeTimer) fire() { t.f() }

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) afterFunc(d time.Duration, f func()) timer {
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// withFakes swaps the package seams for the duration of the test.
func withFakes(t *testing.T) *fakeClock {
	t.Helper()
	c := &fakeClock{}
	oldAfter, oldID := afterFunc, newID
	n := 0
	afterFunc = c.afterFunc
	newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	t.Cleanup(func() { afterFunc, newID = oldAfter, oldID })
	return c
}

func alertIDs(st *store.Store) []string {
	out := []string{}
	for _, a := range st.State().Alerts {
		out = append(out, a.ID)
	}
	return out
}

func TestBus_RaiseSchedulesExpiry(t *testing.T) {
	clock := withFakes(t)
	st := store.New(store.Initial())
	b := NewBus(st, DefaultTimeout, logging.Nop())

	id := b.Raise("saved", models.SeveritySuccess)

	require.Equal(t, "id-1", id)
	require.Len(t, clock.timers, 1)
	assert.Equal(t, DefaultTimeout, clock.timers[0].d)
	assert.Equal(t, []models.Alert{{ID: id, Message: "saved", Severity: models.SeveritySuccess}}, st.State().Alerts)

	clock.timers[0].fire()

	assert.Empty(t, st.State().Alerts)
	assert.Equal(t, 0, b.Pending())
}

func TestBus_NeverHoldsMoreThanThree(t *testing.T) {
	clock := withFakes(t)
	st := store.New(store.Initial())
	b := NewBus(st, time.Second, logging.Nop())

	for i := 0; i < 5; i++ {
		b.Info(fmt.Sprintf("m%d", i))
		assert.LessOrEqual(t, len(st.State().Alerts), store.MaxAlerts)
	}

	assert.Equal(t, []string{"id-3", "id-4", "id-5"}, alertIDs(st))
	assert.Equal(t, 3, b.Pending())
	assert.True(t, clock.timers[0].stopped)
	assert.True(t, clock.timers[1].stopped)
	assert.False(t, clock.timers[2].stopped)
}

func TestBus_DismissThenExpiry(t *testing.T) {
	clock := withFakes(t)
	st := store.New(store.Initial())
	b := NewBus(st, time.Second, logging.Nop())

	keep := b.Info("keep")
	id := b.Warning("go away")

	b.Dismiss(id)
	assert.Equal(t, []string{keep}, alertIDs(st))
	assert.True(t, clock.timers[1].stopped)

	clock.timers[1].fire()
	b.Dismiss(id)

	assert.Equal(t, []string{keep}, alertIDs(st))
}

func TestBus_ExpiryThenDismiss(t *testing.T) {
	clock := withFakes(t)
	st := store.New(store.Initial())
	b := NewBus(st, time.Second, logging.Nop())

	id := b.Error("boom")
	clock.timers[0].fire()
	b.Dismiss(id)
	clock.timers[0].fire()

	assert.Empty(t, st.State().Alerts)
}

func TestBus_DismissUnknown(t *testing.T) {
	withFakes(t)
	st := store.New(store.Initial())
	b := NewBus(st, time.Second, logging.Nop())
	b.Info("x")

	b.Dismiss("nope")

	assert.Len(t, st.State().Alerts, 1)
}

func TestBus_Helpers(t *testing.T) {
	withFakes(t)
	st := store.New(store.Initial())
	b := NewBus(st, time.Second, logging.Nop())

	b.Error("")
	b.Success("ok")
	b.Raise("odd", models.Severity("fatal"))

	got := st.State().Alerts
	require.Len(t, got, 3)
	assert.Equal(t, models.Alert{ID: "id-1", Message: UnknownError, Severity: models.SeverityError}, got[0])
	assert.Equal(t, models.SeveritySuccess, got[1].Severity)
	assert.Equal(t, models.SeverityInfo, got[2].Severity)
}

func TestBus_ZeroTimeoutExpiresAtOnce(t *testing.T) {
	for _, timeout := range []time.Duration{0, -time.Second} {
		t.Run(timeout.String(), func(t *testing.T) {
			clock := withFakes(t)
			st := store.New(store.Initial())
			b := NewBus(st, timeout, logging.Nop())

			b.Info("blink")

			require.Len(t, clock.timers, 1)
			assert.Equal(t, time.Duration(0), clock.timers[0].d)

			clock.timers[0].fire()
			assert.Empty(t, st.State().Alerts)
			assert.Equal(t, 0, b.Pending())
		})
	}
}

func TestBus_ZeroTimeoutRealTimer(t *testing.T) {
	st := store.New(store.Initial())
	b := NewBus(st, 0, logging.Nop())

	b.Info("gone")

	assert.Eventually(t, func() bool { return len(st.State().Alerts) == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, b.Pending())
}

func TestBus_ListenerMayCallBack(t *testing.T) {
	withFakes(t)
	st := store.New(store.Initial())
	b := NewBus(st, time.Second, logging.Nop())

	st.Subscribe(func(s store.State) {
		for _, a := range s.Alerts {
			if a.Message == "echo" {
				b.Dismiss(a.ID)
				b.Info("echoed")
			}
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Info("echo")
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bus deadlocked inside a store listener")
	}

	got := st.State().Alerts
	require.Len(t, got, 1)
	assert.Equal(t, "echoed", got[0].Message)
}

func TestBus_Stop(t *testing.T) {
	clock := withFakes(t)
	st := store.New(store.Initial())
	b := NewBus(st, time.Second, logging.Nop())

	b.Info("a")
	b.Info("b")
	b.Stop()

	for _, tm := range clock.timers {
		assert.True(t, tm.stopped)
	}
	assert.Equal(t, 0, b.Pending())

	b.Info("c")
	assert.Len(t, clock.timers, 2)
	assert.Len(t, st.State().Alerts, 3)
}

func TestBus_RealTimer(t *testing.T) {
	st := store.New(store.Initial())
	b := NewBus(st, 10*time.Millisecond, logging.Nop())

	b.Info("short lived")

	assert.Eventually(t, func() bool { return len(st.State().Alerts) == 0 }, time.Second, 5*time.Millisecond)
}
