package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpass/passgen-go/internal/history"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestStore(ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore(ttl, 5)
	s.now = clock.Now
	return s, clock
}

func TestCreateAndGet(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	sess := s.Create()
	require.NotEqual(t, uuid.Nil, sess.ID)
	assert.Equal(t, 5, sess.History.Cap())

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestGetUnknown(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	_, err := s.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionsExpire(t *testing.T) {
	s, clock := newTestStore(time.Minute)

	idle := s.Create()
	active := s.Create()
	active.History.Push(history.Entry{Password: "kept"})

	clock.t = clock.t.Add(45 * time.Second)
	_, err := s.Get(active.ID)
	require.NoError(t, err)

	clock.t = clock.t.Add(30 * time.Second)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	_, err = s.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	got, err := s.Get(active.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.History.Items()[0].Password)
}

func TestZeroTTLNeverExpires(t *testing.T) {
	s, clock := newTestStore(0)
	sess := s.Create()

	clock.t = clock.t.Add(24 * 365 * time.Hour)
	assert.Equal(t, 0, s.Sweep())

	_, err := s.Get(sess.ID)
	assert.NoError(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := NewStore(time.Nanosecond, 1)
	s.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
