package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockExpiredStore struct {
	deleted int64
	calls   int
	err     error
}

func (m *mockExpiredStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.calls++
	return m.deleted, m.err
}

func TestReaper_Sweep(t *testing.T) {
	codes := &mockExpiredStore{deleted: 3}
	sessions := &mockExpiredStore{deleted: 1}
	reaper := NewReaper(codes, sessions, time.Hour)

	reaper.Sweep(context.Background())

	if codes.calls != 1 || sessions.calls != 1 {
		t.Fatalf("sweep должен чистить оба хранилища: codes=%d sessions=%d", codes.calls, sessions.calls)
	}
}

func TestReaper_SweepContinuesOnError(t *testing.T) {
	codes := &mockExpiredStore{err: errors.New("база недоступна")}
	sessions := &mockExpiredStore{}
	reaper := NewReaper(codes, sessions, time.Hour)

	// Ошибка при чистке кодов не мешает чистке сессий.
	reaper.Sweep(context.Background())

	if sessions.calls != 1 {
		t.Fatalf("чистка сессий должна выполниться несмотря на ошибку кодов")
	}
}

func TestReaper_RunStopsOnCancel(t *testing.T) {
	reaper := NewReaper(&mockExpiredStore{}, &mockExpiredStore{}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reaper.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("run должен завершаться при отмене контекста")
	}
}
