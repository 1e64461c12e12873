package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rit1708/Digital-menu/internal/logger"
)

// ExpiredStore удаляет записи, истёкшие к моменту now.
type ExpiredStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Reaper периодически вычищает просроченные коды подтверждения и сессии.
// Проверки срока при чтении остаются основным механизмом, поэтому период
// чистки не влияет на корректность — только на размер таблиц.
type Reaper struct {
	codes    ExpiredStore
	sessions ExpiredStore
	interval time.Duration
}

// NewReaper создаёт чистильщик с заданным периодом.
func NewReaper(codes, sessions ExpiredStore, interval time.Duration) *Reaper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Reaper{codes: codes, sessions: sessions, interval: interval}
}

// Run выполняет чистку по таймеру до отмены контекста.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep выполняет один проход чистки.
func (r *Reaper) Sweep(ctx context.Context) {
	now := time.Now()

	codes, err := r.codes.DeleteExpired(ctx, now)
	if err != nil && logger.Log != nil {
		logger.Log.WithError(err).Warn("reaper: не удалось удалить просроченные коды")
	}

	sessions, err := r.sessions.DeleteExpired(ctx, now)
	if err != nil && logger.Log != nil {
		logger.Log.WithError(err).Warn("reaper: не удалось удалить просроченные сессии")
	}

	if (codes > 0 || sessions > 0) && logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"codes":    codes,
			"sessions": sessions,
		}).Debug("reaper: удалены просроченные записи")
	}
}
