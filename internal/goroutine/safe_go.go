package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/rit1708/Digital-menu/internal/logger"
)

// SafeGo запускает горутину с обработкой panic.
// Используется для фоновых задач: чистильщика и WebSocket хаба.
func SafeGo(fn func()) {
	go func() {
		defer recoverPanic()
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer recoverPanic()
		fn(ctx)
	}()
}

func recoverPanic() {
	if r := recover(); r != nil {
		if logger.Log != nil {
			logger.Log.Errorf("Panic in goroutine: %v\nStack trace:\n%s", r, debug.Stack())
		}
	}
}
