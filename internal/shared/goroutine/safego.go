// Package goroutine launches background goroutines that log instead of
// crashing the process when they panic.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"medrecords/internal/shared/logger"
)

// SafeGo runs fn on a new goroutine and recovers any panic.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer Recover(log, name)
		fn()
	}()
}

// Recover is meant to be deferred; it logs the panic value and stack.
func Recover(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
