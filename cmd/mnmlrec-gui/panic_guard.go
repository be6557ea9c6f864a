package main

import (
	"fmt"

	"fyne.io/fyne/v2"

	"github.com/oukeidos/mnmlrec/internal/logger"
)

func withPanicGuard(scope string, onPanic func(any), fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered panic", "scope", scope, "panic", fmt.Sprint(r))
			if onPanic != nil {
				onPanic(r)
			}
		}
	}()
	fn()
}

func safeDo(scope string, fn func()) {
	withPanicGuard(scope+".dispatch", nil, func() {
		fyne.Do(func() {
			withPanicGuard(scope, nil, fn)
		})
	})
}

// uiDispatcher hands settings work to the fyne main goroutine.
func uiDispatcher(scope string) func(func()) {
	return func(fn func()) {
		safeDo(scope, fn)
	}
}
