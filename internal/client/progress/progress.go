package progress

import (
	"sync"
	"time"
)

// Ticker reports a synthetic progress value that grows by step every
// interval until it reaches limit.
type Ticker struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Start begins reporting from zero. fn is called from the ticker goroutine and
// is never called again once Stop has returned.
func Start(interval time.Duration, step, limit int, fn func(value int)) *Ticker {
	t := &Ticker{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go t.run(interval, step, limit, fn)

	return t
}

func (t *Ticker) run(interval time.Duration, step, limit int, fn func(int)) {
	defer close(t.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	value := 0
	for value < limit {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
		}

		value = min(value+step, limit)

		select {
		case <-t.stop:
			return
		default:
		}
		fn(value)
	}
}

// Stop halts the ticker and waits for an in-progress callback to return. It
// is safe to call more than once and on a nil Ticker.
func (t *Ticker) Stop() {
	if t == nil {
		return
	}

	t.stopOnce.Do(func() {
		close(t.stop)
	})
	<-t.done
}
