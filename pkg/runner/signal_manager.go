package runner

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// SignalManager turns SIGINT/SIGTERM into a stream of interrupts so Ctrl+C
// can stop a runaway machine without killing the process.
// Feed C() to WithInterruptSource.
type SignalManager struct {
	sigs chan os.Signal
	out  chan struct{}
	done chan struct{}
	once sync.Once
}

// NewSignalManager creates a new manager and immediately starts listening for signals.
func NewSignalManager() *SignalManager {
	sm := &SignalManager{
		sigs: make(chan os.Signal, 1),
		out:  make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	signal.Notify(sm.sigs, os.Interrupt, syscall.SIGTERM)
	go sm.forward()
	return sm
}

func (sm *SignalManager) forward() {
	for {
		select {
		case <-sm.done:
			return
		case <-sm.sigs:
			// Coalesce: one pending interrupt is enough.
			select {
			case sm.out <- struct{}{}:
			default:
			}
		}
	}
}

// C delivers one value per received signal.
func (sm *SignalManager) C() <-chan struct{} {
	return sm.out
}

// Stop permanently stops the signal listener and restores default handling.
func (sm *SignalManager) Stop() {
	sm.once.Do(func() {
		signal.Stop(sm.sigs)
		close(sm.done)
	})
}
