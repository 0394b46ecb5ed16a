package session

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is the fixed poll period.
const DefaultInterval = time.Second

// TickFunc handles one tick. It runs on the poller goroutine and must not
// block for long; slow work belongs in a goroutine it starts.
type TickFunc func(id uint64)

// Poller calls a TickFunc on a fixed period. Ticks are numbered from 1.
// A tick that finds the previous one's work still running is not delayed
// or merged.
type Poller struct {
	interval time.Duration
	onTick   TickFunc

	seq      atomic.Uint64
	stop     chan struct{}
	done     chan struct{}
	startOne sync.Once
	stopOne  sync.Once
}

// NewPoller creates a stopped poller. A non-positive interval uses
// DefaultInterval.
func NewPoller(interval time.Duration, fn TickFunc) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		interval: interval,
		onTick:   fn,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins ticking. The first tick fires one interval after Start.
// Calling Start again has no effect.
func (p *Poller) Start() {
	p.startOne.Do(func() {
		go p.run()
	})
}

// Stop cancels future ticks and waits for a tick in progress to return.
// Safe to call more than once, and before Start.
func (p *Poller) Stop() {
	p.stopOne.Do(func() {
		close(p.stop)
	})
	// Never started: consume the start so run never launches.
	p.startOne.Do(func() { close(p.done) })
	<-p.done
}

// Ticks returns how many ticks have fired.
func (p *Poller) Ticks() uint64 {
	return p.seq.Load()
}

// Interval returns the tick period.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

func (p *Poller) run() {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			// Stop wins over a tick that became ready at the same time.
			select {
			case <-p.stop:
				return
			default:
			}
			p.onTick(p.seq.Add(1))
		}
	}
}
