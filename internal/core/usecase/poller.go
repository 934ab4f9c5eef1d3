package usecase

import (
	"time"

	"github.com/mkuznetsov/finsight/internal/core/domain"
)

type PollState int

const (
	PollIdle PollState = iota
	PollArmed
)

// Poller keeps at most one active re-fetch timer per observed
// document id. A document is polled while its status is non-terminal;
// reaching COMPLETED or FAILED disarms it.
type Poller struct {
	interval time.Duration
	armed    map[string]bool
}

func NewPoller(interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Poller{
		interval: interval,
		armed:    make(map[string]bool),
	}
}

func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Arm transitions the id to ARMED. Arming an already armed id is a
// no-op; the return value reports whether the caller now owns a timer
// to start.
func (p *Poller) Arm(id string) bool {
	if p.armed[id] {
		return false
	}
	p.armed[id] = true
	return true
}

func (p *Poller) Disarm(id string) {
	delete(p.armed, id)
}

func (p *Poller) State(id string) PollState {
	if p.armed[id] {
		return PollArmed
	}
	return PollIdle
}

// Evaluate reconciles poll state with the latest fetched status and
// reports whether a timer must be started. Must be called after every
// applied fetch so the armed-iff-non-terminal invariant holds.
func (p *Poller) Evaluate(id string, status domain.DocumentStatus) bool {
	if status.Terminal() {
		p.Disarm(id)
		return false
	}
	return p.Arm(id)
}

func (p *Poller) ArmedCount() int {
	return len(p.armed)
}
