package usecase

import (
	"testing"
	"time"

	"github.com/mkuznetsov/finsight/internal/core/domain"
)

func TestPollerArmIsIdempotent(t *testing.T) {
	p := NewPoller(time.Second)

	if !p.Arm("doc-1") {
		t.Fatalf("first Arm() should start a timer")
	}
	if p.Arm("doc-1") {
		t.Fatalf("second Arm() for the same id must be a no-op")
	}
	if p.ArmedCount() != 1 {
		t.Fatalf("expected 1 armed id, got %d", p.ArmedCount())
	}
}

func TestPollerEvaluateFollowsStatus(t *testing.T) {
	tests := []struct {
		status    domain.DocumentStatus
		wantState PollState
	}{
		{domain.StatusUploaded, PollArmed},
		{domain.StatusProcessing, PollArmed},
		{domain.StatusCompleted, PollIdle},
		{domain.StatusFailed, PollIdle},
	}

	for _, tt := range tests {
		p := NewPoller(time.Second)
		p.Evaluate("doc-1", tt.status)
		if got := p.State("doc-1"); got != tt.wantState {
			t.Fatalf("Evaluate(%s): state = %v, want %v", tt.status, got, tt.wantState)
		}
	}
}

func TestPollerEvaluateDisarmsOnTerminal(t *testing.T) {
	p := NewPoller(time.Second)
	p.Evaluate("doc-1", domain.StatusProcessing)
	if p.State("doc-1") != PollArmed {
		t.Fatalf("expected armed after PROCESSING")
	}

	if p.Evaluate("doc-1", domain.StatusCompleted) {
		t.Fatalf("terminal status must not request a timer")
	}
	if p.State("doc-1") != PollIdle {
		t.Fatalf("expected idle after COMPLETED")
	}
	if p.ArmedCount() != 0 {
		t.Fatalf("expected no armed ids, got %d", p.ArmedCount())
	}
}

func TestPollerDefaultInterval(t *testing.T) {
	p := NewPoller(0)
	if p.Interval() != 3*time.Second {
		t.Fatalf("expected 3s default interval, got %v", p.Interval())
	}
}

func TestPollerTracksIDsIndependently(t *testing.T) {
	p := NewPoller(time.Second)
	p.Evaluate("doc-1", domain.StatusProcessing)
	p.Evaluate("doc-2", domain.StatusUploaded)
	p.Evaluate("doc-1", domain.StatusFailed)

	if p.State("doc-1") != PollIdle {
		t.Fatalf("doc-1 should be idle")
	}
	if p.State("doc-2") != PollArmed {
		t.Fatalf("doc-2 should remain armed")
	}
}
