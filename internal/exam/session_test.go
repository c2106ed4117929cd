package exam

import (
	"errors"
	"testing"
	"time"
)

// fakeClock 손으로 시간을 돌리는 시계
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestSession(budgetSeconds int) (*Session, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	s := NewSession("exam-1", 8, nil, budgetSeconds, clock)
	return s, clock
}

func TestSessionLifecycle(t *testing.T) {
	s, _ := newTestSession(1800)

	if s.State() != StateNotStarted {
		t.Fatalf("initial state = %s", s.State())
	}
	if err := s.RecordAnswer("q_0", "1"); !errors.Is(err, ErrNotInProgress) {
		t.Fatalf("answer before start: err = %v", err)
	}
	if err := s.Submit(); !errors.Is(err, ErrNotInProgress) {
		t.Fatalf("submit before start: err = %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.State() != StateInProgress {
		t.Fatalf("state after start = %s", s.State())
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("double start: err = %v", err)
	}

	if err := s.RecordAnswer("q_0", "2"); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if err := s.RecordAnswer("q_0", "3"); err != nil {
		t.Fatalf("overwrite answer: %v", err)
	}
	if s.Answers["q_0"] != "3" {
		t.Fatalf("answer = %q, want latest value", s.Answers["q_0"])
	}

	if err := s.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.State() != StateSubmitted || !s.Finished() {
		t.Fatalf("state after submit = %s", s.State())
	}

	// 종료 상태는 단방향: 어느 조작도 상태를 되돌리지 못한다
	if err := s.RecordAnswer("q_1", "1"); !errors.Is(err, ErrNotInProgress) {
		t.Fatalf("answer after submit: err = %v", err)
	}
	if err := s.Submit(); !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("double submit: err = %v", err)
	}
	if s.Tick() {
		t.Fatal("Tick must not transition a submitted session")
	}
}

func TestSessionRemainingSeconds(t *testing.T) {
	s, clock := newTestSession(1800)

	if got := s.RemainingSeconds(); got != 1800 {
		t.Fatalf("before start: remaining = %d, want full budget", got)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clock.advance(10 * time.Minute)
	if got := s.RemainingSeconds(); got != 1200 {
		t.Fatalf("after 10m: remaining = %d, want 1200", got)
	}

	// 예산을 넘겨도 음수로 내려가지 않는다
	clock.advance(40 * time.Minute)
	if got := s.RemainingSeconds(); got != 0 {
		t.Fatalf("past budget: remaining = %d, want 0", got)
	}
}

func TestSessionTimeout(t *testing.T) {
	s, clock := newTestSession(60)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Tick() {
		t.Fatal("Tick with time left must not transition")
	}

	clock.advance(61 * time.Second)
	if !s.Tick() {
		t.Fatal("Tick past budget must transition to timed_out")
	}
	if s.State() != StateTimedOut || !s.Finished() {
		t.Fatalf("state = %s, want timed_out", s.State())
	}

	// 전이는 한 번만 보고된다
	if s.Tick() {
		t.Fatal("second Tick must report no transition")
	}
	// 타임아웃 후에는 답 기록도 명시적 제출도 막힌다
	if err := s.RecordAnswer("q_0", "1"); !errors.Is(err, ErrNotInProgress) {
		t.Fatalf("answer after timeout: err = %v", err)
	}
	if err := s.Submit(); !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("submit after timeout: err = %v", err)
	}
	if got := s.RemainingSeconds(); got != 0 {
		t.Fatalf("remaining after timeout = %d, want 0", got)
	}
}
