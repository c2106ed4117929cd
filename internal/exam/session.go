package exam

import (
	"errors"
	"time"
)

// Clock 세션이 쓰는 시계. 테스트에서 바꿔 끼운다.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock 실제 벽시계
var SystemClock Clock = realClock{}

type SessionState string

const (
	StateNotStarted SessionState = "not_started"
	StateInProgress SessionState = "in_progress"
	StateSubmitted  SessionState = "submitted"
	StateTimedOut   SessionState = "timed_out"
)

var (
	ErrAlreadyStarted  = errors.New("session already started")
	ErrNotInProgress   = errors.New("session not in progress")
	ErrSessionFinished = errors.New("session already finished")
)

// Session 시험 1회분의 생명주기를 드는 값 객체.
// not_started → in_progress → {submitted | timed_out} 단방향이며
// 종료 상태에서는 재개도 일시정지도 없다.
type Session struct {
	ExamID        string
	Grade         float64
	Questions     []*QuestionSkeleton
	Answers       AnswerRecord
	BudgetSeconds int
	StartTime     time.Time

	state SessionState
	clock Clock
}

func NewSession(examID string, grade float64, questions []*QuestionSkeleton, budgetSeconds int, clock Clock) *Session {
	if clock == nil {
		clock = SystemClock
	}
	return &Session{
		ExamID:        examID,
		Grade:         grade,
		Questions:     questions,
		Answers:       make(AnswerRecord),
		BudgetSeconds: budgetSeconds,
		state:         StateNotStarted,
		clock:         clock,
	}
}

// RestoreSession 저장돼 있던 세션을 상태 기계로 되살린다. 시작 시각과
// 상태는 저장값을 그대로 믿고, 이후 전이는 Session 규칙만 따른다.
func RestoreSession(examID string, grade float64, state SessionState, startTime time.Time, budgetSeconds int, clock Clock) *Session {
	if clock == nil {
		clock = SystemClock
	}
	return &Session{
		ExamID:        examID,
		Grade:         grade,
		Answers:       make(AnswerRecord),
		BudgetSeconds: budgetSeconds,
		StartTime:     startTime,
		state:         state,
		clock:         clock,
	}
}

func (s *Session) State() SessionState { return s.state }

// Start 시작을 확정하고 startTime을 잡는다
func (s *Session) Start() error {
	if s.state != StateNotStarted {
		return ErrAlreadyStarted
	}
	s.StartTime = s.clock.Now()
	s.state = StateInProgress
	return nil
}

// RecordAnswer 진행 중에만 답을 기록할 수 있다. 제출이 시작되면 읽기 전용
func (s *Session) RecordAnswer(questionID, value string) error {
	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	s.Answers[questionID] = value
	return nil
}

// RemainingSeconds 남은 시간. 음수로는 내려가지 않는다
func (s *Session) RemainingSeconds() int {
	if s.state == StateNotStarted {
		return s.BudgetSeconds
	}
	if s.state != StateInProgress {
		return 0
	}
	elapsed := int(s.clock.Now().Sub(s.StartTime).Seconds())
	remaining := s.BudgetSeconds - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Tick 시간 예산을 검사해서 소진됐으면 timed_out으로 전이한다.
// 전이가 일어났을 때만 true. 타임아웃 시 제출은 호출자가 이어서 수행한다
func (s *Session) Tick() bool {
	if s.state != StateInProgress {
		return false
	}
	if s.RemainingSeconds() <= 0 {
		s.state = StateTimedOut
		return true
	}
	return false
}

// Submit 명시적 제출. 이미 끝난 세션은 거부한다
func (s *Session) Submit() error {
	switch s.state {
	case StateInProgress:
		s.state = StateSubmitted
		return nil
	case StateNotStarted:
		return ErrNotInProgress
	default:
		return ErrSessionFinished
	}
}

// Finished 종료 상태 여부
func (s *Session) Finished() bool {
	return s.state == StateSubmitted || s.state == StateTimedOut
}
