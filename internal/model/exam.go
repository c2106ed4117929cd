package model

import (
	"encoding/json"
	"time"
)

type ExamStatus string

const (
	ExamNotStarted ExamStatus = "not_started"
	ExamInProgress ExamStatus = "in_progress"
	ExamSubmitted  ExamStatus = "submitted"
	ExamTimedOut   ExamStatus = "timed_out"
)

// ExamSession 생성된 시험 1회분. Questions에는 정답 인덱스를 포함한
// 문제 전체가 직렬화되어 저장되고, 채점은 이 스냅샷 기준으로만 이루어진다.
type ExamSession struct {
	UUIDBase
	UserID      uint            `gorm:"index;not null" json:"userId"`
	Grade       float64         `gorm:"not null" json:"grade"`
	Status      ExamStatus      `gorm:"type:enum('not_started','in_progress','submitted','timed_out');default:'not_started'" json:"status"`
	Questions   json.RawMessage `gorm:"type:json" json:"-"`
	TimeLimit   int             `gorm:"default:30" json:"timeLimit"` // 분 단위
	StartedAt   *time.Time      `json:"startedAt"`
	SubmittedAt *time.Time      `json:"submittedAt"`
	Score       *int            `json:"score,omitempty"`
	Passed      *bool           `json:"passed,omitempty"`
}

func (ExamSession) TableName() string {
	return "exam_sessions"
}

// ExamResult 채점 결과. 세션과 별도로 보존되어 이력 조회에 쓰인다.
type ExamResult struct {
	BaseModel
	ExamID          string        `gorm:"size:36;index;not null" json:"examId"`
	UserID          uint          `gorm:"index;not null" json:"userId"`
	Grade           float64       `gorm:"not null" json:"grade"`
	Score           int           `gorm:"not null" json:"score"`
	Passed          bool          `gorm:"not null" json:"passed"`
	CorrectCount    int           `gorm:"not null" json:"correctCount"`
	TotalQuestions  int           `gorm:"not null" json:"totalQuestions"`
	UnansweredCount int           `gorm:"default:0" json:"unansweredCount"`
	DurationSeconds int           `gorm:"default:0" json:"durationSeconds"`
	IsTimeout       bool          `gorm:"default:false" json:"isTimeout"`
	WrongAnswers    []WrongAnswer `gorm:"foreignKey:ResultID;constraint:OnDelete:CASCADE" json:"wrongAnswers"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}

// WrongAnswer 오답 노트 한 건. 사용자 답과 정답 모두 표시용 문자열로 저장해서
// 조회 화면이 유형별 분기 없이 그대로 보여줄 수 있게 한다.
type WrongAnswer struct {
	BaseModel
	ResultID       uint            `gorm:"index;not null" json:"resultId"`
	QuestionNumber int             `gorm:"not null" json:"questionNumber"`
	QuestionID     string          `gorm:"size:16" json:"questionId"`
	Pattern        string          `gorm:"size:32" json:"pattern"`
	Character      string          `gorm:"size:8" json:"character"`
	QuestionText   string          `gorm:"type:text" json:"questionText"`
	Options        json.RawMessage `gorm:"type:json" json:"options,omitempty"`
	UserAnswer     *string         `gorm:"size:255" json:"userAnswer"` // 무응답이면 null
	CorrectAnswer  string          `gorm:"size:255" json:"correctAnswer"`
}

func (WrongAnswer) TableName() string {
	return "wrong_answers"
}
