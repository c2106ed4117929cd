package exam

import (
	"errors"
	"fmt"
)

// PatternType 문제 유형. 유형별로 보기 구성과 채점 방식이 다르다.
type PatternType string

const (
	PatternSound            PatternType = "sound"              // 한자의 음 고르기
	PatternSoundSame        PatternType = "sound_same"         // 같은 음의 한자 고르기 (구버전 유형, 기본 출제표에는 없음)
	PatternMeaning          PatternType = "meaning"            // 훈음에 맞는 한자 고르기
	PatternWordReading      PatternType = "word_reading"       // 단어 독음 고르기
	PatternWordMeaning      PatternType = "word_meaning"       // 빈칸 문장에 들어갈 한자 고르기 (AI)
	PatternBlankHanzi       PatternType = "blank_hanzi"        // 교과서 단어 문장 빈칸 채우기 (AI)
	PatternWordMeaningSel   PatternType = "word_meaning_select" // 단어 뜻 고르기 (AI, 인덱스 채점)
	PatternHanziWrite       PatternType = "hanzi_write"        // 훈음 쓰기 (주관식)
	PatternWordReadingWrite PatternType = "word_reading_write" // 단어 독음 쓰기 (주관식)
	PatternSentenceReading  PatternType = "sentence_reading"   // 문장 속 단어 독음 고르기 (AI)
)

// RelatedWordRef 문제 생성에 필요한 단어 정보의 스냅샷
type RelatedWordRef struct {
	Hanzi      string `json:"hanzi"`
	Korean     string `json:"korean"`
	IsTextBook bool   `json:"isTextBook"`
}

// QuestionSkeleton 생성 중인 문제 한 건. 패턴 빌더가 만들고 AI 리졸버가
// 보기/정답 인덱스를 채운 뒤에는 동결된다. 동결 후에는 표시 텍스트
// (AIGeneratedContent) 외에 어떤 필드도 다시 쓰지 않는다.
type QuestionSkeleton struct {
	ID           string      `json:"id"` // q_<전역 인덱스>
	Index        int         `json:"index"`
	Type         PatternType `json:"type"`
	Character    string      `json:"character"`
	Meaning      string      `json:"meaning"`
	Sound        string      `json:"sound"`
	QuestionText string      `json:"questionText"`

	RelatedWords []RelatedWordRef `json:"relatedWords,omitempty"`
	TextBookWord *RelatedWordRef  `json:"textBookWord,omitempty"`

	Options []string `json:"options,omitempty"` // 표시 순서 그대로, 1번부터

	AIPrompt           string `json:"aiPrompt,omitempty"`
	AIGeneratedContent string `json:"aiGeneratedContent,omitempty"`

	CorrectAnswer      string `json:"correctAnswer,omitempty"`
	CorrectAnswerIndex int    `json:"correctAnswerIndex,omitempty"` // 1부터 시작, 0이면 미설정

	Resolved bool `json:"resolved"` // AI 리졸버 통과 여부. true면 보기/정답 동결
}

// NeedsAI 프롬프트가 남아 있는 미해결 문제인지
func (q *QuestionSkeleton) NeedsAI() bool {
	return q.AIPrompt != "" && !q.Resolved
}

// CorrectAnswerEntry 문제별 정답표 항목. 채점 전용이며 제출 전에는
// 사용자에게 절대 노출되지 않는다.
type CorrectAnswerEntry struct {
	QuestionIndex int         `json:"questionIndex"`
	QuestionID    string      `json:"questionId"`
	Type          PatternType `json:"type"`
	Character     string      `json:"character"`
	CorrectAnswer string      `json:"correctAnswer"`
	CorrectIndex  int         `json:"correctIndex"` // 인덱스 채점 유형에만 사용 (1부터)
}

// AnswerRecord 문제 ID → 제출 값. 객관식은 보기 번호("1"~"4"),
// 주관식은 입력 텍스트. 빈 문자열/누락은 무응답으로 취급한다.
type AnswerRecord map[string]string

// WrongAnswerEntry 오답 리포트 한 건. 답은 모두 표시용 문자열로 변환해 담는다.
type WrongAnswerEntry struct {
	QuestionNumber int         `json:"questionNumber"`
	QuestionID     string      `json:"questionId"`
	Pattern        PatternType `json:"pattern"`
	Character      string      `json:"character"`
	QuestionText   string      `json:"questionText,omitempty"`
	Options        []string    `json:"options,omitempty"`
	UserAnswer     *string     `json:"userAnswer"` // 무응답이면 nil
	CorrectAnswer  string      `json:"correctAnswer"`
}

// Result 채점 결과
type Result struct {
	Score           int                `json:"score"`
	Passed          bool               `json:"passed"`
	CorrectCount    int                `json:"correctCount"`
	TotalQuestions  int                `json:"totalQuestions"`
	UnansweredCount int                `json:"unansweredCount"`
	WrongAnswers    []WrongAnswerEntry `json:"wrongAnswers"`
}

var (
	// ErrMalformedAnswerEntry 정답표 자체가 깨진 경우. 점수가 조용히 틀어지면
	// 안 되므로 채점을 중단하고 그대로 전파한다.
	ErrMalformedAnswerEntry = errors.New("malformed correct answer entry")

	// ErrPoolEmpty 급수 한자 풀이 비어 있어 선발 자체가 불가능한 경우
	ErrPoolEmpty = errors.New("hanzi pool is empty")

	// ErrPoolExhausted ExhaustError 정책에서 풀이 할당량보다 작은 경우
	ErrPoolExhausted = errors.New("hanzi pool smaller than quota")
)

func questionID(index int) string {
	return fmt.Sprintf("q_%d", index)
}
