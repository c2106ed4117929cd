package exam

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scorer 답안과 정답표를 비교해 점수를 낸다. 순수 계산만 하고
// 결과 저장이나 경험치 반영 같은 사이드이펙트는 호출자 몫이다.
type Scorer struct {
	PassThreshold int
}

func NewScorer(passThreshold int) *Scorer {
	return &Scorer{PassThreshold: passThreshold}
}

// Score 문제별 비교 규칙으로 채점한다. 무응답은 항상 오답이다.
// 정답표가 깨져 있으면 (문제를 못 찾는 항목) 점수를 조용히 틀리게 하는
// 대신 ErrMalformedAnswerEntry를 돌려준다.
func (s *Scorer) Score(questions []*QuestionSkeleton, table []CorrectAnswerEntry, answers AnswerRecord) (*Result, error) {
	byID := make(map[string]*QuestionSkeleton, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	result := &Result{TotalQuestions: len(table)}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: empty answer table", ErrMalformedAnswerEntry)
	}

	for i, entry := range table {
		q, ok := byID[entry.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: no question for entry %s", ErrMalformedAnswerEntry, entry.QuestionID)
		}

		userAns, answered := answers[entry.QuestionID]
		userAns = strings.TrimSpace(userAns)
		if userAns == "" {
			answered = false
		}

		correct := false
		if answered {
			var err error
			correct, err = s.compare(q, entry, userAns)
			if err != nil {
				return nil, err
			}
		}

		if correct {
			result.CorrectCount++
			continue
		}

		if !answered {
			result.UnansweredCount++
		}

		result.WrongAnswers = append(result.WrongAnswers, s.wrongEntry(i+1, q, entry, userAns, answered))
	}

	pointsPerQuestion := 100.0 / float64(result.TotalQuestions)
	result.Score = int(math.Round(float64(result.CorrectCount) * pointsPerQuestion))
	result.Passed = result.Score >= s.PassThreshold

	return result, nil
}

// compare 유형별 비교 규칙
func (s *Scorer) compare(q *QuestionSkeleton, entry CorrectAnswerEntry, userAns string) (bool, error) {
	switch entry.Type {
	case PatternWordMeaningSel:
		// 인덱스 채점: 번호끼리 직접 비교
		idx, err := strconv.Atoi(userAns)
		if err != nil {
			return false, nil
		}
		return idx == entry.CorrectIndex, nil

	case PatternSound, PatternSoundSame, PatternMeaning, PatternWordReading, PatternSentenceReading:
		// 보기 번호를 표시 텍스트로 되돌려 정답 텍스트와 비교
		text := resolveOption(q, userAns)
		return strings.TrimSpace(text) == strings.TrimSpace(entry.CorrectAnswer), nil

	case PatternWordMeaning, PatternBlankHanzi:
		// 보기 번호든 직접 입력이든 모두 허용
		text := resolveOption(q, userAns)
		return strings.TrimSpace(text) == strings.TrimSpace(entry.CorrectAnswer), nil

	case PatternHanziWrite:
		// "훈 음" 형식: 공백 기준으로 나눠 다듬고 한 칸으로 재조합해 비교
		return normalizeMeaningSound(userAns) == normalizeMeaningSound(entry.CorrectAnswer), nil

	case PatternWordReadingWrite:
		return strings.TrimSpace(userAns) == strings.TrimSpace(entry.CorrectAnswer), nil

	default:
		return false, fmt.Errorf("%w: unknown pattern %q", ErrMalformedAnswerEntry, entry.Type)
	}
}

func (s *Scorer) wrongEntry(number int, q *QuestionSkeleton, entry CorrectAnswerEntry, userAns string, answered bool) WrongAnswerEntry {
	w := WrongAnswerEntry{
		QuestionNumber: number,
		QuestionID:     entry.QuestionID,
		Pattern:        entry.Type,
		Character:      entry.Character,
		QuestionText:   q.QuestionText,
		Options:        q.Options,
		CorrectAnswer:  displayAnswer(q, entry),
	}
	if answered {
		display := resolveOption(q, userAns)
		w.UserAnswer = &display
	}
	return w
}

// resolveOption 보기 번호("1"~"4")면 해당 표시 텍스트로, 아니면 입력 그대로
func resolveOption(q *QuestionSkeleton, userAns string) string {
	idx, err := strconv.Atoi(userAns)
	if err != nil || idx < 1 || idx > len(q.Options) {
		return userAns
	}
	return q.Options[idx-1]
}

// displayAnswer 정답을 표시용 문자열로. 인덱스 채점 유형도 번호가 아닌
// 보기 텍스트를 돌려줘서 오답 노트 화면이 유형을 몰라도 되게 한다.
func displayAnswer(q *QuestionSkeleton, entry CorrectAnswerEntry) string {
	if entry.Type == PatternWordMeaningSel {
		if entry.CorrectIndex >= 1 && entry.CorrectIndex <= len(q.Options) {
			return q.Options[entry.CorrectIndex-1]
		}
		return entry.CorrectAnswer
	}
	return entry.CorrectAnswer
}

// normalizeMeaningSound 공백 연속/탭/양끝 공백 차이를 무시하는 정규화
func normalizeMeaningSound(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// MarshalOptions 오답 노트 저장용 JSON 직렬화 헬퍼
func MarshalOptions(options []string) json.RawMessage {
	if len(options) == 0 {
		return nil
	}
	b, err := json.Marshal(options)
	if err != nil {
		return nil
	}
	return b
}
