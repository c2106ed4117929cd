package exam

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"go.uber.org/zap"
)

// writeQuestions 훈음 쓰기 문제 n개와 정답표를 만든다
func writeQuestions(n int) ([]*QuestionSkeleton, []CorrectAnswerEntry) {
	var qs []*QuestionSkeleton
	for i := 0; i < n; i++ {
		qs = append(qs, &QuestionSkeleton{
			ID:            questionID(i),
			Index:         i,
			Type:          PatternHanziWrite,
			Character:     "善",
			CorrectAnswer: fmt.Sprintf("착할%d 선", i),
		})
	}
	return qs, BuildAnswerTable(qs, nil)
}

func TestScoreAllCorrectAndAllWrong(t *testing.T) {
	qs, table := writeQuestions(10)
	s := NewScorer(70)

	answers := AnswerRecord{}
	for _, q := range qs {
		answers[q.ID] = q.CorrectAnswer
	}
	res, err := s.Score(qs, table, answers)
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if res.Score != 100 || !res.Passed {
		t.Fatalf("score = %d passed = %v, want 100/true", res.Score, res.Passed)
	}

	res, err = s.Score(qs, table, AnswerRecord{})
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if res.Score != 0 || res.Passed {
		t.Fatalf("score = %d passed = %v, want 0/false", res.Score, res.Passed)
	}
	if res.UnansweredCount != 10 {
		t.Fatalf("unanswered = %d, want 10", res.UnansweredCount)
	}
}

// 50문항 중 37개 정답이면 round(37*2) = 74점, 기준 70점이면 합격
func TestScoreFiftyQuestions(t *testing.T) {
	qs, table := writeQuestions(50)
	s := NewScorer(70)

	answers := AnswerRecord{}
	for i := 0; i < 37; i++ {
		answers[qs[i].ID] = qs[i].CorrectAnswer
	}
	for i := 37; i < 50; i++ {
		answers[qs[i].ID] = "틀린 답"
	}

	res, err := s.Score(qs, table, answers)
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if res.Score != 74 {
		t.Fatalf("score = %d, want 74", res.Score)
	}
	if !res.Passed {
		t.Fatal("want passed with threshold 70")
	}
	if res.CorrectCount != 37 {
		t.Fatalf("correct = %d, want 37", res.CorrectCount)
	}
}

// 5문항 중 3개만 답하면 빈칸 2개는 모두 무응답 오답으로 기록된다
func TestScoreUnansweredInWrongReport(t *testing.T) {
	qs, table := writeQuestions(5)
	s := NewScorer(70)

	answers := AnswerRecord{
		qs[0].ID: qs[0].CorrectAnswer,
		qs[1].ID: qs[1].CorrectAnswer,
		qs[2].ID: qs[2].CorrectAnswer,
		// qs[3], qs[4]는 무응답
	}

	res, err := s.Score(qs, table, answers)
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if res.UnansweredCount != 2 {
		t.Fatalf("unanswered = %d, want 2", res.UnansweredCount)
	}
	if len(res.WrongAnswers) != 2 {
		t.Fatalf("wrong answers = %d, want 2", len(res.WrongAnswers))
	}
	for _, w := range res.WrongAnswers {
		if w.UserAnswer != nil {
			t.Fatalf("unanswered question must have nil user answer, got %q", *w.UserAnswer)
		}
	}
}

func TestScoreBoundsAndRounding(t *testing.T) {
	for total := 1; total <= 12; total++ {
		qs, table := writeQuestions(total)
		s := NewScorer(70)
		for correct := 0; correct <= total; correct++ {
			answers := AnswerRecord{}
			for i := 0; i < correct; i++ {
				answers[qs[i].ID] = qs[i].CorrectAnswer
			}
			res, err := s.Score(qs, table, answers)
			if err != nil {
				t.Fatalf("Score error: %v", err)
			}
			if res.Score < 0 || res.Score > 100 {
				t.Fatalf("total=%d correct=%d: score %d out of bounds", total, correct, res.Score)
			}
			want := int(math.Round(float64(correct) * 100.0 / float64(total)))
			if res.Score != want {
				t.Fatalf("total=%d correct=%d: score = %d, want %d", total, correct, res.Score, want)
			}
			if res.Passed != (res.Score >= 70) {
				t.Fatalf("total=%d correct=%d: passed inconsistent with threshold", total, correct)
			}
		}
	}
}

// 저장된 정답 인덱스를 그대로 내면 정답, 다른 번호는 모두 오답
func TestOptionIndexRoundTrip(t *testing.T) {
	q := &QuestionSkeleton{
		ID:                 "q_0",
		Index:              0,
		Type:               PatternWordMeaningSel,
		Character:          "喜",
		Options:            []string{"슬픔", "기쁨", "분노", "평온"},
		CorrectAnswer:      "기쁨",
		CorrectAnswerIndex: 2,
		Resolved:           true,
	}
	table := BuildAnswerTable([]*QuestionSkeleton{q}, nil)
	s := NewScorer(70)

	for idx := 1; idx <= 4; idx++ {
		res, err := s.Score([]*QuestionSkeleton{q}, table, AnswerRecord{"q_0": fmt.Sprint(idx)})
		if err != nil {
			t.Fatalf("Score error: %v", err)
		}
		wantCorrect := idx == 2
		if (res.CorrectCount == 1) != wantCorrect {
			t.Fatalf("index %d: correct = %d, want correct=%v", idx, res.CorrectCount, wantCorrect)
		}
	}
}

func TestHanziWriteNormalization(t *testing.T) {
	q := &QuestionSkeleton{
		ID:            "q_0",
		Index:         0,
		Type:          PatternHanziWrite,
		Character:     "善",
		CorrectAnswer: "착할 선",
	}
	table := BuildAnswerTable([]*QuestionSkeleton{q}, nil)
	s := NewScorer(70)

	for _, input := range []string{"착할 선", " 착할  선 ", "착할\t선 "} {
		res, err := s.Score([]*QuestionSkeleton{q}, table, AnswerRecord{"q_0": input})
		if err != nil {
			t.Fatalf("Score error: %v", err)
		}
		if res.CorrectCount != 1 {
			t.Fatalf("input %q: not accepted after normalization", input)
		}
	}

	res, err := s.Score([]*QuestionSkeleton{q}, table, AnswerRecord{"q_0": "악할 선"})
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if res.CorrectCount != 0 {
		t.Fatal("wrong meaning must not be accepted")
	}
}

// 보기 번호 채점 유형: 번호를 표시 텍스트로 되돌려 비교한다
func TestTextViaOptionGrading(t *testing.T) {
	q := &QuestionSkeleton{
		ID:            "q_0",
		Index:         0,
		Type:          PatternSound,
		Character:     "學",
		Options:       []string{"교", "학", "선", "생"},
		CorrectAnswer: "학",
	}
	table := BuildAnswerTable([]*QuestionSkeleton{q}, nil)
	s := NewScorer(70)

	res, err := s.Score([]*QuestionSkeleton{q}, table, AnswerRecord{"q_0": "2"})
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if res.CorrectCount != 1 {
		t.Fatal("option 2 resolves to 학 and must be correct")
	}

	res, err = s.Score([]*QuestionSkeleton{q}, table, AnswerRecord{"q_0": "1"})
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if res.CorrectCount != 0 {
		t.Fatal("option 1 resolves to 교 and must be wrong")
	}
}

// 빈칸 채우기 유형은 보기 번호든 한자 직접 입력이든 모두 받는다
func TestDirectCharacterAcceptsTextOrIndex(t *testing.T) {
	q := &QuestionSkeleton{
		ID:            "q_0",
		Index:         0,
		Type:          PatternBlankHanzi,
		Character:     "學",
		Options:       []string{"校", "學", "先", "生"},
		CorrectAnswer: "學",
		Resolved:      true,
	}
	table := BuildAnswerTable([]*QuestionSkeleton{q}, nil)
	s := NewScorer(70)

	for _, input := range []string{"2", "學"} {
		res, err := s.Score([]*QuestionSkeleton{q}, table, AnswerRecord{"q_0": input})
		if err != nil {
			t.Fatalf("Score error: %v", err)
		}
		if res.CorrectCount != 1 {
			t.Fatalf("input %q must be accepted", input)
		}
	}
}

func TestWrongAnswerDisplayForms(t *testing.T) {
	q := &QuestionSkeleton{
		ID:                 "q_0",
		Index:              0,
		Type:               PatternWordMeaningSel,
		Character:          "喜",
		Options:            []string{"슬픔", "기쁨", "분노", "평온"},
		CorrectAnswer:      "기쁨",
		CorrectAnswerIndex: 2,
		Resolved:           true,
	}
	table := BuildAnswerTable([]*QuestionSkeleton{q}, nil)
	s := NewScorer(70)

	res, err := s.Score([]*QuestionSkeleton{q}, table, AnswerRecord{"q_0": "3"})
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if len(res.WrongAnswers) != 1 {
		t.Fatalf("wrong answers = %d, want 1", len(res.WrongAnswers))
	}
	w := res.WrongAnswers[0]
	if w.CorrectAnswer != "기쁨" {
		t.Fatalf("correct answer display = %q, want 기쁨 (never a bare index)", w.CorrectAnswer)
	}
	if w.UserAnswer == nil || *w.UserAnswer != "분노" {
		t.Fatalf("user answer display = %v, want 분노", w.UserAnswer)
	}
}

func TestScoreMalformedTable(t *testing.T) {
	qs, _ := writeQuestions(2)
	s := NewScorer(70)

	table := []CorrectAnswerEntry{{QuestionID: "q_99", Type: PatternHanziWrite}}
	_, err := s.Score(qs, table, AnswerRecord{})
	if !errors.Is(err, ErrMalformedAnswerEntry) {
		t.Fatalf("err = %v, want ErrMalformedAnswerEntry", err)
	}

	_, err = s.Score(qs, nil, AnswerRecord{})
	if !errors.Is(err, ErrMalformedAnswerEntry) {
		t.Fatalf("empty table: err = %v, want ErrMalformedAnswerEntry", err)
	}
}

// 리졸버가 실패한 word_meaning_select는 정답표 단계에서 1번으로 대체된다
func TestBuildAnswerTableMissingIndex(t *testing.T) {
	q := &QuestionSkeleton{
		ID:        "q_0",
		Index:     0,
		Type:      PatternWordMeaningSel,
		Character: "喜",
	}

	table := BuildAnswerTable([]*QuestionSkeleton{q}, zap.NewNop())
	if len(table) != 1 {
		t.Fatalf("table = %d entries, want 1", len(table))
	}
	if table[0].CorrectIndex != 1 {
		t.Fatalf("CorrectIndex = %d, want fallback 1", table[0].CorrectIndex)
	}
}
