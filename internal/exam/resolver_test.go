package exam

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"
)

type fakeGenerator struct {
	contents map[string]string
	calls    int
	lastLen  int
}

func (g *fakeGenerator) Generate(ctx context.Context, batch []PromptRequest) ([]GeneratedItem, error) {
	g.calls++
	g.lastLen = len(batch)
	var out []GeneratedItem
	for _, req := range batch {
		if content, ok := g.contents[req.ID]; ok {
			out = append(out, GeneratedItem{ID: req.ID, Content: content})
		}
	}
	return out, nil
}

type failingGenerator struct{}

func (failingGenerator) Generate(ctx context.Context, batch []PromptRequest) ([]GeneratedItem, error) {
	return nil, errors.New("upstream unavailable")
}

func selectSkeleton(index int) *QuestionSkeleton {
	return &QuestionSkeleton{
		ID:           questionID(index),
		Index:        index,
		Type:         PatternWordMeaningSel,
		Character:    "喜",
		TextBookWord: &RelatedWordRef{Hanzi: "喜悅", Korean: "희열", IsTextBook: true},
		AIPrompt:     "prompt",
	}
}

func TestResolveWordMeaningSelect(t *testing.T) {
	q := selectSkeleton(3)
	gen := &fakeGenerator{contents: map[string]string{
		"q_3": "정답: 기쁨\n오답1: 슬픔\n오답2: 분노\n오답3: 평온",
	}}

	r := NewResolver(gen, samplePool(), nil)
	if err := r.Resolve(context.Background(), []*QuestionSkeleton{q}, nil); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	want := []string{"기쁨", "슬픔", "분노", "평온"}
	got := append([]string{}, q.Options...)
	sort.Strings(got)
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("options = %v, want the 4 parsed strings", q.Options)
	}

	if q.CorrectAnswerIndex < 1 || q.CorrectAnswerIndex > 4 {
		t.Fatalf("CorrectAnswerIndex = %d, out of range", q.CorrectAnswerIndex)
	}
	if q.Options[q.CorrectAnswerIndex-1] != "기쁨" {
		t.Fatalf("index %d points at %q, want 기쁨", q.CorrectAnswerIndex, q.Options[q.CorrectAnswerIndex-1])
	}
	if !q.Resolved {
		t.Fatal("skeleton must be frozen after resolution")
	}
}

// 같은 시드(문제 인덱스)와 같은 AI 출력이면 결과도 항상 같다
func TestResolveDeterministic(t *testing.T) {
	content := "정답: 기쁨\n오답1: 슬픔\n오답2: 분노\n오답3: 평온"

	q1 := selectSkeleton(3)
	q2 := selectSkeleton(3)
	gen := &fakeGenerator{contents: map[string]string{"q_3": content}}
	r := NewResolver(gen, samplePool(), nil)

	if err := r.Resolve(context.Background(), []*QuestionSkeleton{q1}, nil); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if err := r.Resolve(context.Background(), []*QuestionSkeleton{q2}, nil); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if !reflect.DeepEqual(q1.Options, q2.Options) {
		t.Fatalf("same seed produced different orders: %v vs %v", q1.Options, q2.Options)
	}
	if q1.CorrectAnswerIndex != q2.CorrectAnswerIndex {
		t.Fatalf("correct index drifted: %d vs %d", q1.CorrectAnswerIndex, q2.CorrectAnswerIndex)
	}
}

// 두 번째 호출은 이미 해결된 문제의 보기와 정답 인덱스를 절대 바꾸지 않는다
func TestResolveIdempotent(t *testing.T) {
	q := selectSkeleton(3)
	gen := &fakeGenerator{contents: map[string]string{
		"q_3": "정답: 기쁨\n오답1: 슬픔\n오답2: 분노\n오답3: 평온",
	}}
	r := NewResolver(gen, samplePool(), nil)

	if err := r.Resolve(context.Background(), []*QuestionSkeleton{q}, nil); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	opts := append([]string{}, q.Options...)
	idx := q.CorrectAnswerIndex

	// 다른 내용이 와도 동결된 필드는 그대로여야 한다
	gen.contents["q_3"] = "정답: 놀람\n오답1: 평화\n오답2: 여유\n오답3: 침묵"
	if err := r.Resolve(context.Background(), []*QuestionSkeleton{q}, nil); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if !reflect.DeepEqual(q.Options, opts) {
		t.Fatalf("options changed after re-resolution: %v vs %v", q.Options, opts)
	}
	if q.CorrectAnswerIndex != idx {
		t.Fatalf("correct index changed after re-resolution: %d vs %d", q.CorrectAnswerIndex, idx)
	}
}

// 진행 콜백은 해결된 문제마다 한 번씩, 배치 전체 크기를 들고 불린다.
// 응답이 누락된 문제는 진행으로 세지 않는다
func TestResolveReportsProgress(t *testing.T) {
	questions := []*QuestionSkeleton{selectSkeleton(0), selectSkeleton(1), selectSkeleton(2)}
	gen := &fakeGenerator{contents: map[string]string{
		"q_0": "정답: 기쁨\n오답1: 슬픔\n오답2: 분노\n오답3: 평온",
		"q_2": "정답: 희망\n오답1: 절망\n오답2: 불안\n오답3: 권태",
	}}

	var calls [][2]int
	progress := func(done, total int) {
		calls = append(calls, [2]int{done, total})
	}

	r := NewResolver(gen, samplePool(), nil)
	if err := r.Resolve(context.Background(), questions, progress); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	want := [][2]int{{1, 3}, {2, 3}}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("progress calls = %v, want %v", calls, want)
	}
}

func TestResolveGeneratorFailureLeavesSkeletons(t *testing.T) {
	q := selectSkeleton(0)
	r := NewResolver(failingGenerator{}, samplePool(), nil)

	err := r.Resolve(context.Background(), []*QuestionSkeleton{q}, nil)
	if err == nil {
		t.Fatal("expected error from failing generator")
	}
	if q.Resolved || q.Options != nil || q.CorrectAnswerIndex != 0 {
		t.Fatalf("skeleton must stay untouched on failure: %+v", q)
	}
}

func TestResolveMissingItemSkipsQuestion(t *testing.T) {
	q := selectSkeleton(0)
	gen := &fakeGenerator{contents: map[string]string{}} // 응답 누락
	r := NewResolver(gen, samplePool(), nil)

	if err := r.Resolve(context.Background(), []*QuestionSkeleton{q}, nil); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if q.Resolved {
		t.Fatal("question without content must stay unresolved")
	}
}

func TestResolveBatchesOnce(t *testing.T) {
	q1 := selectSkeleton(0)
	q2 := selectSkeleton(1)
	gen := &fakeGenerator{contents: map[string]string{
		"q_0": "정답: 기쁨\n오답1: 슬픔\n오답2: 분노\n오답3: 평온",
		"q_1": "정답: 학교\n오답1: 학생\n오답2: 교실\n오답3: 운동장",
	}}
	r := NewResolver(gen, samplePool(), nil)

	if err := r.Resolve(context.Background(), []*QuestionSkeleton{q1, q2}, nil); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want exactly 1 batch", gen.calls)
	}
	if gen.lastLen != 2 {
		t.Fatalf("batch size = %d, want 2", gen.lastLen)
	}
}

func TestResolveBlankHanzi(t *testing.T) {
	q := &QuestionSkeleton{
		ID:           "q_0",
		Index:        0,
		Type:         PatternBlankHanzi,
		Character:    "學",
		TextBookWord: &RelatedWordRef{Hanzi: "學校", Korean: "학교", IsTextBook: true},
		AIPrompt:     "prompt",
	}
	gen := &fakeGenerator{contents: map[string]string{
		"q_0": "나는 매일 아침 학교에 갑니다.",
	}}
	r := NewResolver(gen, samplePool(), nil)

	if err := r.Resolve(context.Background(), []*QuestionSkeleton{q}, nil); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if q.AIGeneratedContent != "나는 매일 아침 □校에 갑니다." {
		t.Fatalf("sentence = %q", q.AIGeneratedContent)
	}
}

func TestResolveSentenceReadingOptions(t *testing.T) {
	q := &QuestionSkeleton{
		ID:            "q_2",
		Index:         2,
		Type:          PatternSentenceReading,
		Character:     "學",
		CorrectAnswer: "학교",
		TextBookWord:  &RelatedWordRef{Hanzi: "學校", Korean: "학교", IsTextBook: true},
		AIPrompt:      "prompt",
	}
	gen := &fakeGenerator{contents: map[string]string{
		"q_2": "우리 學校 운동장은 넓다.",
	}}
	r := NewResolver(gen, samplePool(), nil)

	if err := r.Resolve(context.Background(), []*QuestionSkeleton{q}, nil); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if len(q.Options) != 4 {
		t.Fatalf("options = %d, want 4", len(q.Options))
	}
	if !contains(q.Options, "학교") {
		t.Fatalf("options %v must contain the correct reading", q.Options)
	}
	seen := map[string]bool{}
	for _, o := range q.Options {
		if seen[o] {
			t.Fatalf("duplicate option %q in %v", o, q.Options)
		}
		seen[o] = true
	}
}

func TestParseGeneratedOptions(t *testing.T) {
	cases := []struct {
		name            string
		text            string
		wantCorrect     string
		wantDistractors int
	}{
		{"full", "정답: 기쁨\n오답1: 슬픔\n오답2: 분노\n오답3: 평온", "기쁨", 3},
		{"partial", "정답: 기쁨\n오답1: 슬픔", "기쁨", 1},
		{"noise lines", "설명입니다\n정답: 기쁨\n\n오답1: 슬픔\n오답2: 분노\n오답3: 평온\n끝", "기쁨", 3},
		{"missing correct", "오답1: 슬픔", "", 1},
	}

	for _, tc := range cases {
		correct, distractors := ParseGeneratedOptions(tc.text)
		if correct != tc.wantCorrect {
			t.Fatalf("%s: correct = %q, want %q", tc.name, correct, tc.wantCorrect)
		}
		if len(distractors) != tc.wantDistractors {
			t.Fatalf("%s: distractors = %d, want %d", tc.name, len(distractors), tc.wantDistractors)
		}
	}
}

func TestFillDistractorsDeterministic(t *testing.T) {
	a := fillDistractors("기쁨", []string{"슬픔"}, 3)
	b := fillDistractors("기쁨", []string{"슬픔"}, 3)

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("filler not deterministic: %v vs %v", a, b)
	}
	if len(a) != 3 {
		t.Fatalf("distractors = %d, want 3", len(a))
	}
	for _, d := range a {
		if d == "기쁨" {
			t.Fatalf("filler %v must not equal the correct answer", a)
		}
	}
}
