package exam

import (
	"fmt"
	"reflect"
	"testing"
)

func TestBuildSoundQuestion(t *testing.T) {
	pool := samplePool()
	b := NewBuilder(pool, 1)

	q := b.Build(PatternSound, &pool[0], 0)
	if q == nil {
		t.Fatal("Build returned nil")
	}
	if q.ID != "q_0" {
		t.Fatalf("ID = %q, want q_0", q.ID)
	}
	if q.CorrectAnswer != "학" {
		t.Fatalf("CorrectAnswer = %q, want 학", q.CorrectAnswer)
	}
	if len(q.Options) != 4 {
		t.Fatalf("options = %d, want 4", len(q.Options))
	}
	if !contains(q.Options, "학") {
		t.Fatalf("options %v must contain the correct sound", q.Options)
	}
}

func TestBuildMeaningQuestion(t *testing.T) {
	pool := samplePool()
	b := NewBuilder(pool, 1)

	q := b.Build(PatternMeaning, &pool[4], 2)
	if q == nil {
		t.Fatal("Build returned nil")
	}
	if q.CorrectAnswer != "水" {
		t.Fatalf("CorrectAnswer = %q, want 水", q.CorrectAnswer)
	}
	if !contains(q.Options, "水") {
		t.Fatalf("options %v must contain 水", q.Options)
	}
}

func TestBuildHanziWrite(t *testing.T) {
	pool := samplePool()
	b := NewBuilder(pool, 1)

	q := b.Build(PatternHanziWrite, &pool[2], 5)
	if q == nil {
		t.Fatal("Build returned nil")
	}
	if q.CorrectAnswer != "먼저 선" {
		t.Fatalf("CorrectAnswer = %q, want %q", q.CorrectAnswer, "먼저 선")
	}
	if len(q.Options) != 0 {
		t.Fatalf("hanzi_write must have no options, got %v", q.Options)
	}
}

func TestBuildRequiresTextBookWord(t *testing.T) {
	pool := samplePool()
	b := NewBuilder(pool, 1)
	noTextbook := pool[4] // 水: 일반 단어만 있음

	for _, pt := range []PatternType{PatternBlankHanzi, PatternWordMeaningSel, PatternWordReadingWrite, PatternSentenceReading} {
		if q := b.Build(pt, &noTextbook, 0); q != nil {
			t.Fatalf("%s: expected nil for character without textbook word", pt)
		}
	}
}

func TestBuildWordReadingRequiresWords(t *testing.T) {
	pool := samplePool()
	b := NewBuilder(pool, 1)
	bare := pool[6] // 木: 관련 단어 없음

	if q := b.Build(PatternWordReading, &bare, 0); q != nil {
		t.Fatal("expected nil for character without related words")
	}
}

func TestBuildSoundSame(t *testing.T) {
	// 生(생)과 같은 음의 한자가 없는 풀 / 있는 풀
	pool := samplePool()
	b := NewBuilder(pool, 1)

	if q := b.Build(PatternSoundSame, &pool[3], 0); q != nil {
		t.Fatal("expected nil when no sibling shares the sound")
	}

	twin := makeChar(11, "甥", "생질", "생")
	pool2 := append(samplePool(), twin)
	b2 := NewBuilder(pool2, 1)
	q := b2.Build(PatternSoundSame, &pool2[3], 0)
	if q == nil {
		t.Fatal("expected question when a sibling shares the sound")
	}
	if q.CorrectAnswer != "甥" {
		t.Fatalf("CorrectAnswer = %q, want 甥", q.CorrectAnswer)
	}
	if !contains(q.Options, "甥") {
		t.Fatalf("options %v must contain 甥", q.Options)
	}
}

func TestBuildAIPatternsCarryPrompt(t *testing.T) {
	pool := samplePool()
	b := NewBuilder(pool, 1)

	q := b.Build(PatternWordMeaning, &pool[0], 7)
	if q == nil {
		t.Fatal("Build returned nil")
	}
	if q.AIPrompt == "" {
		t.Fatal("word_meaning question must carry an AI prompt")
	}
	if !q.NeedsAI() {
		t.Fatal("freshly built AI question must report NeedsAI")
	}
	// 보기는 한자 자형으로 미리 깔린다
	if !contains(q.Options, q.Character) {
		t.Fatalf("options %v must contain %q", q.Options, q.Character)
	}
}

func TestBuildAllSequentialIDs(t *testing.T) {
	pool := samplePool()
	patterns := []PatternConfig{
		{Type: PatternSound, QuestionCount: 2},
		{Type: PatternHanziWrite, QuestionCount: 2},
		{Type: PatternWordReadingWrite, QuestionCount: 2, IsTextBook: true},
	}

	sel, err := NewSelector(1).Select(pool, patterns, ExhaustRepeat)
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}

	qs := NewBuilder(pool, 1).BuildAll(sel, patterns)
	if len(qs) != 6 {
		t.Fatalf("questions = %d, want 6", len(qs))
	}
	for i, q := range qs {
		if q.ID != fmt.Sprintf("q_%d", i) {
			t.Fatalf("question %d has ID %q", i, q.ID)
		}
		if q.Index != i {
			t.Fatalf("question %d has index %d", i, q.Index)
		}
	}
}

// 선발 목록은 유형을 가로질러 앞에서부터 소비된다. 선발 한자 수가
// 문항 수와 같으면 한 한자가 정확히 한 문제를 맡아야 한다.
func TestBuildAllConsumesSelectionAcrossPatterns(t *testing.T) {
	pool := samplePool()
	patterns := []PatternConfig{
		{Type: PatternSound, QuestionCount: 5},
		{Type: PatternHanziWrite, QuestionCount: 5},
	}
	sel := &Selection{Normal: pool} // 10자 선발, 총 10문항

	qs := NewBuilder(pool, 1).BuildAll(sel, patterns)
	if len(qs) != 10 {
		t.Fatalf("questions = %d, want 10", len(qs))
	}

	usage := map[string]int{}
	for _, q := range qs {
		usage[q.Character]++
	}
	if len(usage) != 10 {
		t.Fatalf("distinct characters = %d, want 10 (usage %v)", len(usage), usage)
	}
	for character, n := range usage {
		if n != 1 {
			t.Fatalf("character %s used %d times, want 1", character, n)
		}
	}
}

// 선발 목록보다 문항이 많을 때만 순환한다
func TestBuildAllCyclesOnlyWhenExhausted(t *testing.T) {
	pool := samplePool()[:3]
	patterns := []PatternConfig{
		{Type: PatternSound, QuestionCount: 2},
		{Type: PatternHanziWrite, QuestionCount: 2},
	}
	sel := &Selection{Normal: pool} // 3자 선발, 총 4문항

	qs := NewBuilder(samplePool(), 1).BuildAll(sel, patterns)
	if len(qs) != 4 {
		t.Fatalf("questions = %d, want 4", len(qs))
	}

	usage := map[string]int{}
	for _, q := range qs {
		usage[q.Character]++
	}
	if len(usage) != 3 {
		t.Fatalf("distinct characters = %d, want all 3 used (usage %v)", len(usage), usage)
	}
	// 네 번째 문항만 첫 한자를 다시 쓴다
	if usage[pool[0].Character] != 2 {
		t.Fatalf("first character used %d times, want 2 (usage %v)", usage[pool[0].Character], usage)
	}
}

// 조건을 못 채우는 풀에서는 시도 상한까지만 돌고 모자란 채로 끝난다
func TestBuildAllRetryCeiling(t *testing.T) {
	pool := samplePool()[6:9] // 관련 단어 없는 한자만
	patterns := []PatternConfig{
		{Type: PatternWordReading, QuestionCount: 3},
	}

	sel, err := NewSelector(1).Select(pool, patterns, ExhaustRepeat)
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}

	qs := NewBuilder(pool, 1).BuildAll(sel, patterns)
	if len(qs) != 0 {
		t.Fatalf("questions = %d, want 0 (graceful degradation)", len(qs))
	}
}

// 같은 시드로 만든 빌더는 같은 보기를 낸다
func TestBuildDeterministicWithSameSeed(t *testing.T) {
	pool := samplePool()

	q1 := NewBuilder(pool, 42).Build(PatternSound, &pool[0], 0)
	q2 := NewBuilder(pool, 42).Build(PatternSound, &pool[0], 0)

	if !reflect.DeepEqual(q1.Options, q2.Options) {
		t.Fatalf("options differ across identical builders: %v vs %v", q1.Options, q2.Options)
	}
}
