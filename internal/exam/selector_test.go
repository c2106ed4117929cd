package exam

import (
	"errors"
	"testing"
)

func TestSelectQuotaInvariant(t *testing.T) {
	pool := samplePool()
	patterns := DefaultPatterns()

	sel, err := NewSelector(1).Select(pool, patterns, ExhaustRepeat)
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}

	if got, want := len(sel.TextBook), TextBookQuota(patterns); got != want {
		t.Fatalf("textbook selection = %d, want %d", got, want)
	}
	if got, want := len(sel.Normal), NormalQuota(patterns); got != want {
		t.Fatalf("normal selection = %d, want %d", got, want)
	}
}

// 같은 풀에서 시드만 바꿔 뽑아도 할당량 크기는 항상 같다
func TestSelectDifferentSeedsSameQuota(t *testing.T) {
	pool := samplePool()
	patterns := []PatternConfig{
		{Type: PatternSound, QuestionCount: 2},
		{Type: PatternMeaning, QuestionCount: 2},
	}

	for _, seed := range []int64{1, 2, 99} {
		sel, err := NewSelector(seed).Select(pool, patterns, ExhaustRepeat)
		if err != nil {
			t.Fatalf("seed %d: Select error: %v", seed, err)
		}
		if len(sel.Normal) != 4 {
			t.Fatalf("seed %d: normal selection = %d, want 4", seed, len(sel.Normal))
		}
		if len(sel.TextBook) != 0 {
			t.Fatalf("seed %d: textbook selection = %d, want 0", seed, len(sel.TextBook))
		}
	}
}

func TestSelectExhaustPolicies(t *testing.T) {
	// 교과서 한자는 2자뿐인데 교과서 할당량은 5
	pool := samplePool()[:2]
	for i := range pool {
		if !pool[i].HasTextBookWord() {
			t.Fatal("test pool must be all-textbook")
		}
	}
	patterns := []PatternConfig{
		{Type: PatternWordReadingWrite, QuestionCount: 5, IsTextBook: true},
	}

	cases := []struct {
		policy  ExhaustPolicy
		wantLen int
		wantErr error
	}{
		{ExhaustRepeat, 5, nil},
		{ExhaustReduce, 2, nil},
		{ExhaustError, 0, ErrPoolExhausted},
	}

	for _, tc := range cases {
		sel, err := NewSelector(1).Select(pool, patterns, tc.policy)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("policy %s: err = %v, want %v", tc.policy, err, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("policy %s: Select error: %v", tc.policy, err)
		}
		if len(sel.TextBook) != tc.wantLen {
			t.Fatalf("policy %s: selection = %d, want %d", tc.policy, len(sel.TextBook), tc.wantLen)
		}
	}
}

func TestSelectRepeatCycles(t *testing.T) {
	pool := samplePool()[:2]
	patterns := []PatternConfig{
		{Type: PatternWordReadingWrite, QuestionCount: 5, IsTextBook: true},
	}

	sel, err := NewSelector(3).Select(pool, patterns, ExhaustRepeat)
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}

	// 풀이 2자뿐이므로 반복 선발이 일어나야 한다
	seen := map[string]int{}
	for _, h := range sel.TextBook {
		seen[h.Character]++
	}
	if len(seen) != 2 {
		t.Fatalf("distinct characters = %d, want 2", len(seen))
	}
}

func TestSelectEmptyPool(t *testing.T) {
	_, err := NewSelector(1).Select(nil, DefaultPatterns(), ExhaustRepeat)
	if !errors.Is(err, ErrPoolEmpty) {
		t.Fatalf("err = %v, want ErrPoolEmpty", err)
	}
}

// 파티션 하나가 통째로 비면 그 몫만 비우고 진행한다
func TestSelectEmptyPartitionSkips(t *testing.T) {
	pool := samplePool()[6:9] // 교과서 단어 없는 한자만
	patterns := DefaultPatterns()

	sel, err := NewSelector(1).Select(pool, patterns, ExhaustRepeat)
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if len(sel.TextBook) != 0 {
		t.Fatalf("textbook selection = %d, want 0", len(sel.TextBook))
	}
	if len(sel.Normal) != NormalQuota(patterns) {
		t.Fatalf("normal selection = %d, want %d", len(sel.Normal), NormalQuota(patterns))
	}
}
