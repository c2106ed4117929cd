package exam

import (
	"reflect"
	"sort"
	"testing"
)

func TestSeededShuffleDeterministic(t *testing.T) {
	items := []string{"기쁨", "슬픔", "분노", "평온"}

	for seed := 0; seed < 50; seed++ {
		a := SeededShuffle(items, seed)
		b := SeededShuffle(items, seed)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("seed %d: shuffle not deterministic: %v vs %v", seed, a, b)
		}
	}
}

func TestSeededShuffleIsPermutation(t *testing.T) {
	items := []string{"하늘", "사람", "마음", "나라", "학교"}

	for seed := 0; seed < 20; seed++ {
		out := SeededShuffle(items, seed)
		if len(out) != len(items) {
			t.Fatalf("seed %d: length changed: %d", seed, len(out))
		}

		sortedIn := append([]string{}, items...)
		sortedOut := append([]string{}, out...)
		sort.Strings(sortedIn)
		sort.Strings(sortedOut)
		if !reflect.DeepEqual(sortedIn, sortedOut) {
			t.Fatalf("seed %d: not a permutation: %v", seed, out)
		}
	}
}

func TestSeededShuffleDoesNotMutateInput(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	orig := append([]string{}, items...)

	SeededShuffle(items, 7)

	if !reflect.DeepEqual(items, orig) {
		t.Fatalf("input mutated: %v", items)
	}
}

func TestIndexOf(t *testing.T) {
	items := []string{"가", "나", "다"}

	if got := indexOf(items, "나"); got != 2 {
		t.Fatalf("indexOf = %d, want 2", got)
	}
	if got := indexOf(items, "없음"); got != 0 {
		t.Fatalf("indexOf missing = %d, want 0", got)
	}
}
