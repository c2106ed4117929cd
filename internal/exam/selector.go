package exam

import (
	"hanja_edu_backend/internal/model"
	"math/rand"
)

// ExhaustPolicy 풀이 할당량보다 작을 때의 처리 방침.
// 참조 동작은 인덱스를 풀 크기로 나눈 나머지로 순환하는 것(반복 허용)인데,
// 교과서 단어 풀이 작은 급수에서는 같은 한자가 조용히 중복 출제된다.
// 그래서 정책을 명시적으로 고르게 한다.
type ExhaustPolicy string

const (
	ExhaustRepeat ExhaustPolicy = "repeat" // 순환하며 중복 선발 (참조 동작, 기본값)
	ExhaustReduce ExhaustPolicy = "reduce" // 풀 크기만큼만 선발, 문항 수 축소
	ExhaustError  ExhaustPolicy = "error"  // ErrPoolExhausted 반환
)

// Selection 급수 풀에서 뽑은 두 부분집합. 서로 겹치지 않는다.
type Selection struct {
	TextBook []model.HanziCharacter
	Normal   []model.HanziCharacter
}

// Selector 급수 한자 풀을 교과서/일반으로 나누고 출제표 할당량만큼 뽑는다.
type Selector struct {
	rng *rand.Rand
}

func NewSelector(seed int64) *Selector {
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

// Select 풀을 교과서 단어 보유 여부로 분할하고, 각 파티션을 독립적으로 섞은 뒤
// 할당량만큼 앞에서 뽑는다. 한쪽 파티션이 비어 있으면 해당 몫은 빈 슬라이스로
// 돌아가고 (시험은 축소 출제), 풀 전체가 비어 있을 때만 에러다.
func (s *Selector) Select(pool []model.HanziCharacter, patterns []PatternConfig, policy ExhaustPolicy) (*Selection, error) {
	if len(pool) == 0 {
		return nil, ErrPoolEmpty
	}

	var textbook, normal []model.HanziCharacter
	for _, h := range pool {
		if h.HasTextBookWord() {
			textbook = append(textbook, h)
		} else {
			normal = append(normal, h)
		}
	}

	tbNeeded := TextBookQuota(patterns)
	nmNeeded := NormalQuota(patterns)

	selTB, err := s.pick(textbook, tbNeeded, policy)
	if err != nil {
		return nil, err
	}
	selNM, err := s.pick(normal, nmNeeded, policy)
	if err != nil {
		return nil, err
	}

	return &Selection{TextBook: selTB, Normal: selNM}, nil
}

func (s *Selector) pick(partition []model.HanziCharacter, quota int, policy ExhaustPolicy) ([]model.HanziCharacter, error) {
	if quota == 0 {
		return nil, nil
	}
	if len(partition) == 0 {
		// 파티션이 통째로 비면 해당 유형 출제를 건너뛴다. 시험 전체를 죽이지 않음
		return nil, nil
	}

	shuffled := make([]model.HanziCharacter, len(partition))
	copy(shuffled, partition)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) >= quota {
		return shuffled[:quota], nil
	}

	switch policy {
	case ExhaustReduce:
		return shuffled, nil
	case ExhaustError:
		return nil, ErrPoolExhausted
	default: // ExhaustRepeat
		out := make([]model.HanziCharacter, quota)
		for i := 0; i < quota; i++ {
			out[i] = shuffled[i%len(shuffled)]
		}
		return out, nil
	}
}
