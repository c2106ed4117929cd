package exam

// lcg 선형 합동 생성기 (Numerical Recipes 계수).
// 보기 셔플은 문제의 전역 인덱스를 시드로 써서, 같은 문제는 언제 다시
// 계산해도 같은 보기 순서가 나온다. 생성과 채점 사이에 정답 위치가
// 밀리지 않기 위한 장치이지, 실행 간 난수 품질을 위한 것이 아니다.
type lcg struct {
	state uint32
}

func newLCG(seed int) *lcg {
	return &lcg{state: uint32(seed)}
}

func (r *lcg) next() uint32 {
	r.state = r.state*1664525 + 1013904223
	return r.state
}

// intn [0, n) 범위의 값
func (r *lcg) intn(n int) int {
	return int(r.next() % uint32(n))
}

// SeededShuffle 시드가 같으면 항상 같은 순열을 돌려준다. 입력은 바꾸지 않는다.
func SeededShuffle(items []string, seed int) []string {
	out := make([]string, len(items))
	copy(out, items)

	rng := newLCG(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// indexOf 셔플 결과에서 정답 위치(1부터)를 찾는다. 못 찾으면 0.
func indexOf(items []string, target string) int {
	for i, v := range items {
		if v == target {
			return i + 1
		}
	}
	return 0
}
