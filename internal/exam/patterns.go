package exam

// PatternConfig 출제표 한 행. 급수별 시험은 9개 유형의 고정 조합으로 구성되며
// 유형별 questionCount의 합이 시험의 총 문항 수가 된다.
type PatternConfig struct {
	Type          PatternType
	QuestionCount int
	IsTextBook    bool // 교과서 단어가 있는 한자 풀에서만 출제
	NeedsAI       bool // 지문 생성을 위해 AI 호출 필요
}

// DefaultPatterns 기본 출제표 (총 50문항). sound_same은 구버전 유형이라
// 기본 출제표에는 포함하지 않는다.
func DefaultPatterns() []PatternConfig {
	return []PatternConfig{
		{Type: PatternSound, QuestionCount: 5},
		{Type: PatternMeaning, QuestionCount: 5},
		{Type: PatternWordReading, QuestionCount: 5},
		{Type: PatternWordMeaning, QuestionCount: 5, NeedsAI: true},
		{Type: PatternBlankHanzi, QuestionCount: 5, IsTextBook: true, NeedsAI: true},
		{Type: PatternWordMeaningSel, QuestionCount: 5, IsTextBook: true, NeedsAI: true},
		{Type: PatternHanziWrite, QuestionCount: 10},
		{Type: PatternWordReadingWrite, QuestionCount: 5, IsTextBook: true},
		{Type: PatternSentenceReading, QuestionCount: 5, IsTextBook: true, NeedsAI: true},
	}
}

// TotalQuestions 출제표의 총 문항 수
func TotalQuestions(patterns []PatternConfig) int {
	total := 0
	for _, p := range patterns {
		total += p.QuestionCount
	}
	return total
}

// TextBookQuota 교과서 유형 문항 수
func TextBookQuota(patterns []PatternConfig) int {
	n := 0
	for _, p := range patterns {
		if p.IsTextBook {
			n += p.QuestionCount
		}
	}
	return n
}

// NormalQuota 일반 유형 문항 수
func NormalQuota(patterns []PatternConfig) int {
	return TotalQuestions(patterns) - TextBookQuota(patterns)
}
