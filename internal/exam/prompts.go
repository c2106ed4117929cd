package exam

import "fmt"

// promptSpec 유형별 생성 파라미터. 형식/토큰 예산/창의성은 유형마다 다르다.
type promptSpec struct {
	MaxTokens   int
	Temperature float64
}

var promptSpecs = map[PatternType]promptSpec{
	PatternWordMeaning:     {MaxTokens: 120, Temperature: 0.7},
	PatternBlankHanzi:      {MaxTokens: 120, Temperature: 0.7},
	PatternWordMeaningSel:  {MaxTokens: 160, Temperature: 0.9},
	PatternSentenceReading: {MaxTokens: 120, Temperature: 0.7},
}

// PromptSpecFor 유형별 생성 파라미터. 등록되지 않은 유형은 보수적인 기본값.
func PromptSpecFor(t PatternType) (maxTokens int, temperature float64) {
	if s, ok := promptSpecs[t]; ok {
		return s.MaxTokens, s.Temperature
	}
	return 100, 0.7
}

// buildPrompt 유형별 AI 프롬프트를 만든다. 생성이 필요 없는 유형은 빈 문자열.
func buildPrompt(t PatternType, q *QuestionSkeleton) string {
	switch t {
	case PatternWordMeaning:
		return fmt.Sprintf(
			"한자 '%s'(%s %s)가 들어갈 자리를 빈칸으로 둔 자연스러운 한국어 문장을 한 개 만들어 주세요. "+
				"빈칸은 ○ 기호로 표시하고, 문장 외의 설명은 쓰지 마세요.",
			q.Character, q.Meaning, q.Sound)
	case PatternBlankHanzi:
		return fmt.Sprintf(
			"단어 '%s'(%s)를 포함한 자연스러운 한국어 문장을 한 개 만들어 주세요. "+
				"단어는 반드시 '%s' 그대로 사용하고, 문장 외의 설명은 쓰지 마세요.",
			q.TextBookWord.Korean, q.TextBookWord.Hanzi, q.TextBookWord.Korean)
	case PatternWordMeaningSel:
		return fmt.Sprintf(
			"단어 '%s'(%s)의 뜻을 묻는 4지선다 문제를 만듭니다. "+
				"아래 형식으로 정답 뜻 1개와 그럴듯한 오답 뜻 3개를 제시해 주세요.\n"+
				"정답: <정답 뜻>\n오답1: <오답 뜻>\n오답2: <오답 뜻>\n오답3: <오답 뜻>",
			q.TextBookWord.Hanzi, q.TextBookWord.Korean)
	case PatternSentenceReading:
		return fmt.Sprintf(
			"한자 단어 '%s'를 포함한 자연스러운 한국어 문장을 한 개 만들어 주세요. "+
				"단어는 한자 표기 '%s' 그대로 문장에 넣고, 문장 외의 설명은 쓰지 마세요.",
			q.TextBookWord.Hanzi, q.TextBookWord.Hanzi)
	default:
		return ""
	}
}
