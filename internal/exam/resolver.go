package exam

import (
	"context"
	"fmt"
	"hanja_edu_backend/internal/model"
	"strings"

	"go.uber.org/zap"
)

// PromptRequest AI 배치 요청의 한 항목
type PromptRequest struct {
	ID          string
	Type        PatternType
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// GeneratedItem AI 응답의 한 항목. ID로만 상호 연결되고 순서는 보장되지 않는다.
type GeneratedItem struct {
	ID      string
	Content string
}

// Generator 외부 텍스트 생성 협력자. 시험 생성당 배치 호출은 정확히 한 번이다.
type Generator interface {
	Generate(ctx context.Context, batch []PromptRequest) ([]GeneratedItem, error)
}

// ProgressFunc 진행률 콜백 (done, total)
type ProgressFunc func(done, total int)

// fallbackFillers 독음 보기 후보가 모자랄 때 쓰는 고정 보충 목록
var fallbackFillers = []string{"하늘", "사람", "마음", "나라", "학교", "바람"}

// Resolver 생성 지문이 필요한 문제를 모아 배치 한 번으로 해결하고
// 유형별 후처리를 수행한다. 이미 해결된 문제의 보기/정답 인덱스는
// 다시 건드리지 않는다 (표시 텍스트만 갱신 가능).
type Resolver struct {
	gen  Generator
	pool []model.HanziCharacter
	log  *zap.Logger
}

func NewResolver(gen Generator, pool []model.HanziCharacter, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{gen: gen, pool: pool, log: log}
}

// Resolve 미해결 문제 전체를 한 번의 배치 호출로 해결한다.
// 외부 호출이 실패하면 이미 만들어진 문제는 그대로 두고 에러만 돌려준다.
// 호출자는 경고만 남기고 시험을 계속 진행해야 한다.
func (r *Resolver) Resolve(ctx context.Context, questions []*QuestionSkeleton, progress ProgressFunc) error {
	var pending []*QuestionSkeleton
	for _, q := range questions {
		if q.NeedsAI() {
			pending = append(pending, q)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	batch := make([]PromptRequest, 0, len(pending))
	for _, q := range pending {
		maxTokens, temperature := PromptSpecFor(q.Type)
		batch = append(batch, PromptRequest{
			ID:          q.ID,
			Type:        q.Type,
			Prompt:      q.AIPrompt,
			MaxTokens:   maxTokens,
			Temperature: temperature,
		})
	}

	items, err := r.gen.Generate(ctx, batch)
	if err != nil {
		return fmt.Errorf("ai batch generation: %w", err)
	}

	byID := make(map[string]string, len(items))
	for _, it := range items {
		byID[it.ID] = it.Content
	}

	done := 0
	for _, q := range pending {
		content, ok := byID[q.ID]
		if !ok || strings.TrimSpace(content) == "" {
			// 응답 누락. 문제는 미해결 상태로 남겨 두고 표시 폴백은 조회 시점에 처리
			r.log.Warn("ai content missing for question", zap.String("question", q.ID), zap.String("type", string(q.Type)))
			continue
		}
		r.apply(q, strings.TrimSpace(content))
		done++
		if progress != nil {
			progress(done, len(pending))
		}
	}

	return nil
}

// apply 유형별 후처리. 같은 AI 출력에 대해 결정적이다.
func (r *Resolver) apply(q *QuestionSkeleton, content string) {
	if q.Resolved {
		// 동결 이후에는 표시 텍스트만 갱신 가능
		q.AIGeneratedContent = content
		return
	}

	switch q.Type {
	case PatternWordMeaning:
		q.AIGeneratedContent = content
		q.QuestionText = "다음 문장의 ○에 들어갈 한자로 알맞은 것은?\n" + content

	case PatternBlankHanzi:
		sentence := content
		if q.TextBookWord != nil {
			// 한글 표기를 한자 단어로 치환한 뒤 대상 한자를 빈칸으로 바꾼다
			sentence = strings.ReplaceAll(sentence, q.TextBookWord.Korean, q.TextBookWord.Hanzi)
		}
		sentence = strings.ReplaceAll(sentence, q.Character, "□")
		for strings.Contains(sentence, "□□") {
			sentence = strings.ReplaceAll(sentence, "□□", "□")
		}
		q.AIGeneratedContent = sentence
		q.QuestionText = "다음 문장의 □에 들어갈 한자로 알맞은 것은?\n" + sentence

	case PatternWordMeaningSel:
		correct, distractors := ParseGeneratedOptions(content)
		if correct == "" {
			r.log.Warn("could not parse correct answer from ai output", zap.String("question", q.ID))
			q.AIGeneratedContent = content
			return
		}
		distractors = fillDistractors(correct, distractors, 3)
		opts := append([]string{correct}, distractors[:3]...)
		shuffled := SeededShuffle(opts, q.Index)
		idx := indexOf(shuffled, correct)
		if idx == 0 {
			// 셔플 결과에서 정답을 못 찾는 건 데이터 품질 문제다. 죽는 대신 1번으로
			r.log.Error("correct answer missing after shuffle", zap.String("question", q.ID), zap.String("correct", correct))
			idx = 1
		}
		q.Options = shuffled
		q.CorrectAnswer = correct
		q.CorrectAnswerIndex = idx
		q.AIGeneratedContent = content

	case PatternSentenceReading:
		q.AIGeneratedContent = content
		if q.TextBookWord != nil {
			q.QuestionText = fmt.Sprintf("다음 문장에서 '%s'의 독음으로 알맞은 것은?\n%s", q.TextBookWord.Hanzi, content)
		}
		q.Options = r.buildReadingOptions(q)

	default:
		q.AIGeneratedContent = content
	}

	q.Resolved = true
}

// buildReadingOptions 독음 보기 4개를 만든다. 글자 수가 같은 단어를 우선하고,
// 모자라면 나머지 단어, 그래도 모자라면 고정 보충 목록으로 채운다.
func (r *Resolver) buildReadingOptions(q *QuestionSkeleton) []string {
	correct := q.CorrectAnswer
	correctLen := len([]rune(correct))

	var sameLen, others []string
	for _, h := range r.pool {
		for _, w := range h.RelatedWords {
			if w.Korean == correct || w.Korean == "" {
				continue
			}
			if len([]rune(w.Korean)) == correctLen {
				sameLen = append(sameLen, w.Korean)
			} else {
				others = append(others, w.Korean)
			}
		}
	}

	opts := []string{correct}
	for _, group := range [][]string{sameLen, others, fallbackFillers} {
		for _, c := range group {
			if len(opts) == 4 {
				break
			}
			if !contains(opts, c) {
				opts = append(opts, c)
			}
		}
	}

	return SeededShuffle(opts, q.Index)
}

// ParseGeneratedOptions "정답:"/"오답N:" 접두 형식의 자유 텍스트에서
// 정답과 오답들을 뽑아낸다. 파싱 전략을 바꿀 때 나머지 파이프라인을
// 건드리지 않도록 여기에만 격리되어 있다.
func ParseGeneratedOptions(text string) (correct string, distractors []string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		colon := strings.Index(line, ":")
		if colon < 0 {
			continue
		}
		prefix := strings.TrimSpace(line[:colon])
		value := strings.TrimSpace(line[colon+1:])
		if value == "" {
			continue
		}
		if strings.HasPrefix(prefix, "정답") && correct == "" {
			correct = value
		} else if strings.HasPrefix(prefix, "오답") {
			distractors = append(distractors, value)
		}
	}
	return correct, distractors
}

// fillDistractors 파싱이 n개를 못 채우면 정답 텍스트를 회전시킨 결정적
// 보충 오답으로 채운다. 회전 결과가 정답과 겹치면 고정 목록으로 대체
func fillDistractors(correct string, distractors []string, n int) []string {
	runes := []rune(correct)
	for i := 0; len(distractors) < n; i++ {
		var filler string
		if len(runes) > 1 && i < len(runes)-1 {
			rot := i + 1
			filler = string(append(append([]rune{}, runes[rot:]...), runes[:rot]...))
		} else {
			filler = fallbackFillers[i%len(fallbackFillers)]
		}
		if filler == correct || contains(distractors, filler) {
			filler = fallbackFillers[i%len(fallbackFillers)]
			if filler == correct || contains(distractors, filler) {
				filler = fallbackFillers[(i+1)%len(fallbackFillers)] + "도"
			}
		}
		distractors = append(distractors, filler)
	}
	return distractors
}
