package exam

import (
	"fmt"
	"hanja_edu_backend/internal/model"
	"math/rand"
)

// maxAttemptFactor 유형별 할당량 대비 시도 횟수 상한.
// 상한에 닿으면 남은 슬롯은 비워 두고 넘어간다 (축소 출제).
const maxAttemptFactor = 3

// Builder 선발된 한자를 문제 뼈대로 바꾼다. 보기의 오답 후보는 전체 풀에서 뽑는다.
type Builder struct {
	pool []model.HanziCharacter
	rng  *rand.Rand
}

func NewBuilder(pool []model.HanziCharacter, seed int64) *Builder {
	return &Builder{pool: pool, rng: rand.New(rand.NewSource(seed))}
}

// BuildAll 출제표 순서대로 전체 문제를 만든다. 선발 목록은 파티션별 커서로
// 유형을 가로질러 앞에서부터 소비하므로 선발된 한자 하나가 문제 하나를 맡고,
// 목록이 다 돌았을 때만 처음으로 순환한다. 한자가 유형 조건을 못 채우면
// 다음 한자로 재시도하고, 시도 상한을 넘기면 그 유형은 모자란 채로 둔다.
// 전역 인덱스는 성공한 문제에만 부여되어 q_0부터 연속이다.
func (b *Builder) BuildAll(sel *Selection, patterns []PatternConfig) []*QuestionSkeleton {
	var questions []*QuestionSkeleton
	index := 0
	normalCursor, textBookCursor := 0, 0

	for _, p := range patterns {
		source := sel.Normal
		cursor := &normalCursor
		if p.IsTextBook {
			source = sel.TextBook
			cursor = &textBookCursor
		}
		if len(source) == 0 {
			continue
		}

		built := 0
		attempts := 0
		for built < p.QuestionCount && attempts < p.QuestionCount*maxAttemptFactor {
			ch := source[*cursor%len(source)]
			(*cursor)++
			attempts++

			q := b.Build(p.Type, &ch, index)
			if q == nil {
				continue
			}
			questions = append(questions, q)
			index++
			built++
		}
	}

	return questions
}

// Build 한 문제를 만든다. 한자에 유형이 요구하는 데이터가 없으면 nil.
func (b *Builder) Build(t PatternType, ch *model.HanziCharacter, index int) *QuestionSkeleton {
	q := &QuestionSkeleton{
		ID:        questionID(index),
		Index:     index,
		Type:      t,
		Character: ch.Character,
		Meaning:   ch.Meaning,
		Sound:     ch.Sound,
	}
	for _, w := range ch.RelatedWords {
		q.RelatedWords = append(q.RelatedWords, RelatedWordRef{Hanzi: w.Hanzi, Korean: w.Korean, IsTextBook: w.IsTextBook})
	}
	if tb := ch.FirstTextBookWord(); tb != nil {
		q.TextBookWord = &RelatedWordRef{Hanzi: tb.Hanzi, Korean: tb.Korean, IsTextBook: true}
	}

	switch t {
	case PatternSound:
		q.QuestionText = fmt.Sprintf("한자 '%s'의 음으로 알맞은 것은?", ch.Character)
		q.CorrectAnswer = ch.Sound
		q.Options = b.buildOptions(index, ch.Sound, b.soundCandidates(ch))

	case PatternSoundSame:
		// 풀에서 같은 음의 다른 한자를 찾는다. 없으면 출제 불가
		sibling := b.sameSoundSibling(ch)
		if sibling == nil {
			return nil
		}
		q.QuestionText = fmt.Sprintf("한자 '%s'와 음이 같은 한자는?", ch.Character)
		q.CorrectAnswer = sibling.Character
		q.Options = b.buildOptions(index, sibling.Character, b.glyphCandidates(ch, sibling.Sound))

	case PatternMeaning:
		q.QuestionText = fmt.Sprintf("'%s %s'에 해당하는 한자는?", ch.Meaning, ch.Sound)
		q.CorrectAnswer = ch.Character
		q.Options = b.buildOptions(index, ch.Character, b.glyphCandidates(ch, ""))

	case PatternWordReading:
		if len(ch.RelatedWords) == 0 {
			return nil
		}
		w := ch.RelatedWords[0]
		q.QuestionText = fmt.Sprintf("단어 '%s'의 독음으로 알맞은 것은?", w.Hanzi)
		q.CorrectAnswer = w.Korean
		q.Options = b.buildOptions(index, w.Korean, b.readingCandidates(w.Korean))

	case PatternWordMeaning:
		// 문장은 AI가 생성, 보기는 한자 자형으로 미리 구성
		q.CorrectAnswer = ch.Character
		q.Options = b.buildOptions(index, ch.Character, b.glyphCandidates(ch, ""))
		q.AIPrompt = buildPrompt(t, q)

	case PatternBlankHanzi:
		if q.TextBookWord == nil {
			return nil
		}
		q.CorrectAnswer = ch.Character
		q.Options = b.buildOptions(index, ch.Character, b.glyphCandidates(ch, ""))
		q.AIPrompt = buildPrompt(t, q)

	case PatternWordMeaningSel:
		if q.TextBookWord == nil {
			return nil
		}
		q.QuestionText = fmt.Sprintf("단어 '%s'의 뜻으로 알맞은 것은?", q.TextBookWord.Hanzi)
		// 보기와 정답 인덱스는 리졸버가 채운다
		q.AIPrompt = buildPrompt(t, q)

	case PatternHanziWrite:
		q.QuestionText = fmt.Sprintf("한자 '%s'의 훈과 음을 쓰세요.", ch.Character)
		q.CorrectAnswer = ch.Meaning + " " + ch.Sound

	case PatternWordReadingWrite:
		if q.TextBookWord == nil {
			return nil
		}
		q.QuestionText = fmt.Sprintf("단어 '%s'의 독음을 쓰세요.", q.TextBookWord.Hanzi)
		q.CorrectAnswer = q.TextBookWord.Korean

	case PatternSentenceReading:
		if q.TextBookWord == nil {
			return nil
		}
		q.CorrectAnswer = q.TextBookWord.Korean
		// 문장과 독음 보기는 리졸버가 채운다
		q.AIPrompt = buildPrompt(t, q)

	default:
		return nil
	}

	return q
}

// buildOptions 정답 + 오답 후보 3개를 문제 인덱스 시드로 섞는다
func (b *Builder) buildOptions(index int, correct string, candidates []string) []string {
	opts := []string{correct}
	for _, c := range candidates {
		if len(opts) == 4 {
			break
		}
		if c == correct || contains(opts, c) {
			continue
		}
		opts = append(opts, c)
	}
	// 후보가 모자라면 고정 보충 목록으로 4개를 맞춘다
	for _, f := range fallbackFillers {
		if len(opts) == 4 {
			break
		}
		if !contains(opts, f) {
			opts = append(opts, f)
		}
	}
	return SeededShuffle(opts, index)
}

func (b *Builder) soundCandidates(exclude *model.HanziCharacter) []string {
	var out []string
	for _, h := range b.shuffledPool() {
		if h.ID != exclude.ID && h.Sound != exclude.Sound {
			out = append(out, h.Sound)
		}
	}
	return out
}

// glyphCandidates 다른 한자의 자형. excludeSound가 비어 있지 않으면
// 그 음의 한자는 후보에서 뺀다 (sound_same 보기에서 복수 정답 방지)
func (b *Builder) glyphCandidates(exclude *model.HanziCharacter, excludeSound string) []string {
	var out []string
	for _, h := range b.shuffledPool() {
		if h.ID == exclude.ID || h.Character == exclude.Character {
			continue
		}
		if excludeSound != "" && h.Sound == excludeSound {
			continue
		}
		out = append(out, h.Character)
	}
	return out
}

func (b *Builder) readingCandidates(exclude string) []string {
	var out []string
	for _, h := range b.shuffledPool() {
		for _, w := range h.RelatedWords {
			if w.Korean != exclude {
				out = append(out, w.Korean)
			}
		}
	}
	return out
}

func (b *Builder) sameSoundSibling(ch *model.HanziCharacter) *model.HanziCharacter {
	for i := range b.pool {
		if b.pool[i].ID != ch.ID && b.pool[i].Sound == ch.Sound {
			return &b.pool[i]
		}
	}
	return nil
}

func (b *Builder) shuffledPool() []model.HanziCharacter {
	out := make([]model.HanziCharacter, len(b.pool))
	copy(out, b.pool)
	b.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func contains(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
