package exam

import (
	"hanja_edu_backend/internal/model"
)

// makeChar 테스트용 한자 레코드
func makeChar(id uint, character, meaning, sound string, words ...model.RelatedWord) model.HanziCharacter {
	h := model.HanziCharacter{
		Character: character,
		Meaning:   meaning,
		Sound:     sound,
		Grade:     8,
	}
	h.ID = id
	h.RelatedWords = words
	return h
}

func word(hanzi, korean string, textbook bool) model.RelatedWord {
	return model.RelatedWord{Hanzi: hanzi, Korean: korean, IsTextBook: textbook}
}

// samplePool 교과서 단어 보유 4자 + 일반 6자
func samplePool() []model.HanziCharacter {
	return []model.HanziCharacter{
		makeChar(1, "學", "배울", "학", word("學校", "학교", true), word("學生", "학생", false)),
		makeChar(2, "校", "학교", "교", word("校長", "교장", true)),
		makeChar(3, "先", "먼저", "선", word("先生", "선생", true)),
		makeChar(4, "生", "날", "생", word("生日", "생일", true)),
		makeChar(5, "水", "물", "수", word("水泳", "수영", false)),
		makeChar(6, "火", "불", "화", word("火山", "화산", false)),
		makeChar(7, "木", "나무", "목"),
		makeChar(8, "金", "쇠", "금"),
		makeChar(9, "土", "흙", "토"),
		makeChar(10, "日", "날", "일", word("日記", "일기", false)),
	}
}
