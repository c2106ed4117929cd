package model

// HanziCharacter 급수별 한자 기준 데이터.
// 관리자 도구로만 생성/수정되며 시험 파이프라인에서는 읽기 전용이다.
type HanziCharacter struct {
	BaseModel
	Character   string        `gorm:"size:8;not null;index" json:"character"` // 한자 자형
	Meaning     string        `gorm:"size:100;not null" json:"meaning"`       // 훈 (뜻)
	Sound       string        `gorm:"size:50;not null" json:"sound"`          // 음 (소리)
	Grade       float64       `gorm:"index;not null" json:"grade"`            // 급수 (8~1, 5.5 같은 반급수 포함)
	GradeNumber int           `gorm:"default:0" json:"gradeNumber"`
	Strokes     int           `gorm:"default:0" json:"strokes"`
	StrokeVideo string        `gorm:"size:255" json:"strokeVideo"` // 획순 영상 URL
	StrokeThumb string        `gorm:"size:255" json:"strokeThumb"` // 획순 썸네일 URL
	RelatedWords []RelatedWord `gorm:"constraint:OnDelete:CASCADE" json:"relatedWords"`
}

func (HanziCharacter) TableName() string {
	return "hanzi_characters"
}

// RelatedWord 한자가 포함된 단어. 교과서 수록 단어는 IsTextBook으로 구분한다.
type RelatedWord struct {
	BaseModel
	HanziCharacterID uint   `gorm:"index;not null" json:"hanziCharacterId"`
	Hanzi            string `gorm:"size:20;not null" json:"hanzi"`  // 한자 단어
	Korean           string `gorm:"size:50;not null" json:"korean"` // 한글 독음/뜻
	IsTextBook       bool   `gorm:"default:false;index" json:"isTextBook"`
}

func (RelatedWord) TableName() string {
	return "related_words"
}

// HasTextBookWord 교과서 단어 보유 여부. 교과서 전용 문제 유형의 출제 조건이다.
func (h *HanziCharacter) HasTextBookWord() bool {
	for _, w := range h.RelatedWords {
		if w.IsTextBook {
			return true
		}
	}
	return false
}

// FirstTextBookWord 첫 번째 교과서 단어를 돌려준다. 없으면 nil.
func (h *HanziCharacter) FirstTextBookWord() *RelatedWord {
	for i := range h.RelatedWords {
		if h.RelatedWords[i].IsTextBook {
			return &h.RelatedWords[i]
		}
	}
	return nil
}
