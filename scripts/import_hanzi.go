// 한자 기준 데이터 일괄 등록 스크립트
//
// 관리자 API로 한 글자씩 등록하는 대신 JSON 파일의 급수별 한자를
// 연관 단어와 함께 한 번에 적재한다. 최초 배포나 급수 데이터 갱신 시 사용한다.
//
// 용법: go run scripts/import_hanzi.go <hanzi.json>
//
// JSON 형식:
//
//	[
//	  {
//	    "character": "天", "meaning": "하늘", "sound": "천", "grade": 8, "strokes": 4,
//	    "words": [{"hanzi": "天地", "korean": "천지", "isTextBook": true}]
//	  }
//	]

package main

import (
	"encoding/json"
	"log"
	"os"

	"hanja_edu_backend/internal/config"
	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/repository"
	"hanja_edu_backend/pkg/database"
	"hanja_edu_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

type importedWord struct {
	Hanzi      string `json:"hanzi"`
	Korean     string `json:"korean"`
	IsTextBook bool   `json:"isTextBook"`
}

type importedHanzi struct {
	Character string         `json:"character"`
	Meaning   string         `json:"meaning"`
	Sound     string         `json:"sound"`
	Grade     float64        `json:"grade"`
	Strokes   int            `json:"strokes"`
	Words     []importedWord `json:"words"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("용법: go run scripts/import_hanzi.go <hanzi.json>")
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("설정 파일을 읽을 수 없습니다: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("설정 파일 파싱 실패: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg)
	if err != nil {
		log.Fatalf("데이터베이스 연결 실패: %v", err)
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("데이터 파일을 읽을 수 없습니다: %v", err)
	}

	var entries []importedHanzi
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Fatalf("데이터 파일 파싱 실패: %v", err)
	}

	repo := repository.NewHanziRepository(db)

	created, updated := 0, 0
	for _, e := range entries {
		if e.Character == "" || e.Meaning == "" || e.Sound == "" || e.Grade <= 0 {
			log.Printf("필수 항목 누락으로 건너뜀: %+v", e)
			continue
		}

		words := make([]model.RelatedWord, 0, len(e.Words))
		for _, w := range e.Words {
			words = append(words, model.RelatedWord{
				Hanzi:      w.Hanzi,
				Korean:     w.Korean,
				IsTextBook: w.IsTextBook,
			})
		}

		// 같은 급수에 이미 있으면 갱신, 없으면 신규 등록
		existing, err := repo.FindByCharacter(e.Character, e.Grade)
		if err == nil && existing != nil {
			existing.Meaning = e.Meaning
			existing.Sound = e.Sound
			existing.Strokes = e.Strokes
			if err := repo.Update(existing); err != nil {
				log.Fatalf("한자 갱신 실패 (%s): %v", e.Character, err)
			}
			if len(words) > 0 {
				if err := repo.ReplaceWords(existing.ID, words); err != nil {
					log.Fatalf("단어 갱신 실패 (%s): %v", e.Character, err)
				}
			}
			updated++
			continue
		}

		hanzi := &model.HanziCharacter{
			Character:    e.Character,
			Meaning:      e.Meaning,
			Sound:        e.Sound,
			Grade:        e.Grade,
			Strokes:      e.Strokes,
			RelatedWords: words,
		}
		if err := repo.Create(hanzi); err != nil {
			log.Fatalf("한자 등록 실패 (%s): %v", e.Character, err)
		}
		created++
	}

	log.Printf("완료: 신규 %d건, 갱신 %d건", created, updated)
}
