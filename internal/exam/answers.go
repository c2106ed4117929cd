package exam

import "go.uber.org/zap"

// BuildAnswerTable 해결이 끝난 문제 목록에서 정답표를 만든다.
// 이미 알고 있는 필드만으로 계산하며 AI를 다시 부르지 않는다.
func BuildAnswerTable(questions []*QuestionSkeleton, log *zap.Logger) []CorrectAnswerEntry {
	if log == nil {
		log = zap.NewNop()
	}

	table := make([]CorrectAnswerEntry, 0, len(questions))
	for _, q := range questions {
		entry := CorrectAnswerEntry{
			QuestionIndex: q.Index,
			QuestionID:    q.ID,
			Type:          q.Type,
			Character:     q.Character,
			CorrectAnswer: q.CorrectAnswer,
		}

		if q.Type == PatternWordMeaningSel {
			if q.CorrectAnswerIndex == 0 {
				// 리졸버가 건너뛰었거나 실패한 것. 채점은 계속해야 하므로
				// 1번으로 대체하되 반드시 시끄럽게 남긴다
				log.Error("word_meaning_select question has no correct answer index; resolver step was skipped or failed",
					zap.String("question", q.ID),
					zap.String("character", q.Character))
				entry.CorrectIndex = 1
			} else {
				entry.CorrectIndex = q.CorrectAnswerIndex
			}
		}

		table = append(table, entry)
	}

	return table
}
