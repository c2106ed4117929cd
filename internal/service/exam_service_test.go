package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hanja_edu_backend/internal/exam"
	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/util"
)

func sessionWith(t *testing.T, status model.ExamStatus, startedAgo time.Duration, questions []*exam.QuestionSkeleton) *model.ExamSession {
	t.Helper()
	raw, err := json.Marshal(questions)
	if err != nil {
		t.Fatalf("marshal questions: %v", err)
	}
	started := time.Now().Add(-startedAgo)
	session := &model.ExamSession{
		UserID:    1,
		Grade:     8,
		Status:    status,
		Questions: raw,
		TimeLimit: 30,
		StartedAt: &started,
	}
	session.ID = "exam-test"
	return session
}

func TestViewForSessionFallbackForUnresolved(t *testing.T) {
	questions := []*exam.QuestionSkeleton{
		{
			ID:           "q_0",
			Type:         exam.PatternSound,
			Character:    "學",
			QuestionText: "한자 '學'의 음으로 알맞은 것은?",
			Options:      []string{"학", "교", "선", "생"},
		},
		{
			// AI 해결 실패로 지문이 비어 있는 문제
			ID:        "q_1",
			Type:      exam.PatternWordMeaning,
			Character: "校",
			AIPrompt:  "prompt",
			Options:   []string{"校", "學", "先", "生"},
		},
		{
			// sentence_reading은 보기까지 AI 해결에 달려 있다
			ID:        "q_2",
			Type:      exam.PatternSentenceReading,
			Character: "先",
			AIPrompt:  "prompt",
		},
	}

	svc := &ExamService{}
	view, err := svc.viewForSession(sessionWith(t, model.ExamInProgress, time.Minute, questions))
	if err != nil {
		t.Fatalf("viewForSession: %v", err)
	}
	if len(view.Questions) != 3 {
		t.Fatalf("questions = %d, want 3", len(view.Questions))
	}

	if got := view.Questions[0].QuestionText; got != "한자 '學'의 음으로 알맞은 것은?" {
		t.Fatalf("resolved question text changed: %q", got)
	}
	for _, i := range []int{1, 2} {
		if got := view.Questions[i].QuestionText; got != unresolvedQuestionText {
			t.Fatalf("question %d text = %q, want fallback", i, got)
		}
	}
}

func TestRemainingSecondsFromStateMachine(t *testing.T) {
	svc := &ExamService{}

	fresh := sessionWith(t, model.ExamInProgress, 10*time.Minute, nil)
	remaining := svc.remainingSeconds(fresh)
	if remaining < 1190 || remaining > 1200 {
		t.Fatalf("remaining = %d, want ~1200", remaining)
	}
	if svc.expired(fresh) {
		t.Fatal("session with 20 minutes left reported expired")
	}

	over := sessionWith(t, model.ExamInProgress, 31*time.Minute, nil)
	if !svc.expired(over) {
		t.Fatal("session past its limit not reported expired")
	}
	if got := svc.remainingSeconds(over); got != 0 {
		t.Fatalf("expired remaining = %d, want 0", got)
	}

	done := sessionWith(t, model.ExamSubmitted, 40*time.Minute, nil)
	if svc.expired(done) {
		t.Fatal("submitted session must not expire again")
	}
	if got := svc.remainingSeconds(done); got != 0 {
		t.Fatalf("submitted remaining = %d, want 0", got)
	}
}

func TestFinishSessionRejectsFinished(t *testing.T) {
	svc := &ExamService{}

	submitted := sessionWith(t, model.ExamSubmitted, 10*time.Minute, nil)
	if _, err := svc.finishSession(submitted, exam.AnswerRecord{}, false); !errors.Is(err, util.ErrExamAlreadySubmitted) {
		t.Fatalf("resubmit error = %v, want ErrExamAlreadySubmitted", err)
	}

	timedOut := sessionWith(t, model.ExamTimedOut, 40*time.Minute, nil)
	if _, err := svc.finishSession(timedOut, exam.AnswerRecord{}, false); !errors.Is(err, util.ErrExamAlreadySubmitted) {
		t.Fatalf("submit after timeout error = %v, want ErrExamAlreadySubmitted", err)
	}

	// 아직 시간이 남은 세션을 타임아웃 경로로 끝낼 수는 없다
	fresh := sessionWith(t, model.ExamInProgress, time.Minute, nil)
	if _, err := svc.finishSession(fresh, nil, true); !errors.Is(err, util.ErrExamNotInProgress) {
		t.Fatalf("premature timeout error = %v, want ErrExamNotInProgress", err)
	}
}
