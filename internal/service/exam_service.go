package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"hanja_edu_backend/internal/config"
	"hanja_edu_backend/internal/exam"
	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/repository"
	"hanja_edu_backend/internal/util"
	"hanja_edu_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	hanziPoolCacheTTL = 10 * time.Minute
	answerDraftTTL    = 2 * time.Hour
)

func hanziPoolCacheKey(grade float64) string {
	return fmt.Sprintf("hanja:pool:%g", grade)
}

func answerDraftKey(examID string) string {
	return "hanja:exam:answers:" + examID
}

// ExamService 시험 생성부터 채점, 이력 조회까지의 오케스트레이션.
// 순수 계산은 exam 패키지가 하고, 여기서는 저장소/캐시/AI/경험치를 엮는다.
type ExamService struct {
	ExamRepo  *repository.ExamRepository
	HanziRepo *repository.HanziRepository
	StatRepo  *repository.StudyStatRepository
	LogRepo   *repository.LearningLogRepository
	UserSvc   *UserService
	AI        *AIService
	Redis     *redis.Client
	Cfg       *config.Config
	Log       *zap.Logger
}

func NewExamService(
	examRepo *repository.ExamRepository,
	hanziRepo *repository.HanziRepository,
	statRepo *repository.StudyStatRepository,
	logRepo *repository.LearningLogRepository,
	userSvc *UserService,
	ai *AIService,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) *ExamService {
	return &ExamService{
		ExamRepo:  examRepo,
		HanziRepo: hanziRepo,
		StatRepo:  statRepo,
		LogRepo:   logRepo,
		UserSvc:   userSvc,
		AI:        ai,
		Redis:     rdb,
		Cfg:       cfg,
		Log:       log,
	}
}

// StudentQuestion 응시 화면에 내려가는 문제 뷰. 정답과 정답 인덱스는
// 제출 전에는 절대 포함되지 않는다.
type StudentQuestion struct {
	ID           string   `json:"id"`
	Index        int      `json:"index"`
	Type         string   `json:"type"`
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options,omitempty"`
}

// ExamView 세션 + 문제 뷰
type ExamView struct {
	ID               string            `json:"id"`
	Grade            float64           `json:"grade"`
	Status           model.ExamStatus  `json:"status"`
	TimeLimit        int               `json:"timeLimit"` // 분
	RemainingSeconds int               `json:"remainingSeconds"`
	QuestionCount    int               `json:"questionCount"`
	Questions        []StudentQuestion `json:"questions"`
	Score            *int              `json:"score,omitempty"`
	Passed           *bool             `json:"passed,omitempty"`
}

// StartExam 사용자의 현재 급수로 새 시험을 생성한다.
// 진행 중 세션이 이미 있으면 새로 만들지 않고 그 세션을 돌려준다.
func (s *ExamService) StartExam(ctx context.Context, userID uint) (*ExamView, error) {
	if existing, err := s.ExamRepo.FindActiveSession(userID); err == nil {
		return s.viewForSession(existing)
	}

	user, err := s.UserSvc.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.getPool(ctx, user.Grade)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, util.ErrEmptyHanziPool
	}

	questions, err := s.generateQuestions(ctx, pool)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &model.ExamSession{
		UserID:    userID,
		Grade:     user.Grade,
		Status:    model.ExamInProgress,
		Questions: raw,
		TimeLimit: s.Cfg.Exam.TimeLimitMinutes,
		StartedAt: &now,
	}
	if err := s.ExamRepo.CreateSession(session); err != nil {
		return nil, err
	}

	monitoring.ExamGenerated.WithLabelValues(strconv.FormatFloat(user.Grade, 'g', -1, 64)).Inc()
	s.Log.Info("exam started",
		zap.String("exam", session.ID),
		zap.Uint("user", userID),
		zap.Float64("grade", user.Grade),
		zap.Int("questions", len(questions)))

	return s.viewForSession(session)
}

// generateQuestions 선발 → 패턴 생성 → AI 해결의 파이프라인 본체.
// AI 실패는 시험을 막지 않는다. 미해결 문제는 기본 문구로 내려간다.
func (s *ExamService) generateQuestions(ctx context.Context, pool []model.HanziCharacter) ([]*exam.QuestionSkeleton, error) {
	patterns := exam.DefaultPatterns()
	seed := time.Now().UnixNano()

	selector := exam.NewSelector(seed)
	selection, err := selector.Select(pool, patterns, exam.ExhaustPolicy(s.Cfg.Exam.ExhaustPolicy))
	if err != nil {
		return nil, err
	}

	builder := exam.NewBuilder(pool, seed)
	questions := builder.BuildAll(selection, patterns)

	if want := exam.TotalQuestions(patterns); len(questions) < want {
		monitoring.ExamQuestionShortfall.Add(float64(want - len(questions)))
		s.Log.Warn("exam generated with fewer questions than planned",
			zap.Int("want", want), zap.Int("got", len(questions)))
	}

	resolver := exam.NewResolver(s.AI, pool, s.Log)
	progress := func(done, total int) {
		s.Log.Debug("ai resolution progress", zap.Int("done", done), zap.Int("total", total))
	}
	if err := resolver.Resolve(ctx, questions, progress); err != nil {
		// 문장 생성 실패는 경고만. 해당 문제들은 미해결 상태로 출제된다
		s.Log.Warn("ai resolution failed, continuing with unresolved questions", zap.Error(err))
	}

	return questions, nil
}

// getPool 급수 한자 풀. Redis에 JSON으로 캐시한다
func (s *ExamService) getPool(ctx context.Context, grade float64) ([]model.HanziCharacter, error) {
	key := hanziPoolCacheKey(grade)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Bytes(); err == nil {
			var pool []model.HanziCharacter
			if err := json.Unmarshal(cached, &pool); err == nil {
				return pool, nil
			}
		}
	}

	pool, err := s.HanziRepo.FindByGrade(grade)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil && len(pool) > 0 {
		if raw, err := json.Marshal(pool); err == nil {
			if err := s.Redis.Set(ctx, key, raw, hanziPoolCacheTTL).Err(); err != nil {
				s.Log.Warn("pool cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return pool, nil
}

// GetExam 세션 조회. 시간이 다 된 진행 중 세션은 이 시점에 자동 제출된다
func (s *ExamService) GetExam(examID string, userID uint) (*ExamView, error) {
	session, err := s.findOwnedSession(examID, userID)
	if err != nil {
		return nil, err
	}

	if s.expired(session) {
		if _, err := s.finishSession(session, nil, true); err != nil {
			return nil, err
		}
	}

	return s.viewForSession(session)
}

// SaveAnswer 답안 임시 저장. 세션이 진행 중일 때만 받는다.
// 최종 답안은 제출 시점 페이로드가 우선하고, 이 초안은 타임아웃 채점에 쓰인다
func (s *ExamService) SaveAnswer(ctx context.Context, examID string, userID uint, questionID, value string) error {
	session, err := s.findOwnedSession(examID, userID)
	if err != nil {
		return err
	}
	if session.Status != model.ExamInProgress || s.expired(session) {
		return util.ErrExamNotInProgress
	}

	if s.Redis == nil {
		return nil
	}
	key := answerDraftKey(examID)
	if err := s.Redis.HSet(ctx, key, questionID, value).Err(); err != nil {
		return err
	}
	return s.Redis.Expire(ctx, key, answerDraftTTL).Err()
}

// SubmitExam 명시적 제출. 채점 결과를 저장하고 경험치/통계 사이드이펙트를 건다
func (s *ExamService) SubmitExam(examID string, userID uint, answers exam.AnswerRecord) (*model.ExamResult, error) {
	session, err := s.findOwnedSession(examID, userID)
	if err != nil {
		return nil, err
	}

	switch session.Status {
	case model.ExamInProgress:
	case model.ExamSubmitted, model.ExamTimedOut:
		return nil, util.ErrExamAlreadySubmitted
	default:
		return nil, util.ErrExamNotInProgress
	}

	timedOut := s.expired(session)
	return s.finishSession(session, answers, timedOut)
}

// finishSession 채점과 저장. answers가 nil이면 Redis 초안을 쓴다 (타임아웃 경로).
// 상태 전이는 exam.Session 규칙을 따르며 이미 끝난 세션은 여기서 거부된다
func (s *ExamService) finishSession(session *model.ExamSession, answers exam.AnswerRecord, timedOut bool) (*model.ExamResult, error) {
	runtime := s.runtimeSession(session)
	if timedOut {
		if !runtime.Tick() && runtime.State() != exam.StateTimedOut {
			return nil, util.ErrExamNotInProgress
		}
	} else if err := runtime.Submit(); err != nil {
		if errors.Is(err, exam.ErrSessionFinished) {
			return nil, util.ErrExamAlreadySubmitted
		}
		return nil, util.ErrExamNotInProgress
	}

	var questions []*exam.QuestionSkeleton
	if err := json.Unmarshal(session.Questions, &questions); err != nil {
		return nil, fmt.Errorf("corrupt question snapshot for exam %s: %w", session.ID, err)
	}

	if answers == nil {
		answers = s.loadDraftAnswers(session.ID)
	}

	table := exam.BuildAnswerTable(questions, s.Log)
	scorer := exam.NewScorer(s.Cfg.Exam.PassScore)
	result, err := scorer.Score(questions, table, answers)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	duration := 0
	if session.StartedAt != nil {
		duration = int(now.Sub(*session.StartedAt).Seconds())
		if limit := session.TimeLimit * 60; duration > limit {
			duration = limit
		}
	}

	record := &model.ExamResult{
		ExamID:          session.ID,
		UserID:          session.UserID,
		Grade:           session.Grade,
		Score:           result.Score,
		Passed:          result.Passed,
		CorrectCount:    result.CorrectCount,
		TotalQuestions:  result.TotalQuestions,
		UnansweredCount: result.UnansweredCount,
		DurationSeconds: duration,
		IsTimeout:       timedOut,
	}
	for _, w := range result.WrongAnswers {
		record.WrongAnswers = append(record.WrongAnswers, model.WrongAnswer{
			QuestionNumber: w.QuestionNumber,
			QuestionID:     w.QuestionID,
			Pattern:        string(w.Pattern),
			Character:      w.Character,
			QuestionText:   w.QuestionText,
			Options:        exam.MarshalOptions(w.Options),
			UserAnswer:     w.UserAnswer,
			CorrectAnswer:  w.CorrectAnswer,
		})
	}

	if err := s.ExamRepo.CreateResult(record); err != nil {
		return nil, err
	}

	session.Status = model.ExamStatus(runtime.State())
	session.SubmittedAt = &now
	session.Score = &result.Score
	session.Passed = &result.Passed
	if err := s.ExamRepo.UpdateSession(session); err != nil {
		return nil, err
	}

	s.clearDraftAnswers(session.ID)

	// 경험치/통계/로그는 응답을 막지 않는 사이드이펙트
	go s.applySideEffects(session, questions, answers, result)

	s.Log.Info("exam finished",
		zap.String("exam", session.ID),
		zap.Uint("user", session.UserID),
		zap.Int("score", result.Score),
		zap.Bool("passed", result.Passed),
		zap.Bool("timeout", timedOut))

	return record, nil
}

// applySideEffects 채점 뒤 따라붙는 부수 작업. 실패해도 채점 결과에는 영향이 없다
func (s *ExamService) applySideEffects(session *model.ExamSession, questions []*exam.QuestionSkeleton, answers exam.AnswerRecord, result *exam.Result) {
	xp := result.CorrectCount * 2
	if result.Passed {
		xp += 20
	}
	if err := s.UserSvc.AddXP(session.UserID, xp); err != nil {
		s.Log.Warn("xp update failed", zap.Uint("user", session.UserID), zap.Error(err))
	}

	// 문제별 정오를 한자 단위 통계로 반영한다
	wrongByID := make(map[string]bool, len(result.WrongAnswers))
	for _, w := range result.WrongAnswers {
		wrongByID[w.QuestionID] = true
	}
	charToID := s.characterIDMap(session.Grade)
	for _, q := range questions {
		hanziID, ok := charToID[q.Character]
		if !ok {
			continue
		}
		if err := s.StatRepo.RecordAnswer(session.UserID, hanziID, !wrongByID[q.ID]); err != nil {
			s.Log.Warn("study stat update failed", zap.Uint("user", session.UserID), zap.Error(err))
		}
	}

	duration := 0
	if session.StartedAt != nil && session.SubmittedAt != nil {
		duration = int(session.SubmittedAt.Sub(*session.StartedAt).Seconds())
	}
	if err := s.LogRepo.Create(&model.LearningLog{
		UserID:   session.UserID,
		Activity: "exam_score",
		Content:  fmt.Sprintf("%g급 시험 응시 (시험ID: %s)", session.Grade, session.ID),
		Duration: duration,
		Score:    result.Score,
	}); err != nil {
		s.Log.Warn("learning log write failed", zap.Uint("user", session.UserID), zap.Error(err))
	}
}

func (s *ExamService) characterIDMap(grade float64) map[string]uint {
	out := make(map[string]uint)
	pool, err := s.getPool(context.Background(), grade)
	if err != nil {
		return out
	}
	for _, h := range pool {
		out[h.Character] = h.ID
	}
	return out
}

// GetResult 채점 결과 조회 (오답 노트 포함)
func (s *ExamService) GetResult(examID string, userID uint) (*model.ExamResult, error) {
	result, err := s.ExamRepo.FindResultByExamID(examID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}
	if result.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return result, nil
}

func (s *ExamService) ListResults(userID uint, page, limit int) ([]model.ExamResult, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.ExamRepo.ListResultsByUser(userID, page, limit)
}

func (s *ExamService) ListWrongAnswers(userID uint, limit int) ([]model.WrongAnswer, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.ExamRepo.ListWrongAnswersByUser(userID, limit)
}

// PassRateByGrade 관리자 대시보드 집계
func (s *ExamService) PassRateByGrade() ([]repository.GradePassRate, error) {
	return s.ExamRepo.PassRateByGrade()
}

// SweepExpired 시간 초과 세션을 찾아 자동 제출한다. 백그라운드 작업에서 주기 호출
func (s *ExamService) SweepExpired() {
	sessions, err := s.ExamRepo.FindExpiredSessions(time.Now())
	if err != nil {
		s.Log.Warn("expired session sweep failed", zap.Error(err))
		return
	}
	for i := range sessions {
		session := sessions[i]
		if _, err := s.finishSession(&session, nil, true); err != nil {
			s.Log.Warn("auto submit failed", zap.String("exam", session.ID), zap.Error(err))
		}
	}
	if len(sessions) > 0 {
		s.Log.Info("expired sessions auto-submitted", zap.Int("count", len(sessions)))
	}
}

func (s *ExamService) findOwnedSession(examID string, userID uint) (*model.ExamSession, error) {
	session, err := s.ExamRepo.FindSessionByID(examID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return session, nil
}

// runtimeSession 저장된 레코드를 exam.Session 상태 기계로 복원한다.
// 만료 판정, 남은 시간, 상태 전이는 전부 이 객체를 거친다
func (s *ExamService) runtimeSession(session *model.ExamSession) *exam.Session {
	state := exam.SessionState(session.Status)
	var start time.Time
	if session.StartedAt != nil {
		start = *session.StartedAt
	} else if state == exam.StateInProgress {
		// 시작 시각 없는 진행 중 세션은 만료로 오판하지 않게 미시작으로 본다
		state = exam.StateNotStarted
	}
	return exam.RestoreSession(session.ID, session.Grade, state, start, session.TimeLimit*60, nil)
}

func (s *ExamService) expired(session *model.ExamSession) bool {
	return s.runtimeSession(session).Tick()
}

func (s *ExamService) remainingSeconds(session *model.ExamSession) int {
	runtime := s.runtimeSession(session)
	runtime.Tick()
	return runtime.RemainingSeconds()
}

func (s *ExamService) loadDraftAnswers(examID string) exam.AnswerRecord {
	answers := make(exam.AnswerRecord)
	if s.Redis == nil {
		return answers
	}
	drafts, err := s.Redis.HGetAll(context.Background(), answerDraftKey(examID)).Result()
	if err != nil {
		return answers
	}
	for k, v := range drafts {
		answers[k] = v
	}
	return answers
}

func (s *ExamService) clearDraftAnswers(examID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), answerDraftKey(examID)).Err(); err != nil {
		s.Log.Warn("draft answer cleanup failed", zap.String("exam", examID), zap.Error(err))
	}
}

// unresolvedQuestionText AI 지문 생성에 실패한 문제의 표시 폴백
const unresolvedQuestionText = "지문을 불러오지 못했습니다. 답을 아는 대로 선택하세요."

// viewForSession 정답이 제거된 응시용 뷰를 만든다. AI 지문이 끝내 채워지지
// 않은 문제는 빈 지문 대신 폴백 문구로 내려간다
func (s *ExamService) viewForSession(session *model.ExamSession) (*ExamView, error) {
	var questions []*exam.QuestionSkeleton
	if err := json.Unmarshal(session.Questions, &questions); err != nil {
		return nil, fmt.Errorf("corrupt question snapshot for exam %s: %w", session.ID, err)
	}

	view := &ExamView{
		ID:               session.ID,
		Grade:            session.Grade,
		Status:           session.Status,
		TimeLimit:        session.TimeLimit,
		RemainingSeconds: s.remainingSeconds(session),
		QuestionCount:    len(questions),
		Score:            session.Score,
		Passed:           session.Passed,
	}
	for _, q := range questions {
		text := q.QuestionText
		if text == "" && q.NeedsAI() {
			text = unresolvedQuestionText
		}
		view.Questions = append(view.Questions, StudentQuestion{
			ID:           q.ID,
			Index:        q.Index,
			Type:         string(q.Type),
			QuestionText: text,
			Options:      q.Options,
		})
	}
	return view, nil
}
