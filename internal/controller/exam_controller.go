package controller

import (
	"errors"
	"net/http"
	"strconv"

	"hanja_edu_backend/internal/exam"
	"hanja_edu_backend/internal/service"
	"hanja_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// Start godoc
// @Summary 시험 시작
// @Description 현재 급수로 새 시험을 생성한다. 진행 중 시험이 있으면 그 시험을 돌려준다
// @Tags 시험
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ExamView}
// @Failure 404 {object} util.Response "해당 급수에 한자 데이터 없음"
// @Router /api/exams [post]
func (c *ExamController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.ExamService.StartExam(ctx.Request.Context(), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyHanziPool), errors.Is(err, exam.ErrPoolEmpty):
			util.Error(ctx, http.StatusNotFound, "해당 급수의 한자 데이터가 없습니다")
		case errors.Is(err, exam.ErrPoolExhausted):
			util.Error(ctx, http.StatusConflict, "해당 급수의 한자 수가 출제 기준에 미달합니다")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// Get godoc
// @Summary 시험 조회
// @Description 문제와 남은 시간을 돌려준다. 시간이 다 된 시험은 이 시점에 자동 제출된다
// @Tags 시험
// @Produce json
// @Security BearerAuth
// @Param id path string true "시험 ID"
// @Success 200 {object} util.Response{data=service.ExamView}
// @Failure 404 {object} util.Response
// @Router /api/exams/{id} [get]
func (c *ExamController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.ExamService.GetExam(ctx.Param("id"), claims.UserID)
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

type SaveAnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Value      string `json:"value"`
}

// SaveAnswer godoc
// @Summary 답안 임시 저장
// @Description 진행 중 시험의 문항 답안을 저장한다. 타임아웃 자동 채점에 쓰인다
// @Tags 시험
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "시험 ID"
// @Param body body SaveAnswerRequest true "문항 답안"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "진행 중 시험이 아님"
// @Router /api/exams/{id}/answers [put]
func (c *ExamController) SaveAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SaveAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ExamService.SaveAnswer(ctx.Request.Context(), ctx.Param("id"), claims.UserID, req.QuestionID, req.Value); err != nil {
		c.writeExamError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type SubmitRequest struct {
	Answers map[string]string `json:"answers"`
}

// Submit godoc
// @Summary 시험 제출
// @Description 답안 전체를 제출하고 채점 결과를 받는다
// @Tags 시험
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "시험 ID"
// @Param body body SubmitRequest true "답안 (문항 ID → 답)"
// @Success 200 {object} util.Response{data=model.ExamResult}
// @Failure 409 {object} util.Response "이미 제출된 시험"
// @Router /api/exams/{id}/submit [post]
func (c *ExamController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExamService.SubmitExam(ctx.Param("id"), claims.UserID, exam.AnswerRecord(req.Answers))
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Result godoc
// @Summary 채점 결과 조회
// @Description 점수와 오답 노트를 돌려준다
// @Tags 시험
// @Produce json
// @Security BearerAuth
// @Param id path string true "시험 ID"
// @Success 200 {object} util.Response{data=model.ExamResult}
// @Failure 404 {object} util.Response
// @Router /api/exams/{id}/result [get]
func (c *ExamController) Result(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.ExamService.GetResult(ctx.Param("id"), claims.UserID)
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// History godoc
// @Summary 시험 이력
// @Tags 시험
// @Produce json
// @Security BearerAuth
// @Param page query int false "페이지"
// @Param limit query int false "페이지 크기"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/exams [get]
func (c *ExamController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	results, total, err := c.ExamService.ListResults(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: results, Total: total, Page: page, Limit: limit})
}

// WrongAnswers godoc
// @Summary 오답 노트
// @Description 최근 시험들의 오답을 모아 돌려준다
// @Tags 시험
// @Produce json
// @Security BearerAuth
// @Param limit query int false "최대 건수 (기본 50)"
// @Success 200 {object} util.Response{data=[]model.WrongAnswer}
// @Router /api/exams/wrong-answers [get]
func (c *ExamController) WrongAnswers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	wrongs, err := c.ExamService.ListWrongAnswers(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, wrongs)
}

// PassRate godoc
// @Summary 급수별 합격률 (관리자)
// @Tags 관리자
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]repository.GradePassRate}
// @Router /api/admin/exams/pass-rate [get]
func (c *ExamController) PassRate(ctx *gin.Context) {
	rows, err := c.ExamService.PassRateByGrade()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

func (c *ExamController) writeExamError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrExamNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrExamAlreadySubmitted), errors.Is(err, util.ErrExamNotInProgress):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, exam.ErrMalformedAnswerEntry):
		util.LogInternalError(ctx, err)
	default:
		util.LogInternalError(ctx, err)
	}
}
