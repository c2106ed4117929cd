package controller

import (
	"errors"
	"strconv"

	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/service"
	"hanja_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WritingController struct {
	WritingService *service.WritingService
}

func NewWritingController(writingService *service.WritingService) *WritingController {
	return &WritingController{WritingService: writingService}
}

// Submit godoc
// @Summary 쓰기 연습 제출
// @Description 손글씨 이미지를 올려 첨삭 대기열에 넣는다
// @Tags 쓰기
// @Accept  multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param hanziId formData int true "한자 ID"
// @Param image formData file true "손글씨 이미지"
// @Success 201 {object} util.Response{data=model.WritingSubmission}
// @Failure 400 {object} util.Response
// @Router /api/writing [post]
func (c *WritingController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	hanziID, err := strconv.ParseUint(ctx.PostForm("hanziId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid hanzi id")
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		util.BadRequest(ctx, "image file is required")
		return
	}

	submission, err := c.WritingService.Submit(ctx.Request.Context(), claims.UserID, uint(hanziID), file)
	if err != nil {
		if errors.Is(err, util.ErrHanziNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, submission)
}

// ListMine godoc
// @Summary 내 쓰기 연습 목록
// @Tags 쓰기
// @Produce json
// @Security BearerAuth
// @Param page query int false "페이지"
// @Param limit query int false "페이지 크기"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/writing [get]
func (c *WritingController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	list, total, err := c.WritingService.ListMine(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary 쓰기 연습 상세
// @Tags 쓰기
// @Produce json
// @Security BearerAuth
// @Param id path int true "제출 ID"
// @Success 200 {object} util.Response{data=model.WritingSubmission}
// @Failure 404 {object} util.Response
// @Router /api/writing/{id} [get]
func (c *WritingController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid submission id")
		return
	}

	submission, err := c.WritingService.Get(uint(id), claims.UserID, claims.Role == model.Admin)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, submission)
}

// ListPending godoc
// @Summary 첨삭 대기 목록 (관리자)
// @Tags 관리자
// @Produce json
// @Security BearerAuth
// @Param page query int false "페이지"
// @Param limit query int false "페이지 크기"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/writing/pending [get]
func (c *WritingController) ListPending(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	list, total, err := c.WritingService.ListPending(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

type ReviewRequest struct {
	Grade   int    `json:"grade" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Review godoc
// @Summary 쓰기 첨삭 (관리자)
// @Description 등급(1~5)과 코멘트로 첨삭한다. 3등급 이상이면 경험치가 적립된다
// @Tags 관리자
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "제출 ID"
// @Param body body ReviewRequest true "첨삭 내용"
// @Success 200 {object} util.Response{data=model.WritingSubmission}
// @Failure 404 {object} util.Response
// @Router /api/admin/writing/{id}/review [put]
func (c *WritingController) Review(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid submission id")
		return
	}

	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.WritingService.Review(uint(id), claims.UserID, req.Grade, req.Comment)
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, submission)
}
