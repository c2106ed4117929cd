package controller

import (
	"errors"
	"strconv"

	"hanja_edu_backend/internal/service"
	"hanja_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// UpdateProfile godoc
// @Summary 프로필 수정
// @Tags 사용자
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ProfileUpdateReq true "수정 정보"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/me/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProfileUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// StudySummary godoc
// @Summary 학습 대시보드 요약
// @Description 경험치, 학습 한자 수, 취약 한자, 최근 활동을 모아 돌려준다
// @Tags 사용자
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.StudySummary}
// @Router /api/me/summary [get]
func (c *UserController) StudySummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.UserService.GetStudySummary(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// Leaderboard godoc
// @Summary 경험치 순위
// @Tags 사용자
// @Produce json
// @Param limit query int false "인원 수 (기본 10)"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/leaderboard [get]
func (c *UserController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	users, err := c.UserService.Leaderboard(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

type GradeUpdateRequest struct {
	Grade float64 `json:"grade" binding:"required"`
}

// SetGrade godoc
// @Summary 학습 급수 변경
// @Description 시험 합격 후 다음 급수로 이동할 때 호출한다
// @Tags 사용자
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body GradeUpdateRequest true "목표 급수"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/me/grade [put]
func (c *UserController) SetGrade(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GradeUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetGrade(claims.UserID, req.Grade); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, nil)
}

// ListUsers godoc
// @Summary 회원 목록 (관리자)
// @Tags 관리자
// @Produce json
// @Security BearerAuth
// @Param page query int false "페이지"
// @Param limit query int false "페이지 크기"
// @Param keyword query string false "이름/이메일 검색"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	keyword := ctx.Query("keyword")

	users, total, err := c.UserService.ListUsers(page, limit, keyword)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

type DisableRequest struct {
	Disabled bool `json:"disabled"`
}

// SetDisabled godoc
// @Summary 계정 잠금/해제 (관리자)
// @Tags 관리자
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "사용자 ID"
// @Param body body DisableRequest true "잠금 여부"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{id}/disabled [put]
func (c *UserController) SetDisabled(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	var req DisableRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetDisabled(uint(id), req.Disabled); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
