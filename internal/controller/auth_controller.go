package controller

import (
	"errors"
	"net/http"

	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/service"
	"hanja_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// RegisterRequest 회원 가입 요청
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register godoc
// @Summary 회원 가입
// @Description 학생 계정을 생성한다. 신규 계정은 8급부터 시작한다
// @Tags 인증
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "가입 정보"
// @Success 201 {object} util.Response{data=object} "생성 완료"
// @Failure 400 {object} util.Response "요청 형식 오류"
// @Failure 409 {object} util.Response "이미 등록된 이메일"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Student,
	}

	if err := c.AuthService.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, http.StatusConflict, "이미 등록된 이메일입니다")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 로그인
// @Description 이메일/비밀번호로 로그인하고 JWT를 발급받는다
// @Tags 인증
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "로그인 정보"
// @Success 200 {object} util.Response{data=object} "토큰과 사용자 정보"
// @Failure 401 {object} util.Response "인증 실패"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.Error(ctx, http.StatusUnauthorized, "이메일 또는 비밀번호가 올바르지 않습니다")
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me godoc
// @Summary 내 정보
// @Tags 인증
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangePassword godoc
// @Summary 비밀번호 변경
// @Tags 인증
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ChangePasswordRequest true "변경 정보"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/me/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.ChangePassword(claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		util.Error(ctx, http.StatusUnauthorized, "비밀번호가 올바르지 않습니다")
		return
	}
	util.Success(ctx, nil)
}
