package controller

import (
	"strconv"

	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/service"
	"hanja_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GameController struct {
	GameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{GameService: gameService}
}

// Record godoc
// @Summary 게임 결과 저장
// @Description 학습 게임 1판의 점수를 저장하고 경험치를 적립한다
// @Tags 게임
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body service.GameResultReq true "게임 결과"
// @Success 201 {object} util.Response{data=model.GameResult}
// @Failure 400 {object} util.Response
// @Router /api/games [post]
func (c *GameController) Record(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.GameResultReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GameService.Record(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, result)
}

// History godoc
// @Summary 게임 이력
// @Tags 게임
// @Produce json
// @Security BearerAuth
// @Param type query string false "게임 종류 (flash_card | matching | speed_quiz)"
// @Param limit query int false "최대 건수"
// @Success 200 {object} util.Response{data=[]model.GameResult}
// @Router /api/games [get]
func (c *GameController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	gameType := model.GameType(ctx.Query("type"))

	results, err := c.GameService.History(claims.UserID, gameType, limit)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, results)
}

// BestScore godoc
// @Summary 게임 최고 점수
// @Tags 게임
// @Produce json
// @Security BearerAuth
// @Param type query string true "게임 종류"
// @Success 200 {object} util.Response{data=object}
// @Router /api/games/best [get]
func (c *GameController) BestScore(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	gameType := model.GameType(ctx.Query("type"))
	best, err := c.GameService.BestScore(claims.UserID, gameType)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"best": best})
}
