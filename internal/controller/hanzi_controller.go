package controller

import (
	"errors"
	"strconv"

	"hanja_edu_backend/internal/service"
	"hanja_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HanziController struct {
	HanziService *service.HanziService
}

func NewHanziController(hanziService *service.HanziService) *HanziController {
	return &HanziController{HanziService: hanziService}
}

// List godoc
// @Summary 한자 목록
// @Description 급수/검색어로 한자를 조회한다. 학습 화면과 관리자 화면이 같이 쓴다
// @Tags 한자
// @Produce json
// @Param grade query number false "급수 (생략하면 전체)"
// @Param page query int false "페이지"
// @Param limit query int false "페이지 크기"
// @Param keyword query string false "자형/훈/음 검색"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/hanzi [get]
func (c *HanziController) List(ctx *gin.Context) {
	grade, _ := strconv.ParseFloat(ctx.DefaultQuery("grade", "0"), 64)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	keyword := ctx.Query("keyword")

	list, total, err := c.HanziService.List(grade, page, limit, keyword)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary 한자 상세
// @Tags 한자
// @Produce json
// @Param id path int true "한자 ID"
// @Success 200 {object} util.Response{data=model.HanziCharacter}
// @Failure 404 {object} util.Response
// @Router /api/hanzi/{id} [get]
func (c *HanziController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid hanzi id")
		return
	}

	hanzi, err := c.HanziService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrHanziNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, hanzi)
}

// Grades godoc
// @Summary 급수 목록
// @Description 한자 데이터가 존재하는 급수들 (8급 → 1급 순)
// @Tags 한자
// @Produce json
// @Success 200 {object} util.Response{data=[]number}
// @Router /api/hanzi/grades [get]
func (c *HanziController) Grades(ctx *gin.Context) {
	grades, err := c.HanziService.Grades()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, grades)
}

// Create godoc
// @Summary 한자 등록 (관리자)
// @Tags 관리자
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body service.HanziReq true "한자 정보"
// @Success 201 {object} util.Response{data=model.HanziCharacter}
// @Failure 400 {object} util.Response
// @Router /api/admin/hanzi [post]
func (c *HanziController) Create(ctx *gin.Context) {
	var req service.HanziReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	hanzi, err := c.HanziService.Create(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, hanzi)
}

// Update godoc
// @Summary 한자 수정 (관리자)
// @Description 본문과 단어 목록을 함께 교체한다
// @Tags 관리자
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "한자 ID"
// @Param body body service.HanziReq true "한자 정보"
// @Success 200 {object} util.Response{data=model.HanziCharacter}
// @Failure 404 {object} util.Response
// @Router /api/admin/hanzi/{id} [put]
func (c *HanziController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid hanzi id")
		return
	}

	var req service.HanziReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	hanzi, err := c.HanziService.Update(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrHanziNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, hanzi)
}

// Delete godoc
// @Summary 한자 삭제 (관리자)
// @Tags 관리자
// @Produce json
// @Security BearerAuth
// @Param id path int true "한자 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/hanzi/{id} [delete]
func (c *HanziController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid hanzi id")
		return
	}

	if err := c.HanziService.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrHanziNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// UploadStrokeVideo godoc
// @Summary 획순 영상 업로드 (관리자)
// @Description 영상을 검증해 저장소에 올리고 썸네일을 추출한다
// @Tags 관리자
// @Accept  multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "한자 ID"
// @Param video formData file true "획순 영상"
// @Success 200 {object} util.Response{data=model.HanziCharacter}
// @Failure 400 {object} util.Response "영상 형식 오류"
// @Router /api/admin/hanzi/{id}/stroke-video [post]
func (c *HanziController) UploadStrokeVideo(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid hanzi id")
		return
	}

	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	hanzi, err := c.HanziService.UploadStrokeVideo(ctx.Request.Context(), uint(id), file)
	if err != nil {
		if errors.Is(err, util.ErrHanziNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, hanzi)
}
