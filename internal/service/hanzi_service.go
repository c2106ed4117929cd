package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/repository"
	"hanja_edu_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HanziService struct {
	Repo    *repository.HanziRepository
	Storage *StorageService
	Redis   *redis.Client
	Log     *zap.Logger
}

func NewHanziService(repo *repository.HanziRepository, storage *StorageService, rdb *redis.Client, log *zap.Logger) *HanziService {
	return &HanziService{Repo: repo, Storage: storage, Redis: rdb, Log: log}
}

type RelatedWordReq struct {
	Hanzi      string `json:"hanzi" binding:"required"`
	Korean     string `json:"korean" binding:"required"`
	IsTextBook bool   `json:"isTextBook"`
}

type HanziReq struct {
	Character   string           `json:"character" binding:"required"`
	Meaning     string           `json:"meaning" binding:"required"`
	Sound       string           `json:"sound" binding:"required"`
	Grade       float64          `json:"grade" binding:"required"`
	GradeNumber int              `json:"gradeNumber"`
	Strokes     int              `json:"strokes"`
	Words       []RelatedWordReq `json:"words"`
}

func (s *HanziService) Create(req HanziReq) (*model.HanziCharacter, error) {
	hanzi := &model.HanziCharacter{
		Character:   req.Character,
		Meaning:     req.Meaning,
		Sound:       req.Sound,
		Grade:       req.Grade,
		GradeNumber: req.GradeNumber,
		Strokes:     req.Strokes,
	}
	for _, w := range req.Words {
		hanzi.RelatedWords = append(hanzi.RelatedWords, model.RelatedWord{
			Hanzi:      w.Hanzi,
			Korean:     w.Korean,
			IsTextBook: w.IsTextBook,
		})
	}

	if err := s.Repo.Create(hanzi); err != nil {
		return nil, err
	}
	s.invalidatePoolCache(req.Grade)
	return hanzi, nil
}

func (s *HanziService) Get(id uint) (*model.HanziCharacter, error) {
	hanzi, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrHanziNotFound
	}
	return hanzi, err
}

func (s *HanziService) List(grade float64, page, limit int, keyword string) ([]model.HanziCharacter, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(grade, page, limit, keyword)
}

func (s *HanziService) Update(id uint, req HanziReq) (*model.HanziCharacter, error) {
	hanzi, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, util.ErrHanziNotFound
	}

	oldGrade := hanzi.Grade
	hanzi.Character = req.Character
	hanzi.Meaning = req.Meaning
	hanzi.Sound = req.Sound
	hanzi.Grade = req.Grade
	hanzi.GradeNumber = req.GradeNumber
	hanzi.Strokes = req.Strokes
	hanzi.RelatedWords = nil

	if err := s.Repo.Update(hanzi); err != nil {
		return nil, err
	}

	words := make([]model.RelatedWord, 0, len(req.Words))
	for _, w := range req.Words {
		words = append(words, model.RelatedWord{
			Hanzi:      w.Hanzi,
			Korean:     w.Korean,
			IsTextBook: w.IsTextBook,
		})
	}
	if err := s.Repo.ReplaceWords(hanzi.ID, words); err != nil {
		return nil, err
	}

	s.invalidatePoolCache(oldGrade)
	s.invalidatePoolCache(req.Grade)
	return s.Repo.FindByID(id)
}

func (s *HanziService) Delete(id uint) error {
	hanzi, err := s.Repo.FindByID(id)
	if err != nil {
		return util.ErrHanziNotFound
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidatePoolCache(hanzi.Grade)
	return nil
}

func (s *HanziService) Grades() ([]float64, error) {
	return s.Repo.Grades()
}

// UploadStrokeVideo 획순 영상 업로드. 영상으로 검증이 되면 저장소에 올리고
// 첫 프레임 근처에서 썸네일을 뽑아 함께 저장한다.
func (s *HanziService) UploadStrokeVideo(ctx context.Context, id uint, file *multipart.FileHeader) (*model.HanziCharacter, error) {
	hanzi, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, util.ErrHanziNotFound
	}
	if !util.IsVideoFile(file.Filename) {
		return nil, errors.New("unsupported video format")
	}

	// ffmpeg probe를 위해 임시 파일로 받는다
	tmpDir := os.TempDir()
	tmpVideo := filepath.Join(tmpDir, util.RandomFilename(file.Filename))
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	out, err := os.Create(tmpVideo)
	if err != nil {
		return nil, err
	}
	if _, err := out.ReadFrom(src); err != nil {
		out.Close()
		os.Remove(tmpVideo)
		return nil, err
	}
	out.Close()
	defer os.Remove(tmpVideo)

	info, err := util.GetVideoInfo(tmpVideo)
	if err != nil {
		return nil, err
	}

	tmpThumb := tmpVideo + ".jpg"
	thumbAt := info.Duration * 0.1
	if err := util.ExtractThumbnail(tmpVideo, tmpThumb, thumbAt); err != nil {
		s.Log.Warn("thumbnail extraction failed", zap.Uint("hanzi", id), zap.Error(err))
		tmpThumb = ""
	} else {
		defer os.Remove(tmpThumb)
	}

	videoName := fmt.Sprintf("strokes/%d/%s", id, util.RandomFilename(file.Filename))
	videoURL, err := s.Storage.UploadFile(ctx, videoName, tmpVideo, "video/mp4")
	if err != nil {
		return nil, err
	}

	thumbURL := ""
	if tmpThumb != "" {
		thumbName := videoName + ".jpg"
		if u, err := s.Storage.UploadFile(ctx, thumbName, tmpThumb, "image/jpeg"); err == nil {
			thumbURL = u
		}
	}

	if err := s.Repo.UpdateStrokeMedia(id, videoURL, thumbURL); err != nil {
		return nil, err
	}

	s.Log.Info("stroke video uploaded",
		zap.Uint("hanzi", id),
		zap.String("character", hanzi.Character),
		zap.Float64("duration", info.Duration))

	return s.Repo.FindByID(id)
}

// invalidatePoolCache 급수 풀 캐시 무효화. 한자 데이터가 바뀌면
// 다음 시험 생성이 DB에서 새로 읽게 한다
func (s *HanziService) invalidatePoolCache(grade float64) {
	if s.Redis == nil {
		return
	}
	key := hanziPoolCacheKey(grade)
	if err := s.Redis.Del(context.Background(), key).Err(); err != nil {
		s.Log.Warn("pool cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
