package util

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var videoExts = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
}

func IsImageFile(filename string) bool {
	return imageExts[strings.ToLower(filepath.Ext(filename))]
}

func IsVideoFile(filename string) bool {
	return videoExts[strings.ToLower(filepath.Ext(filename))]
}

// RandomFilename 원본 확장자를 유지한 채 충돌 없는 파일명을 만든다
func RandomFilename(original string) string {
	return uuid.New().String() + strings.ToLower(filepath.Ext(original))
}
