package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GenerateStoredName 为上传附件生成不透明存储名，保留原扩展名方便静态下载时识别类型
func GenerateStoredName(originalName string) string {
	ext := filepath.Ext(originalName)
	return strings.Replace(uuid.New().String(), "-", "", -1) + ext
}
