package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// SanitizeFileName 替换文件名中不安全的特殊字符
func SanitizeFileName(title string) string {
	// 特殊字符的智能替换规则
	replacements := map[string]string{
		"/":  "-", // 斜杠用连字符替换
		"\\": "-", // 反斜杠用连字符替换
		":":  "-", // 冒号用连字符替换
		"*":  "★", // 星号用星形符号替换
		"?":  "？", // 问号用中文问号替换
		"\"": "'", // 双引号用单引号替换
		"<":  "《", // 小于号用中文书名号替换
		">":  "》", // 大于号用中文书名号替换
		"|":  "-", // 竖线用连字符替换
	}

	// 应用替换规则
	for invalid, replacement := range replacements {
		title = strings.ReplaceAll(title, invalid, replacement)
	}

	// 移除首尾空白字符
	title = strings.TrimSpace(title)

	// 如果文件名为空或只包含点，使用默认名称
	if title == "" || title == "." || title == ".." {
		title = "untitled"
	}

	return title
}

// TimestampedFilename 在保留扩展名的前提下为文件名追加时间戳
// 如 cat.png -> cat_20240501_093000.png
func TimestampedFilename(filename string, t time.Time) string {
	ext := filepath.Ext(filename)
	name := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("%s_%s%s", name, t.Format("20060102_150405"), ext)
}
