// Package imgbed 提供图床上传功能
// 以 Gitee 仓库作为图床存储，上传后返回可公开访问的 raw URL
package imgbed

import "context"

// Platform 图床平台接口
type Platform interface {
	// Upload 上传图片到图床
	// buffer: 图片二进制数据
	// remotePath: 仓库内目标路径
	// 返回图床URL和错误
	Upload(ctx context.Context, buffer []byte, remotePath string) (string, error)

	// GetName 获取平台名称
	GetName() string

	// BuildURL 根据远端路径构建图床URL（不检查是否存在）
	BuildURL(remotePath string) string

	// CheckExists 检查文件是否已存在于图床
	// 返回 true 表示存在，并返回完整URL
	CheckExists(ctx context.Context, remotePath string) (bool, string)
}

// UploadResult 上传结果
type UploadResult struct {
	LocalPath string // 本地路径
	URL       string // 图床URL
	Error     error  // 错误信息
}
