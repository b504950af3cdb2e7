// Package imgbed - 图片上传核心逻辑
package imgbed

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/lukemora/giteebed/core"
	"github.com/lukemora/giteebed/utils"
	"github.com/pkg/errors"
)

// 仓库 contents API 按提交逐个写入，批量并发保持较低
const batchConcurrency = 4

// Uploader 图片上传器
type Uploader struct {
	config   *core.Config
	platform Platform
	now      func() time.Time // 可注入时钟，用于测试日期目录
}

// NewUploader 创建图片上传器
// 额外的 ClientOption 用于测试时替换 API 地址
func NewUploader(cfg *core.Config, opts ...core.ClientOption) (*Uploader, error) {
	// 验证必需配置
	if cfg.Gitee.AccessToken == "" {
		return nil, fmt.Errorf("未配置 Gitee 访问令牌")
	}
	if cfg.Gitee.Repo == "" {
		return nil, fmt.Errorf("未配置目标仓库")
	}

	platform, err := NewGiteePlatform(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("创建图床平台失败: %w", err)
	}

	return &Uploader{
		config:   cfg,
		platform: platform,
		now:      time.Now,
	}, nil
}

// GetPlatform 获取图床平台实例
func (u *Uploader) GetPlatform() Platform {
	return u.platform
}

// RemotePath 计算文件在仓库内的目标路径
// 目录按 UTC 年/月/日分层，文件名追加时间戳以降低重名冲突
func (u *Uploader) RemotePath(filename string) string {
	t := u.now().UTC()
	name := utils.TimestampedFilename(utils.SanitizeFileName(filename), t)
	return path.Join(
		u.config.Gitee.RemoteDir,
		fmt.Sprintf("%d/%02d/%02d", t.Year(), int(t.Month()), t.Day()),
		name,
	)
}

// UploadFromLocal 从本地文件上传到图床
// localPath: 本地文件路径
// 返回图床URL和错误；本地文件不可读时不会发起任何网络请求
func (u *Uploader) UploadFromLocal(ctx context.Context, localPath string) (string, error) {
	// 读取本地文件
	buffer, err := os.ReadFile(localPath)
	if err != nil {
		return "", errors.Wrapf(core.ErrLocalFile, "读取本地文件 %s 失败: %v", localPath, err)
	}
	if len(buffer) == 0 {
		return "", errors.Wrapf(core.ErrLocalFile, "本地文件 %s 为空", localPath)
	}

	remotePath := u.RemotePath(filepath.Base(localPath))

	// 上传到图床
	url, err := u.platform.Upload(ctx, buffer, remotePath)
	if err != nil {
		return "", fmt.Errorf("上传到%s失败: %w", u.platform.GetName(), err)
	}

	return url, nil
}

// BatchUploadFromLocal 批量上传本地文件到图床（并发）
// 返回与输入顺序一致的结果列表，单张失败不影响其余文件
func (u *Uploader) BatchUploadFromLocal(ctx context.Context, localPaths []string) []UploadResult {
	results := make([]UploadResult, len(localPaths))
	if len(localPaths) == 0 {
		return results
	}

	type job struct {
		index int
		path  string
	}

	jobs := make(chan job, len(localPaths))
	var wg sync.WaitGroup

	// 启动worker池，每个下标只由一个worker写入
	for i := 0; i < batchConcurrency; i++ {
		go func() {
			for j := range jobs {
				url, err := u.UploadFromLocal(ctx, j.path)
				results[j.index] = UploadResult{
					LocalPath: j.path,
					URL:       url,
					Error:     err,
				}
				wg.Done()
			}
		}()
	}

	// 发送任务
	wg.Add(len(localPaths))
	for i, p := range localPaths {
		jobs <- job{index: i, path: p}
	}
	close(jobs)

	wg.Wait()
	return results
}
