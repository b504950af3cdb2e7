// Package imgbed - Gitee 仓库图床实现
package imgbed

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"

	"github.com/lukemora/giteebed/core"
	"github.com/lukemora/giteebed/utils"
	"github.com/pkg/errors"
)

// rawURLHost raw 文件访问的主机名
const rawURLHost = "gitee.com"

// GiteePlatform Gitee 仓库图床
type GiteePlatform struct {
	client    *core.Client
	owner     string
	repo      string
	branch    string
	overwrite bool
}

// NewGiteePlatform 创建 Gitee 图床实例
// 额外的 ClientOption 用于测试时替换 API 地址
func NewGiteePlatform(cfg *core.Config, opts ...core.ClientOption) (*GiteePlatform, error) {
	owner, repo, err := utils.ParseRepoURL(cfg.Gitee.Repo)
	if err != nil {
		return nil, err
	}

	return &GiteePlatform{
		client:    core.NewClient(cfg.Gitee.AccessToken, opts...),
		owner:     owner,
		repo:      repo,
		branch:    cfg.Gitee.Branch,
		overwrite: cfg.Upload.Overwrite,
	}, nil
}

// GetName 获取平台名称
func (p *GiteePlatform) GetName() string {
	return "Gitee图床"
}

// Upload 上传图片到 Gitee 仓库
// 默认仅新建，路径冲突直接返回错误；
// 开启覆盖模式时，冲突会改为基于现有文件 SHA 的更新提交
func (p *GiteePlatform) Upload(ctx context.Context, buffer []byte, remotePath string) (string, error) {
	req := &core.ContentRequest{
		Content: base64.StdEncoding.EncodeToString(buffer),
		Message: fmt.Sprintf("Upload image: %s", path.Base(remotePath)),
		Branch:  p.branch,
	}

	resp, err := p.client.CreateFile(ctx, p.owner, p.repo, remotePath, req)
	if err != nil && p.overwrite && errors.Is(err, core.ErrConflict) {
		resp, err = p.updateExisting(ctx, remotePath, req)
	}
	if err != nil {
		if errors.Is(err, core.ErrUploadedNoURL) {
			// 远端已写入成功，退化为确定性 raw URL
			return p.BuildURL(remotePath), nil
		}
		return "", err
	}

	// 优先使用响应中的 download_url
	if resp.Content != nil && resp.Content.DownloadURL != "" {
		return resp.Content.DownloadURL, nil
	}
	return p.BuildURL(remotePath), nil
}

// updateExisting 查询现有文件的 SHA 并提交更新
func (p *GiteePlatform) updateExisting(ctx context.Context, remotePath string, req *core.ContentRequest) (*core.ContentResponse, error) {
	existing, err := p.client.GetContents(ctx, p.owner, p.repo, remotePath, p.branch)
	if err != nil {
		return nil, errors.WithMessage(err, "查询现有文件SHA失败")
	}

	update := *req
	update.SHA = existing.SHA
	update.Message = fmt.Sprintf("Update image: %s", path.Base(remotePath))
	return p.client.UpdateFile(ctx, p.owner, p.repo, remotePath, &update)
}

// BuildURL 根据远端路径构建 raw URL（不检查是否存在）
func (p *GiteePlatform) BuildURL(remotePath string) string {
	return fmt.Sprintf("https://%s/%s/%s/raw/%s/%s",
		rawURLHost, p.owner, p.repo, p.branch, remotePath)
}

// CheckRepo 校验目标仓库是否可访问，用于服务启动时快速失败
func (p *GiteePlatform) CheckRepo(ctx context.Context) error {
	if _, err := p.client.GetRepo(ctx, p.owner, p.repo); err != nil {
		return errors.WithMessagef(err, "仓库 %s/%s 不可访问", p.owner, p.repo)
	}
	return nil
}

// CheckExists 检查文件是否已存在于仓库
func (p *GiteePlatform) CheckExists(ctx context.Context, remotePath string) (bool, string) {
	url := p.BuildURL(remotePath)

	// 查询失败（如404）视为不存在
	if _, err := p.client.GetContents(ctx, p.owner, p.repo, remotePath, p.branch); err != nil {
		return false, url
	}
	return true, url
}
