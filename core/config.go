// Package core 为 giteebed 提供核心配置和 Gitee API 客户端功能
// 此文件处理配置管理，包括从环境变量和CLI参数加载配置
package core

import (
	"os"
	"strconv"
)

// Config 表示 giteebed 应用程序的完整配置
type Config struct {
	Gitee  GiteeConfig  // Gitee 凭据与目标仓库配置
	Upload UploadConfig // 上传行为配置
	Server ServerConfig // HTTP 服务配置
}

// GiteeConfig 包含 Gitee API 凭据与目标仓库
type GiteeConfig struct {
	AccessToken string // 个人访问令牌
	Repo        string // 仓库引用，如 gitee.com/username/images
	Branch      string // 目标分支
	RemoteDir   string // 仓库内的上传目录前缀
}

// UploadConfig 包含上传行为设置
type UploadConfig struct {
	Overwrite       bool // 目标路径已存在时基于SHA覆盖更新
	Markdown        bool // 以 Markdown 图片链接形式输出结果
	ContinueOnError bool // 批量上传时单张失败不中断后续上传
}

// ServerConfig 包含 serve 命令的 HTTP 服务设置
type ServerConfig struct {
	Addr        string // 监听地址
	MaxUploadMB int64  // 单次上传大小上限（MB）
}

// NewConfig 使用提供的令牌和仓库创建带默认值的新配置
func NewConfig(token, repo string) *Config {
	return &Config{
		Gitee: GiteeConfig{
			AccessToken: token,
			Repo:        repo,
			Branch:      "master", // Gitee 仓库默认分支
			RemoteDir:   "images", // 默认上传目录
		},
		Server: ServerConfig{
			Addr:        ":8080",
			MaxUploadMB: 10,
		},
	}
}

// LoadConfig 加载配置，优先级：CLI参数 > 环境变量 > 默认值
// 此函数实现一个级联配置系统，每个源可以覆盖前一个源的设置
func LoadConfig(token, repo string) (*Config, error) {
	// 从默认配置开始
	config := NewConfig("", "")

	// 使用环境变量覆盖默认值
	if envToken := os.Getenv("GITEE_ACCESS_TOKEN"); envToken != "" {
		config.Gitee.AccessToken = envToken
	}
	if envRepo := os.Getenv("GITEE_REPO"); envRepo != "" {
		config.Gitee.Repo = envRepo
	}
	if envBranch := os.Getenv("GITEE_BRANCH"); envBranch != "" {
		config.Gitee.Branch = envBranch
	}
	if envDir := os.Getenv("GITEE_REMOTE_DIR"); envDir != "" {
		config.Gitee.RemoteDir = envDir
	}

	// 使用CLI参数覆盖（最高优先级）
	if token != "" {
		config.Gitee.AccessToken = token
	}
	if repo != "" {
		config.Gitee.Repo = repo
	}

	// 加载 HTTP 服务配置（从环境变量）
	loadServerConfig(config)

	return config, nil
}

// loadServerConfig 从环境变量加载 HTTP 服务配置
func loadServerConfig(config *Config) {
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		config.Server.Addr = addr
	}
	if maxMB := os.Getenv("SERVER_MAX_UPLOAD_MB"); maxMB != "" {
		if v, err := strconv.ParseInt(maxMB, 10, 64); err == nil && v > 0 {
			config.Server.MaxUploadMB = v
		}
	}
}
