// Package main - HTTP 上传服务
// 将上传能力暴露为 HTTP 接口，供工作流引擎等宿主系统调用
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/lukemora/giteebed/core"
	"github.com/lukemora/giteebed/imgbed"
)

// handleServeCommand 处理 serve 命令
func handleServeCommand(cliCtx *cli.Context) error {
	config, err := loadUploadConfig(cliCtx)
	if err != nil {
		return err
	}
	if addr := cliCtx.String("addr"); addr != "" {
		config.Server.Addr = addr
	}

	uploader, err := imgbed.NewUploader(config)
	if err != nil {
		return cli.Exit(fmt.Sprintf("❌ %v", err), 1)
	}

	// 启动前校验默认仓库，配置错误时快速失败而不是等到首次上传
	if gitee, ok := uploader.GetPlatform().(*imgbed.GiteePlatform); ok {
		if err := gitee.CheckRepo(context.Background()); err != nil {
			return cli.Exit(fmt.Sprintf("❌ %v", err), 1)
		}
	}

	router := newRouter(config, uploader)
	fmt.Printf("🚀 上传服务已启动: %s (仓库: %s)\n", config.Server.Addr, config.Gitee.Repo)
	return router.Run(config.Server.Addr)
}

// newRouter 构建 HTTP 路由
// 额外的 ClientOption 透传给按请求覆盖仓库时新建的上传器
func newRouter(config *core.Config, uploader *imgbed.Uploader, opts ...core.ClientOption) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))
	router.MaxMultipartMemory = config.Server.MaxUploadMB << 20

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/upload", uploadHandler(config, uploader, opts...))
	}

	return router
}

// uploadHandler 接收 multipart 图片并上传到 Gitee 仓库
// 表单字段 repo 可按请求覆盖目标仓库
func uploadHandler(config *core.Config, uploader *imgbed.Uploader, opts ...core.ClientOption) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("缺少上传文件: %v", err)})
			return
		}

		target := uploader
		if repo := c.PostForm("repo"); repo != "" && repo != config.Gitee.Repo {
			override := *config
			override.Gitee.Repo = repo
			target, err = imgbed.NewUploader(&override, opts...)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("目标仓库无效: %v", err)})
				return
			}
		}
		if file.Size > config.Server.MaxUploadMB<<20 {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("文件超过大小限制 (%dMB)", config.Server.MaxUploadMB),
			})
			return
		}

		// 落盘为临时文件后走统一的本地上传入口
		tmpDir, err := os.MkdirTemp("", "giteebed-*")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("创建临时目录失败: %v", err)})
			return
		}
		defer os.RemoveAll(tmpDir)

		localPath := filepath.Join(tmpDir, filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, localPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("保存上传文件失败: %v", err)})
			return
		}

		url, err := target.UploadFromLocal(c.Request.Context(), localPath)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"image_url": url})
	}
}

// statusForError 将上传错误类别映射为 HTTP 状态码
func statusForError(err error) int {
	switch {
	case errors.Is(err, core.ErrLocalFile):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrRepository):
		return http.StatusNotFound
	case errors.Is(err, core.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, core.ErrNetwork), errors.Is(err, core.ErrRemoteServer):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
