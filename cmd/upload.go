// Package main - 图片上传命令处理
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/lukemora/giteebed/core"
	"github.com/lukemora/giteebed/imgbed"
)

// maxImagesPerRun 单次命令最多上传的图片数量
const maxImagesPerRun = 8

// handleUploadCommand 处理 upload 命令
// 依次上传命令行给出的图片，默认首个失败即中止后续上传
func handleUploadCommand(cliCtx *cli.Context, paths []string) error {
	if len(paths) > maxImagesPerRun {
		return cli.Exit(fmt.Sprintf("错误: 单次最多上传 %d 张图片，收到 %d 张",
			maxImagesPerRun, len(paths)), 1)
	}

	config, err := loadUploadConfig(cliCtx)
	if err != nil {
		return err
	}

	uploader, err := imgbed.NewUploader(config)
	if err != nil {
		return cli.Exit(fmt.Sprintf("❌ %v", err), 1)
	}

	ctx := context.Background()
	results := make([]imgbed.UploadResult, 0, len(paths))
	var failed bool

	for _, p := range paths {
		url, err := uploader.UploadFromLocal(ctx, p)
		results = append(results, imgbed.UploadResult{LocalPath: p, URL: url, Error: err})
		if err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "❌ 上传失败 %s: %v\n", p, err)
			if !config.Upload.ContinueOnError {
				break
			}
			continue
		}
		fmt.Printf("✅ %s\n", p)
	}

	printResultTable(results)

	if config.Upload.Markdown {
		printMarkdownLinks(results)
	}

	if failed {
		return cli.Exit("部分图片上传失败", 1)
	}
	return nil
}

// loadUploadConfig 汇总上传配置，优先级：CLI参数 > 环境变量 > 默认值
func loadUploadConfig(cliCtx *cli.Context) (*core.Config, error) {
	config, err := core.LoadConfig(cliCtx.String("token"), cliCtx.String("repo"))
	if err != nil {
		return nil, err
	}

	// 使用CLI标志覆盖配置
	if branch := cliCtx.String("branch"); branch != "" {
		config.Gitee.Branch = branch
	}
	if dir := cliCtx.String("dir"); dir != "" {
		config.Gitee.RemoteDir = dir
	}
	config.Upload.Overwrite = cliCtx.Bool("force")
	config.Upload.Markdown = cliCtx.Bool("markdown")
	config.Upload.ContinueOnError = cliCtx.Bool("continue-on-error")

	// 验证凭据
	if config.Gitee.AccessToken == "" {
		return nil, cli.Exit("需要 Gitee 访问令牌。请通过以下方式设置:\n"+
			"  1. 命令行: --token <token>\n"+
			"  2. 环境变量: GITEE_ACCESS_TOKEN", 1)
	}
	if config.Gitee.Repo == "" {
		return nil, cli.Exit("需要目标仓库。请通过以下方式设置:\n"+
			"  1. 命令行: --repo gitee.com/username/images\n"+
			"  2. 环境变量: GITEE_REPO", 1)
	}

	return config, nil
}

// printResultTable 以表格形式输出上传结果
func printResultTable(results []imgbed.UploadResult) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"本地文件", "状态", "URL"})
	table.SetAutoWrapText(false)

	for _, r := range results {
		status, detail := "成功", r.URL
		if r.Error != nil {
			status, detail = "失败", r.Error.Error()
		}
		table.Append([]string{r.LocalPath, status, detail})
	}

	table.Render()
}

// printMarkdownLinks 输出 Markdown 图片引用
func printMarkdownLinks(results []imgbed.UploadResult) {
	fmt.Println()
	for _, r := range results {
		if r.Error != nil {
			continue
		}
		name := filepath.Base(r.LocalPath)
		alt := strings.TrimSuffix(name, filepath.Ext(name))
		fmt.Printf("![%s](%s)\n", alt, r.URL)
	}
}
