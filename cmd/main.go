// Package main 为 giteebed 工具提供命令行接口
// giteebed 是一个将本地图片上传到 Gitee 仓库并返回公开访问 URL 的工具
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// version 是应用程序版本，通常在构建时设置
var version = "v1.0.0"

// main 是应用程序的入口点
// 它设置带有全局标志和命令的 CLI 应用程序
func main() {
	app := &cli.App{
		Name:    "giteebed",
		Version: strings.TrimSpace(string(version)),
		Usage:   "上传本地图片到Gitee仓库并获取公开访问URL",
		Description: "一个以 Gitee 仓库作为图床的命令行工具。\n" +
			"上传的图片按 UTC 日期自动归档到 <目录前缀>/年/月/日/ 下，\n" +
			"文件名追加时间戳以避免重名，上传成功后返回可直接引用的 raw URL。\n\n" +
			"使用示例:\n" +
			"  giteebed upload cat.png --repo gitee.com/alice/images\n" +
			"  giteebed upload a.png b.png --markdown\n" +
			"  giteebed serve --addr :8080",
		// 全局标志，适用于所有子命令
		Flags: []cli.Flag{
			// === 配置文件 ===
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "指定配置文件路径",
				Value:   ".env",
			},

			// === Gitee 配置 ===
			&cli.StringFlag{
				Name:  "token",
				Usage: "Gitee 个人访问令牌 (优先于 GITEE_ACCESS_TOKEN)",
			},
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "目标仓库，如 gitee.com/username/images",
			},
			&cli.StringFlag{
				Name:    "branch",
				Aliases: []string{"b"},
				Usage:   "目标分支",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "仓库内上传目录前缀",
			},
		},
		// 在命令执行前加载 .env 配置文件
		Before: func(ctx *cli.Context) error {
			configFile := ctx.String("config")
			if err := godotenv.Load(configFile); err != nil {
				// 默认配置文件缺失不是错误，环境变量和CLI参数仍然可用
				if configFile != ".env" {
					return cli.Exit(fmt.Sprintf("❌ 无法加载配置文件 %s: %v", configFile, err), 1)
				}
			}
			return nil
		},
		ArgsUsage: "<图片文件...>",
		// 未指定子命令时的默认操作 - 作为上传处理
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() == 0 {
				cli.ShowAppHelp(ctx)
				return cli.Exit("\n错误: 请指定要上传的图片文件\n\n"+
					"使用示例:\n"+
					"  giteebed upload <图片路径>\n\n"+
					"运行 'giteebed help' 查看完整帮助信息", 1)
			}
			return handleUploadCommand(ctx, ctx.Args().Slice())
		},
		Commands: []*cli.Command{
			// 初始化配置文件
			{
				Name:    "init",
				Aliases: []string{"i"},
				Usage:   "创建环境变量配置文件",
				Description: "在当前目录创建 .env 示例文件，包含所有配置项说明。\n\n" +
					"配置项包括:\n" +
					"  - Gitee API 认证信息与目标仓库\n" +
					"  - 上传目录与分支\n" +
					"  - HTTP 服务选项\n\n" +
					"示例:\n" +
					"  giteebed init\n" +
					"  giteebed init --force  # 强制覆盖已存在的文件",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "强制覆盖已存在的配置文件",
					},
				},
				Action: handleInitCommand,
			},

			// 图片上传
			{
				Name:      "upload",
				Aliases:   []string{"u", "up"},
				Usage:     "上传图片到Gitee仓库",
				ArgsUsage: "<图片文件...>",
				Description: "依次上传命令行给出的图片（单次最多8张），\n" +
					"默认首个失败即中止，可用 --continue-on-error 改为继续。\n\n" +
					"示例:\n" +
					"  giteebed upload cat.png\n" +
					"  giteebed upload a.png b.png --markdown\n" +
					"  giteebed upload cat.png --force  # 路径冲突时覆盖更新",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "目标路径已存在时基于SHA覆盖更新",
					},
					&cli.BoolFlag{
						Name:    "markdown",
						Aliases: []string{"m"},
						Usage:   "追加输出 Markdown 图片引用",
					},
					&cli.BoolFlag{
						Name:  "continue-on-error",
						Usage: "单张失败时继续上传其余图片",
					},
				},
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() == 0 {
						return cli.Exit("错误: 请指定图片文件\n\n示例: giteebed upload cat.png", 1)
					}
					return handleUploadCommand(ctx, ctx.Args().Slice())
				},
			},

			// HTTP 上传服务
			{
				Name:  "serve",
				Usage: "启动HTTP上传服务",
				Description: "将上传能力暴露为 HTTP 接口，供工作流引擎等宿主系统调用。\n\n" +
					"接口:\n" +
					"  POST /api/upload   multipart 字段 file，返回 {\"image_url\": ...}\n" +
					"  GET  /healthz      健康检查\n\n" +
					"示例:\n" +
					"  giteebed serve --addr :8080",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "监听地址 (优先于 SERVER_ADDR)",
					},
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "目标路径已存在时基于SHA覆盖更新",
					},
				},
				Action: handleServeCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
