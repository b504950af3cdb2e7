// Package main - 初始化配置文件功能
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// envTemplate 环境变量配置文件模板
const envTemplate = `# ====================================
# Gitee 图床上传工具 - 环境变量配置
# ====================================

# ----------------------------------
# Gitee API 认证配置（必需）
# ----------------------------------
# 获取方式：https://gitee.com/profile/personal_access_tokens
# 令牌需要 projects 权限（仓库文件读写）
GITEE_ACCESS_TOKEN=your_access_token_here

# 目标仓库（必需）
# 支持格式: owner/repo、gitee.com/owner/repo、
#           https://gitee.com/owner/repo、git@gitee.com:owner/repo
GITEE_REPO=gitee.com/username/images

# ----------------------------------
# 上传配置（可选）
# ----------------------------------
# 目标分支
# 默认: master
# GITEE_BRANCH=master

# 仓库内上传目录前缀
# 图片按 UTC 日期归档到 <前缀>/年/月/日/ 下
# 默认: images
# GITEE_REMOTE_DIR=images

# ----------------------------------
# HTTP 服务配置（可选，仅 serve 命令使用）
# ----------------------------------
# 监听地址
# 默认: :8080
# SERVER_ADDR=:8080

# 单次上传大小上限（MB）
# 默认: 10
# SERVER_MAX_UPLOAD_MB=10

# ----------------------------------
# 使用说明
# ----------------------------------
# 1. 填写 GITEE_ACCESS_TOKEN 和 GITEE_REPO
# 2. 上传图片:
#    giteebed upload cat.png
#    或指定配置文件: giteebed --config my.env upload cat.png
# 3. 以 HTTP 服务方式运行:
#    giteebed serve
#
# 注意: .env 文件包含敏感信息，请勿提交到 Git 仓库
`

// handleInitCommand 处理 init 命令
func handleInitCommand(ctx *cli.Context) error {
	force := ctx.Bool("force")
	filename := ".env"

	// 检查文件是否已存在
	if !force {
		if _, err := os.Stat(filename); err == nil {
			return cli.Exit(fmt.Sprintf("❌ 文件 %s 已存在\n"+
				"使用 --force 参数强制覆盖，或手动删除后重试", filename), 1)
		}
	}

	// 写入配置文件
	if err := os.WriteFile(filename, []byte(envTemplate), 0644); err != nil {
		return cli.Exit(fmt.Sprintf("❌ 创建配置文件失败: %v", err), 1)
	}

	// 成功提示
	fmt.Println("✅ 配置文件已创建: " + filename)
	fmt.Println()
	fmt.Println("📝 后续步骤:")
	fmt.Println("  1. 编辑配置文件: vim .env  # 或使用你喜欢的编辑器")
	fmt.Println("  2. 填写必需的配置项（GITEE_ACCESS_TOKEN 和 GITEE_REPO）")
	fmt.Println("  3. 开始使用: giteebed upload <图片路径>")
	fmt.Println()
	fmt.Println("💡 提示:")
	fmt.Println("  - 工具会自动加载当前目录的 .env 文件")
	fmt.Println("  - 也可使用 --config 指定其他配置文件: giteebed --config my.env upload <图片>")
	fmt.Println("  - .env 文件包含敏感信息，请勿提交到版本控制")

	return nil
}
