package utils

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// 仓库地址匹配规则
var (
	// SSH 格式: git@gitee.com:owner/repo.git
	sshRepoPattern = regexp.MustCompile(`^git@gitee\.com:([^/]+)/([^/]+?)(\.git)?$`)
	// HTTPS 或 git 协议: https://gitee.com/owner/repo 或 git://gitee.com/owner/repo
	httpsRepoPattern = regexp.MustCompile(`^(?:https?://|git://)?gitee\.com/([^/]+)/([^/]+?)(\.git)?$`)
)

// ParseRepoURL 从任意格式的 Gitee 仓库地址中提取 owner 和 repo
// 支持: owner/repo、gitee.com/owner/repo、https://gitee.com/owner/repo、
// git@gitee.com:owner/repo，后两者可带 .git 后缀
func ParseRepoURL(repoURL string) (string, string, error) {
	// 移除首尾空白和斜杠
	url := strings.Trim(strings.TrimSpace(repoURL), "/")

	// 简单格式 owner/repo
	if strings.Contains(url, "/") &&
		!strings.ContainsAny(url, ":@") &&
		!strings.Contains(url, "gitee.com") {
		parts := strings.Split(url, "/")
		if len(parts) >= 2 && parts[0] != "" && parts[1] != "" {
			return parts[0], parts[1], nil
		}
	}

	if m := sshRepoPattern.FindStringSubmatch(url); m != nil {
		return m[1], m[2], nil
	}

	if m := httpsRepoPattern.FindStringSubmatch(url); m != nil {
		return m[1], m[2], nil
	}

	return "", "", errors.Errorf(
		"无法识别的仓库地址: %s (支持 owner/repo、https://gitee.com/owner/repo、git@gitee.com:owner/repo)",
		repoURL)
}
