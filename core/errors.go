// Package core - 错误分类
// 将上传链路中的失败原因归为可判别的错误类别，
// 调用方通过 errors.Is 区分本地文件、凭据、仓库、冲突、网络和服务端问题
package core

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// 上传链路中可判别的错误类别
var (
	ErrLocalFile      = errors.New("本地文件不可用")
	ErrAuthentication = errors.New("访问令牌无效或已过期")
	ErrRepository     = errors.New("仓库不存在或无写入权限")
	ErrConflict       = errors.New("目标路径已存在")
	ErrNetwork        = errors.New("网络请求失败")
	ErrRemoteServer   = errors.New("Gitee 服务端错误")

	// ErrUploadedNoURL 文件已写入远端仓库，但无法从响应中确定其 URL
	// 调用方可退化为确定性的 raw URL 构造
	ErrUploadedNoURL = errors.New("文件已上传，但解析响应失败，无法确定文件URL")
)

// APIError 携带 Gitee API 返回的状态码和错误描述
type APIError struct {
	StatusCode int    // HTTP 状态码
	Message    string // Gitee 返回的错误信息
	kind       error  // 对应的错误类别，用于 errors.Is
}

func (e *APIError) Error() string {
	if e.kind != nil {
		return fmt.Sprintf("%v: HTTP %d: %s", e.kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("Gitee API 请求失败: HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap 暴露错误类别，支持 errors.Is 判断
func (e *APIError) Unwrap() error {
	return e.kind
}

// classifyAPIError 按状态码归类 API 错误
// 401 对应令牌问题；403/404 对应仓库不存在或权限不足；
// 400 且提示文件已存在时对应路径冲突；5xx 对应服务端错误
func classifyAPIError(status int, message string) *APIError {
	apiErr := &APIError{StatusCode: status, Message: message}
	switch {
	case status == 401:
		apiErr.kind = ErrAuthentication
	case status == 403, status == 404:
		apiErr.kind = ErrRepository
	case status == 400 && isConflictMessage(message):
		apiErr.kind = ErrConflict
	case status >= 500:
		apiErr.kind = ErrRemoteServer
	}
	return apiErr
}

// isConflictMessage 判断 400 响应是否为"文件已存在"
func isConflictMessage(message string) bool {
	return strings.Contains(strings.ToLower(message), "exist") ||
		strings.Contains(message, "已存在")
}
