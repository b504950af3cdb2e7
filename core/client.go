package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultAPIBase Gitee OpenAPI v5 的基础地址
const DefaultAPIBase = "https://gitee.com/api/v5"

// Client Gitee OpenAPI v5 客户端
// 仅覆盖仓库 contents 相关接口
type Client struct {
	apiBase    string
	token      string
	httpClient *http.Client
	limiter    *GiteeRateLimiter // Gitee API 限流器
}

// ClientOption 客户端可选配置
type ClientOption func(*Client)

// WithAPIBase 覆盖 API 基础地址（用于测试）
func WithAPIBase(base string) ClientOption {
	return func(c *Client) {
		c.apiBase = strings.TrimSuffix(base, "/")
	}
}

// WithHTTPClient 替换底层 HTTP 客户端
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient 创建 Gitee API 客户端
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		apiBase: DefaultAPIBase,
		token:   token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		limiter: NewGiteeRateLimiter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContentRequest 新建或更新仓库文件的请求体
type ContentRequest struct {
	AccessToken string `json:"access_token"`
	Content     string `json:"content"` // base64 编码的文件内容
	Message     string `json:"message"` // 提交信息
	Branch      string `json:"branch,omitempty"`
	SHA         string `json:"sha,omitempty"` // 更新文件时必填
}

// Content 仓库内文件的元信息
type Content struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	SHA         string `json:"sha"`
	Size        int64  `json:"size"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
	HTMLURL     string `json:"html_url"`
}

// Commit 文件变更产生的提交信息
type Commit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
}

// ContentResponse 创建/更新文件的响应体
type ContentResponse struct {
	Content *Content `json:"content"`
	Commit  *Commit  `json:"commit"`
}

// Repository 仓库基本信息
type Repository struct {
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	DefaultBranch string `json:"default_branch"`
}

// apiErrorBody Gitee 错误响应体
type apiErrorBody struct {
	Message string `json:"message"`
}

// CreateFile 在仓库中新建文件
// POST /repos/{owner}/{repo}/contents/{path}
// 目标路径已存在时 Gitee 返回 400，归类为冲突错误
func (c *Client) CreateFile(ctx context.Context, owner, repo, remotePath string, req *ContentRequest) (*ContentResponse, error) {
	req.AccessToken = c.token
	var resp ContentResponse
	if err := c.do(ctx, http.MethodPost, c.contentsURL(owner, repo, remotePath, nil), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateFile 更新仓库中已有文件，req.SHA 必须为现有文件的 blob SHA
// PUT /repos/{owner}/{repo}/contents/{path}
func (c *Client) UpdateFile(ctx context.Context, owner, repo, remotePath string, req *ContentRequest) (*ContentResponse, error) {
	req.AccessToken = c.token
	var resp ContentResponse
	if err := c.do(ctx, http.MethodPut, c.contentsURL(owner, repo, remotePath, nil), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetContents 获取仓库内文件的元信息，用于存在性检查和 SHA 查询
// GET /repos/{owner}/{repo}/contents/{path}
func (c *Client) GetContents(ctx context.Context, owner, repo, remotePath, ref string) (*Content, error) {
	query := url.Values{}
	query.Set("access_token", c.token)
	if ref != "" {
		query.Set("ref", ref)
	}
	var content Content
	if err := c.do(ctx, http.MethodGet, c.contentsURL(owner, repo, remotePath, query), nil, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// DeleteFile 删除仓库内文件，sha 为现有文件的 blob SHA
// DELETE /repos/{owner}/{repo}/contents/{path}
func (c *Client) DeleteFile(ctx context.Context, owner, repo, remotePath, sha, message, branch string) error {
	query := url.Values{}
	query.Set("access_token", c.token)
	query.Set("sha", sha)
	query.Set("message", message)
	if branch != "" {
		query.Set("branch", branch)
	}
	return c.do(ctx, http.MethodDelete, c.contentsURL(owner, repo, remotePath, query), nil, nil)
}

// GetRepo 获取仓库基本信息，用于校验仓库是否可访问
func (c *Client) GetRepo(ctx context.Context, owner, repo string) (*Repository, error) {
	query := url.Values{}
	query.Set("access_token", c.token)
	endpoint := fmt.Sprintf("%s/repos/%s/%s?%s",
		c.apiBase, url.PathEscape(owner), url.PathEscape(repo), query.Encode())
	var r Repository
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// contentsURL 构造 contents 接口地址，远端路径按段转义以保留目录分隔
func (c *Client) contentsURL(owner, repo, remotePath string, query url.Values) string {
	segments := strings.Split(strings.Trim(remotePath, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.apiBase, url.PathEscape(owner), url.PathEscape(repo), strings.Join(segments, "/"))
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

// do 执行一次 API 请求并解析响应
// 每次请求前等待限流许可；传输失败归类为网络错误
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	// 限流: 等待 Gitee API 调用许可
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "限流等待失败")
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "编码请求体失败")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return errors.Wrap(err, "构造请求失败")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(ErrNetwork, "%v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(ErrNetwork, "读取响应失败: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := strings.TrimSpace(string(data))
		var errBody apiErrorBody
		if json.Unmarshal(data, &errBody) == nil && errBody.Message != "" {
			message = errBody.Message
		}
		return classifyAPIError(resp.StatusCode, message)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			// 写入类请求已在远端生效，响应却无法解析
			// 单独归类，调用方可以退化为确定性URL而不是误报失败
			if method == http.MethodPost || method == http.MethodPut {
				return errors.Wrapf(ErrUploadedNoURL, "%v", err)
			}
			return errors.Wrapf(err, "解析响应失败: %s", string(data))
		}
	}
	return nil
}
