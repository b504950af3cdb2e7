package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukemora/giteebed/core"
	"github.com/lukemora/giteebed/imgbed"
)

// newTestServer 构造指向本地 Gitee 桩服务的上传路由
func newTestServer(t *testing.T, handler http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	giteeStub := httptest.NewServer(handler)
	t.Cleanup(giteeStub.Close)

	config := core.NewConfig("test-token", "gitee.com/alice/images")
	uploader, err := imgbed.NewUploader(config, core.WithAPIBase(giteeStub.URL))
	require.NoError(t, err)

	return newRouter(config, uploader, core.WithAPIBase(giteeStub.URL))
}

// multipartBody 构造带单个 file 字段的 multipart 请求体
func multipartBody(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

// TestUploadHandler 上传接口返回图床URL
func TestUploadHandler(t *testing.T) {
	router := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"content": {"download_url": "https://gitee.com/alice/images/raw/master/images/2024/05/01/cat.png"}}`)
	})

	body, contentType := multipartBody(t, "file", "cat.png", []byte("fake image"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var result map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Contains(t, result["image_url"], "/alice/images/raw/")
}

// TestUploadHandlerRepoOverride 表单 repo 字段按请求覆盖目标仓库
func TestUploadHandlerRepoOverride(t *testing.T) {
	router := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/repos/bob/pics/contents/")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"content": {"download_url": "https://gitee.com/bob/pics/raw/master/images/2024/05/01/cat.png"}}`)
	})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "cat.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("repo", "gitee.com/bob/pics"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var result map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Contains(t, result["image_url"], "/bob/pics/raw/")
}

// TestUploadHandlerMissingFile 缺少 file 字段返回 400
func TestUploadHandlerMissingFile(t *testing.T) {
	router := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("不应发起远端请求")
	})

	body, contentType := multipartBody(t, "not_file", "cat.png", []byte("fake image"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

// TestUploadHandlerAuthError 令牌无效时映射为 401
func TestUploadHandlerAuthError(t *testing.T) {
	router := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "401 Unauthorized: Access token is invalid"}`)
	})

	body, contentType := multipartBody(t, "file", "cat.png", []byte("fake image"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

// TestHealthz 健康检查
func TestHealthz(t *testing.T) {
	router := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

// TestStatusForError 错误类别到HTTP状态码的映射
func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"本地文件错误", errors.Wrap(core.ErrLocalFile, "读取失败"), http.StatusBadRequest},
		{"认证错误", errors.Wrap(core.ErrAuthentication, "令牌无效"), http.StatusUnauthorized},
		{"仓库错误", errors.Wrap(core.ErrRepository, "仓库不存在"), http.StatusNotFound},
		{"路径冲突", errors.Wrap(core.ErrConflict, "文件已存在"), http.StatusConflict},
		{"网络错误", errors.Wrap(core.ErrNetwork, "连接超时"), http.StatusBadGateway},
		{"服务端错误", errors.Wrap(core.ErrRemoteServer, "502"), http.StatusBadGateway},
		{"未知错误", errors.New("其他"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}
