package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseRepoURL 验证各种格式的仓库地址解析
func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		owner   string
		repo    string
		wantErr bool
	}{
		{name: "简单格式", input: "alice/images", owner: "alice", repo: "images"},
		{name: "带主机名", input: "gitee.com/alice/images", owner: "alice", repo: "images"},
		{name: "HTTPS地址", input: "https://gitee.com/alice/images", owner: "alice", repo: "images"},
		{name: "HTTPS带git后缀", input: "https://gitee.com/alice/images.git", owner: "alice", repo: "images"},
		{name: "HTTP地址", input: "http://gitee.com/alice/images", owner: "alice", repo: "images"},
		{name: "git协议", input: "git://gitee.com/alice/images", owner: "alice", repo: "images"},
		{name: "SSH格式", input: "git@gitee.com:alice/images.git", owner: "alice", repo: "images"},
		{name: "SSH不带后缀", input: "git@gitee.com:alice/images", owner: "alice", repo: "images"},
		{name: "首尾空白和斜杠", input: "  /alice/images/  ", owner: "alice", repo: "images"},
		{name: "缺少仓库名", input: "alice", wantErr: true},
		{name: "空字符串", input: "", wantErr: true},
		{name: "其他主机", input: "https://github.com/alice/images", wantErr: true},
		{name: "仅主机名", input: "gitee.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRepoURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}
