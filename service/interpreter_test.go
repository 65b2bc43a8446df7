package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{"空字符串", "", map[string]any{}},
		{"空白", "  \n\t", map[string]any{}},
		{"对象", `{"score":0.9}`, map[string]any{"score": json.Number("0.9")}},
		{"数组", `[1,"a"]`, []any{json.Number("1"), "a"}},
		{"JSON 字符串", `"hello"`, "hello"},
		{"null", "null", nil},
		{"非 JSON 文本", "hello world", map[string]any{"rawResponse": "hello world"}},
		{"尾部多余内容", `{"a":1} trailing`, map[string]any{"rawResponse": `{"a":1} trailing`}},
		{"截断的 JSON", `{"a":`, map[string]any{"rawResponse": `{"a":`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}

func TestIsEmpty(t *testing.T) {
	empty := []string{"", "   ", "{}", "[]", "null", `""`, `"   "`, " {} "}
	for _, raw := range empty {
		assert.True(t, IsEmpty(raw, Parse(raw)), "raw=%q", raw)
	}

	present := []string{`{"a":1}`, `[0]`, `"x"`, "0", "false", "hello world"}
	for _, raw := range present {
		assert.False(t, IsEmpty(raw, Parse(raw)), "raw=%q", raw)
	}

	// 原文空白时无论解析结果如何都为空
	assert.True(t, IsEmpty(" ", map[string]any{"a": 1}))
}

func TestEnsurePresent(t *testing.T) {
	tree, err := EnsurePresent(`{"x":1}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": json.Number("1")}, tree)

	_, err = EnsurePresent("{}")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUpstreamEmpty))
	assert.Equal(t, EmptyResultMessage, err.Error())
}

func TestMaterialize(t *testing.T) {
	tree, persisted, empty, err := materialize(`{"score":0.9}`)
	require.NoError(t, err)
	assert.False(t, empty)
	assert.Equal(t, `{"score":0.9}`, persisted)
	assert.Equal(t, map[string]any{"score": json.Number("0.9")}, tree)

	tree, persisted, empty, err = materialize("")
	require.NoError(t, err)
	assert.True(t, empty)
	assert.Equal(t, ErrorTree(EmptyResultMessage), tree)
	assert.JSONEq(t, `{"error":"upstream did not return an analysis result; please retry"}`, persisted)

	// 合成的错误对象读回时保持不变
	projected, wasEmpty := project(persisted)
	assert.False(t, wasEmpty)
	assert.Equal(t, map[string]any{"error": EmptyResultMessage}, projected)
}

func TestProject_EmptyStoredBody(t *testing.T) {
	tree, empty := project("[]")
	assert.True(t, empty)
	assert.Equal(t, ErrorTree(EmptyResultMessage), tree)
}
