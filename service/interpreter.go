package service

import (
	"encoding/json"
	"io"
	"strings"
)

// Parse 将上游原始响应解析为 JSON 树
//   - 空白内容返回空对象
//   - 非 JSON 文本返回 {"rawResponse": raw}，不报错
//
// 数字以 json.Number 保留，避免精度丢失
func Parse(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return rawWrapper(raw)
	}
	// 一个完整值之后不允许再有内容
	if _, err := dec.Token(); err != io.EOF {
		return rawWrapper(raw)
	}
	return tree
}

func rawWrapper(raw string) map[string]any {
	return map[string]any{"rawResponse": raw}
}

// IsEmpty 判断解析结果是否语义为空：
// 原文空白、null、空白字符串、空数组或空对象
func IsEmpty(raw string, tree any) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}
	switch v := tree.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

// EnsurePresent 解析并要求结果非空，为空时返回 KindUpstreamEmpty
func EnsurePresent(raw string) (any, error) {
	tree := Parse(raw)
	if IsEmpty(raw, tree) {
		return nil, newError(KindUpstreamEmpty, EmptyResultMessage, nil)
	}
	return tree, nil
}

// ErrorTree 合成 {"error": msg} 对象
func ErrorTree(msg string) map[string]any {
	return map[string]any{"error": msg}
}

// encodeTree 序列化 JSON 树，用于持久化合成的错误对象
func encodeTree(tree any) (string, error) {
	b, err := json.Marshal(tree)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
