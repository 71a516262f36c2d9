package node

import (
	"encoding/json"
	"strings"
)

// ExtractJSONValue 从模型输出中截取第一个完整 JSON 对象/数组。
// 模型常在 JSON 前后夹杂说明文字或 markdown 围栏，这里做容错截取；
// 截取结果仍需由调用方反序列化校验。
func ExtractJSONValue(s string) string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return raw
	}

	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")
	start := -1
	end := -1
	switch {
	case objStart >= 0 && (arrStart < 0 || objStart < arrStart):
		start = objStart
		end = strings.LastIndex(raw, "}")
	case arrStart >= 0:
		start = arrStart
		end = strings.LastIndex(raw, "]")
	}
	if start >= 0 && end > start {
		raw = raw[start : end+1]
	}

	// 确认开头确实是一个 JSON 值，否则原样返回交给调用方报错。
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if tok, err := dec.Token(); err == nil {
		if d, ok := tok.(json.Delim); ok && (d == '{' || d == '[') {
			return raw
		}
	}
	return strings.TrimSpace(s)
}
