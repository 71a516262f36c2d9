package node

import (
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/eino/schema"
)

// TruncateByRunes 按 rune 截断，避免在多字节字符中间切开。
func TruncateByRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}

// FlattenMessages 把模板渲染出的消息序列平铺成单条指令文本。
// 文本网关只接受一个 instruction 字符串，system/user 消息按序拼接。
func FlattenMessages(msgs []*schema.Message) string {
	var b strings.Builder
	for _, m := range msgs {
		if m == nil {
			continue
		}
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(content)
	}
	return b.String()
}
