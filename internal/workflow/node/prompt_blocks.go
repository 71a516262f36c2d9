package node

import (
	"fmt"
	"strings"

	wfmodel "pitchdeck-ai-api/internal/workflow/model"
)

const (
	// maxRawContentRunes 用户素材注入提示词的上限
	maxRawContentRunes = 4000
	// maxDigestHeadlineRunes 摘要中单条 headline 的上限
	maxDigestHeadlineRunes = 160
)

// BuildRawContentBlock 把用户粘贴的素材包装成提示词片段，为空时返回空串。
func BuildRawContentBlock(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("Existing material supplied by the founder (use it, do not copy verbatim):\n")
	b.WriteString(TruncateByRunes(raw, maxRawContentRunes))
	return b.String()
}

// BuildDigestBlock 把已生成幻灯片摘要渲染成列表文本，为空时给出占位说明。
func BuildDigestBlock(digest []wfmodel.SlideDigest) string {
	if len(digest) == 0 {
		return "(none yet, this is the first slide)"
	}
	var b strings.Builder
	for i, d := range digest {
		if i > 0 {
			b.WriteString("\n")
		}
		headline := TruncateByRunes(strings.TrimSpace(d.Headline), maxDigestHeadlineRunes)
		fmt.Fprintf(&b, "- %s: %s", strings.TrimSpace(d.Title), headline)
	}
	return b.String()
}
