package deck

import (
	"encoding/json"
	"fmt"
	"strings"

	"pitchdeck-ai-api/internal/domain/entity"
	wfnode "pitchdeck-ai-api/internal/workflow/node"
)

// rawStub 宽容解析用的中间结构：模型输出的字段类型不总是可靠
type rawStub struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
}

// parseOutlineStubs 解析大纲 JSON 并做净化：
// 丢弃无标题条目、归一化类别、按出现顺序重排 id 为 1..n。
func parseOutlineStubs(raw string) ([]entity.SlideStub, error) {
	extracted := wfnode.ExtractJSONValue(raw)
	if strings.TrimSpace(extracted) == "" {
		return nil, fmt.Errorf("empty outline response")
	}

	var items []rawStub
	if err := json.Unmarshal([]byte(extracted), &items); err != nil {
		// 有些模型会把数组包在对象里，如 {"slides": [...]}
		var wrapper map[string]json.RawMessage
		if werr := json.Unmarshal([]byte(extracted), &wrapper); werr != nil {
			return nil, fmt.Errorf("parse outline: %w", err)
		}
		items = nil
		for _, v := range wrapper {
			if json.Unmarshal(v, &items) == nil && len(items) > 0 {
				break
			}
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("parse outline: no slide array found")
		}
	}

	stubs := make([]entity.SlideStub, 0, len(items))
	for _, it := range items {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}
		stubs = append(stubs, entity.SlideStub{
			ID:       len(stubs) + 1,
			Title:    title,
			Category: entity.NormalizeCategory(it.Category),
			Summary:  strings.TrimSpace(it.Summary),
		})
	}
	if len(stubs) == 0 {
		return nil, fmt.Errorf("outline contains no usable slides")
	}
	return stubs, nil
}

// parseSlideBody 解析单页内容 JSON。只负责结构解码，
// headline/bullets 的存在性校验由调用方执行。
func parseSlideBody(raw string) (entity.SlideBody, error) {
	var body entity.SlideBody
	extracted := wfnode.ExtractJSONValue(raw)
	if strings.TrimSpace(extracted) == "" {
		return body, fmt.Errorf("empty slide response")
	}
	if err := json.Unmarshal([]byte(extracted), &body); err != nil {
		return body, fmt.Errorf("parse slide body: %w", err)
	}
	return body, nil
}

// validSlideBody 成片校验：headline 与至少一条非空 bullet
func validSlideBody(b entity.SlideBody) bool {
	if strings.TrimSpace(b.Headline) == "" {
		return false
	}
	for _, bullet := range b.Bullets {
		if strings.TrimSpace(bullet) != "" {
			return true
		}
	}
	return false
}
