// Package deck 实现从创业描述到成稿的生成管线：
// 大纲生成 → 逐页展开 → 修订 → 装配。
package deck

import "pitchdeck-ai-api/internal/domain/entity"

// categoryGuidance 按幻灯片类别注入的写作指引，随提示词下发。
// 未覆盖的类别使用空指引，模板侧渲染为 unspecified。
var categoryGuidance = map[entity.SlideCategory]string{
	entity.CategoryTitle:         "One-line value proposition, company name prominent, minimal text. No bullets beyond tagline fragments.",
	entity.CategoryProblem:       "Lead with the customer pain in concrete terms. Quantify the cost of the problem where possible.",
	entity.CategorySolution:      "State the core insight first, then how the product delivers it. Avoid feature laundry lists.",
	entity.CategoryMarket:        "Must include market size framing (TAM/SAM/SOM or equivalent) and segmentation. Name the growth driver.",
	entity.CategoryProduct:       "Describe what ships today versus roadmap. Prefer feature_cards for distinct capabilities.",
	entity.CategoryTraction:      "Lead with the strongest metric. Use the metrics array; every number needs a time frame.",
	entity.CategoryBusinessModel: "Explain who pays, how much, and how often. Include unit economics if the stage supports it.",
	entity.CategoryTeam:          "One line per key person: name, role, and the single most relevant credential.",
	entity.CategoryFinancials:    "Three-year projection summary in the metrics array. State the key assumption behind the numbers.",
	entity.CategoryAsk:           "Must state the funding amount sought and the use of funds split. End with next_steps for investors.",
	entity.CategoryAppendix:      "Supporting detail referenced from earlier slides. Dense is acceptable here.",
}

// GuidanceFor 返回类别指引，未知类别返回空串
func GuidanceFor(c entity.SlideCategory) string {
	return categoryGuidance[c]
}
