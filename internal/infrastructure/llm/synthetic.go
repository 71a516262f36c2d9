package llm

import "strings"

// 合成文本：上游不可用时网关返回的确定性兜底输出。
// 相同指令必须产出逐字节相同的文本，测试与演示模式依赖这一点。

const syntheticOutline = `[
  {"id": 1, "title": "Company Introduction", "category": "title", "summary": "Company name, one-line value proposition and founding context."},
  {"id": 2, "title": "The Problem", "category": "problem", "summary": "The customer pain point and why existing options fall short."},
  {"id": 3, "title": "Our Solution", "category": "solution", "summary": "How the product removes the pain and the core insight behind it."},
  {"id": 4, "title": "Market Opportunity", "category": "market", "summary": "Addressable market size, segmentation and growth trajectory."},
  {"id": 5, "title": "Product Overview", "category": "product", "summary": "What the product does today and the near-term roadmap."},
  {"id": 6, "title": "Traction", "category": "traction", "summary": "Usage, revenue and partnership milestones achieved so far."},
  {"id": 7, "title": "Business Model", "category": "business-model", "summary": "How the company makes money and unit economics."},
  {"id": 8, "title": "The Team", "category": "team", "summary": "Founders and key hires with relevant track record."},
  {"id": 9, "title": "Financial Projections", "category": "financials", "summary": "Three-year revenue, cost and headcount outlook."},
  {"id": 10, "title": "The Ask", "category": "ask", "summary": "Funding amount sought and planned use of funds."}
]`

const syntheticSlide = `{
  "headline": "A focused answer to a pressing market need",
  "subheadline": "Placeholder content generated while the writing service is offline",
  "bullets": [
    "Key point one: the core claim this slide would make",
    "Key point two: supporting evidence or detail",
    "Key point three: implication for the investor"
  ],
  "callout": "Full AI-generated content will appear here once the writing service is reachable."
}`

const syntheticError = `{"error": "generation unavailable", "detail": "the generative text service could not be reached and no canned output matches this instruction"}`

// SyntheticText 按指令中的关键词选择合成输出。
// 先匹配更具体的 "slide content"：展开类指令同时含有
// "slide outline" 字样，顺序颠倒会误入大纲分支。
func SyntheticText(instruction string) string {
	lower := strings.ToLower(instruction)
	switch {
	case strings.Contains(lower, "slide content"):
		return syntheticSlide
	case strings.Contains(lower, "outline"):
		return syntheticOutline
	default:
		return syntheticError
	}
}
