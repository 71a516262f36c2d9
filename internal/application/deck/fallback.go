package deck

import (
	"fmt"
	"strings"

	"pitchdeck-ai-api/internal/domain/entity"
)

// defaultOutlineEntry 兜底大纲的单条定义
type defaultOutlineEntry struct {
	Title    string
	Category entity.SlideCategory
	Summary  string
}

// defaultOutlineEntries 大纲生成失败时的兜底结构：
// 经典十段叙事加一页投资人问答，按请求数量截断。
var defaultOutlineEntries = []defaultOutlineEntry{
	{"Introduction", entity.CategoryTitle, "Company name and one-line value proposition."},
	{"The Problem", entity.CategoryProblem, "The customer pain point being addressed."},
	{"Our Solution", entity.CategorySolution, "How the product removes the pain."},
	{"Market Opportunity", entity.CategoryMarket, "Market size, segmentation and growth."},
	{"Product", entity.CategoryProduct, "What the product does today."},
	{"Traction", entity.CategoryTraction, "Milestones and momentum to date."},
	{"Business Model", entity.CategoryBusinessModel, "How the company makes money."},
	{"Team", entity.CategoryTeam, "Founders and key hires."},
	{"Financials", entity.CategoryFinancials, "Projections and key assumptions."},
	{"The Ask", entity.CategoryAsk, "Funding sought and use of funds."},
	{"Investor Q&A", entity.CategoryQAChat, "Interactive questions and answers."},
}

// fallbackOutline 生成兜底大纲，截断到 count 并保证 id 连续从 1 开始。
func fallbackOutline(topic string, count int) []entity.SlideStub {
	if count <= 0 || count > len(defaultOutlineEntries) {
		count = len(defaultOutlineEntries)
	}
	topic = strings.TrimSpace(topic)

	stubs := make([]entity.SlideStub, 0, count)
	for i := 0; i < count; i++ {
		e := defaultOutlineEntries[i]
		title := e.Title
		if e.Category == entity.CategoryTitle && topic != "" {
			title = firstWords(topic, 6)
		}
		stubs = append(stubs, entity.SlideStub{
			ID:       i + 1,
			Title:    title,
			Category: e.Category,
			Summary:  e.Summary,
		})
	}
	return stubs
}

// fallbackSlideBody 单页展开失败时的最小合成内容：
// headline 由 stub 标题与主题拼出，正文为三条通用要点。
func fallbackSlideBody(stubTitle, topic string) entity.SlideBody {
	topic = strings.TrimSpace(topic)
	headline := strings.TrimSpace(stubTitle)
	if topic != "" {
		headline = fmt.Sprintf("%s: %s", strings.TrimSpace(stubTitle), firstWords(topic, 10))
	}
	return entity.SlideBody{
		Headline: headline,
		Bullets: []string{
			"Key insight about this area of the business",
			"Supporting evidence and relevant details",
			"Implications for growth and strategy",
		},
		Callout: "Content outline generated, full details available on request",
	}
}

// qaChatSlideBody 投资人问答页：固定的结构占位，不经过文本网关。
func qaChatSlideBody() entity.SlideBody {
	return entity.SlideBody{
		Headline:    "Ask Us Anything",
		Subheadline: "An interactive session with the founding team",
		Bullets: []string{
			"What does the competitive landscape look like in two years?",
			"How does the team plan to spend the raise?",
			"What is the biggest risk to the plan, and the mitigation?",
		},
		Callout: "Questions are answered live during the pitch session",
		Icon:    "chat",
	}
}

// firstWords 取前 n 个词，超出部分省略
func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) <= n {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[:n], " ") + "…"
}
