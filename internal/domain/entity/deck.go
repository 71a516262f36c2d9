// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"
)

// SlideCategory 幻灯片类型（封闭枚举，驱动提示词特化与下游模板选择）
type SlideCategory string

const (
	CategoryTitle         SlideCategory = "title"
	CategoryProblem       SlideCategory = "problem"
	CategorySolution      SlideCategory = "solution"
	CategoryMarket        SlideCategory = "market"
	CategoryProduct       SlideCategory = "product"
	CategoryTraction      SlideCategory = "traction"
	CategoryBusinessModel SlideCategory = "business-model"
	CategoryTeam          SlideCategory = "team"
	CategoryFinancials    SlideCategory = "financials"
	CategoryAsk           SlideCategory = "ask"
	CategoryQAChat        SlideCategory = "qa-chat"
	CategoryAppendix      SlideCategory = "appendix"
	CategoryVideo         SlideCategory = "video"
	CategoryIntroVideo    SlideCategory = "intro-video"
)

// validCategories 枚举全集
var validCategories = map[SlideCategory]struct{}{
	CategoryTitle: {}, CategoryProblem: {}, CategorySolution: {},
	CategoryMarket: {}, CategoryProduct: {}, CategoryTraction: {},
	CategoryBusinessModel: {}, CategoryTeam: {}, CategoryFinancials: {},
	CategoryAsk: {}, CategoryQAChat: {}, CategoryAppendix: {},
	CategoryVideo: {}, CategoryIntroVideo: {},
}

// IsValid 判断类别是否属于封闭枚举
func (c SlideCategory) IsValid() bool {
	_, ok := validCategories[c]
	return ok
}

// NormalizeCategory 宽容解析模型输出中的类别字符串，未知值回退 appendix
func NormalizeCategory(s string) SlideCategory {
	c := SlideCategory(strings.ToLower(strings.TrimSpace(s)))
	if c.IsValid() {
		return c
	}
	return CategoryAppendix
}

// StartupContext 一次生成会话的不可变输入
type StartupContext struct {
	Topic        string `json:"topic"`
	Industry     string `json:"industry,omitempty"`
	Audience     string `json:"audience,omitempty"`
	SlideCount   int    `json:"slide_count"`
	FundingStage string `json:"funding_stage,omitempty"`
	// RawContent 来自粘贴/导入的已有素材，大纲生成时用于增强而非替换
	RawContent string `json:"raw_content,omitempty"`
}

// SlideStub 大纲条目：内容生成前对一页的占位描述
type SlideStub struct {
	ID       int           `json:"id"`
	Title    string        `json:"title"`
	Category SlideCategory `json:"category"`
	Summary  string        `json:"summary,omitempty"`
}

// Outline 大纲：有序 stub 列表
type Outline struct {
	Stubs      []SlideStub `json:"stubs"`
	TotalCount int         `json:"total_count"`
}

// SlideMetric 指标条目
type SlideMetric struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Context string `json:"context,omitempty"`
}

// FeatureCard 产品特性卡片
type FeatureCard struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// VideoDescriptor 视频描述符（展示层负责实际嵌入）
type VideoDescriptor struct {
	URL     string `json:"url,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// SlideBody 一页幻灯片的结构化内容。
// 成功展开后 Headline 与 Bullets 恒为非空（校验保证）。
type SlideBody struct {
	Headline     string          `json:"headline"`
	Subheadline  string          `json:"subheadline,omitempty"`
	Bullets      []string        `json:"bullets"`
	Metrics      []SlideMetric   `json:"metrics,omitempty"`
	Callout      string          `json:"callout,omitempty"`
	NextSteps    []string        `json:"next_steps,omitempty"`
	Icon         string          `json:"icon,omitempty"`
	Graphic      string          `json:"graphic,omitempty"`
	FeatureCards []FeatureCard   `json:"feature_cards,omitempty"`
	Video        *VideoDescriptor `json:"video,omitempty"`
}

// SlideContent 完整的一页。ID 必须与来源 stub 一致，
// 是修订引擎与装配器使用的稳定 join key。
type SlideContent struct {
	ID       int           `json:"id"`
	Title    string        `json:"title"`
	Category SlideCategory `json:"category"`
	Content  SlideBody     `json:"content"`
}

// GeneratedDeck 生成完成的整套演示文稿
type GeneratedDeck struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	ThemeID   string         `json:"theme_id"`
	CreatedAt time.Time      `json:"created_at"`
	Slides    []SlideContent `json:"slides"`
	Context   StartupContext `json:"context"`
}

// SlideByID 按 id 查找幻灯片，不存在时返回 nil
func (d *GeneratedDeck) SlideByID(id int) *SlideContent {
	if d == nil {
		return nil
	}
	for i := range d.Slides {
		if d.Slides[i].ID == id {
			return &d.Slides[i]
		}
	}
	return nil
}
