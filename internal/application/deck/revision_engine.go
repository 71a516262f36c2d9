package deck

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pitchdeck-ai-api/internal/config"
	"pitchdeck-ai-api/internal/domain/entity"
	wfchain "pitchdeck-ai-api/internal/workflow/chain"
	wfmodel "pitchdeck-ai-api/internal/workflow/model"
	wfnode "pitchdeck-ai-api/internal/workflow/node"
	"pitchdeck-ai-api/pkg/logger"
	"pitchdeck-ai-api/pkg/metrics"
)

// marketRevisionGuidance market 类修订的附加指引
const marketRevisionGuidance = "This is a market slide: the revision must keep or add market-sizing framing (TAM/SAM/SOM or equivalent) and segmentation."

// FieldRevision 单字段修订的结果：改进后的标题与正文摘要
type FieldRevision struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// RevisionEngine 修订引擎。三种操作粒度共享同一条原则：
// 输出永远是 schema 完整的整体替换；解析失败退化为
// 可见但非破坏性的标注兜底，绝不向调用方抛错。
type RevisionEngine struct {
	chain *wfchain.RevisionChain
	cfg   *config.PipelineConfig
}

func NewRevisionEngine(chain *wfchain.RevisionChain, cfg *config.Config) *RevisionEngine {
	return &RevisionEngine{chain: chain, cfg: &cfg.Pipeline}
}

// ReviseField 轻量修订：只改标题与正文摘要。
// 解析失败时返回原内容并把指令文本附加其后（可见的 no-op 兜底）。
func (e *RevisionEngine) ReviseField(ctx context.Context, slideTitle, slideContent string, category entity.SlideCategory, instruction string, sctx entity.StartupContext) FieldRevision {
	raw, err := e.chain.InvokeField(ctx, &wfmodel.ReviseFieldInput{
		Topic:        sctx.Topic,
		SlideTitle:   slideTitle,
		Category:     string(category),
		CurrentValue: slideContent,
		Instruction:  instruction,
		MaxTokens:    e.cfg.RevisionMaxTokens,
	})
	if err == nil {
		var rev FieldRevision
		extracted := wfnode.ExtractJSONValue(raw)
		if json.Unmarshal([]byte(extracted), &rev) == nil &&
			strings.TrimSpace(rev.Title) != "" && strings.TrimSpace(rev.Content) != "" {
			metrics.RevisionTotal.WithLabelValues("field", "success").Inc()
			return rev
		}
	}

	logger.Warn(ctx, "field revision unusable, returning annotated original", "slide_title", slideTitle)
	metrics.RevisionTotal.WithLabelValues("field", "fallback").Inc()
	return FieldRevision{
		Title:   slideTitle,
		Content: annotate(slideContent, instruction),
	}
}

// ReviseSlide 整页修订：所有字段一并重建以保持跨字段一致性。
// 解析失败时返回原页，标题加 "(Enhanced)" 后缀，headline 附加指令标注。
func (e *RevisionEngine) ReviseSlide(ctx context.Context, slide entity.SlideContent, instruction string, sctx entity.StartupContext) entity.SlideContent {
	guidance := ""
	if slide.Category == entity.CategoryMarket {
		guidance = marketRevisionGuidance
	}

	slideJSON, merr := json.Marshal(slide.Content)
	if merr != nil {
		// 实体全部是可序列化字段，这里只是防御极端情况
		return reviseSlideFallback(slide, instruction)
	}

	raw, err := e.chain.InvokeSlide(ctx, &wfmodel.ReviseSlideInput{
		Topic:       sctx.Topic,
		SlideTitle:  slide.Title,
		Category:    string(slide.Category),
		SlideJSON:   string(slideJSON),
		Instruction: instruction,
		Guidance:    guidance,
		MaxTokens:   e.cfg.RevisionMaxTokens,
	})
	if err != nil {
		logger.Warn(ctx, "slide revision chain failed, returning annotated original",
			"slide_id", slide.ID, "error", err.Error())
		metrics.RevisionTotal.WithLabelValues("slide", "fallback").Inc()
		return reviseSlideFallback(slide, instruction)
	}

	body, perr := parseSlideBody(raw)
	if perr != nil || !validSlideBody(body) {
		logger.Warn(ctx, "slide revision unusable, returning annotated original", "slide_id", slide.ID)
		metrics.RevisionTotal.WithLabelValues("slide", "fallback").Inc()
		return reviseSlideFallback(slide, instruction)
	}

	metrics.RevisionTotal.WithLabelValues("slide", "success").Inc()
	return entity.SlideContent{
		ID:       slide.ID,
		Title:    slide.Title,
		Category: slide.Category,
		Content:  body,
	}
}

// ReviseDeckWide 全稿修订：逐页顺序应用 ReviseSlide，每页独立，
// 单页失败只影响该页的兜底，不中断其余页。页数与顺序保持不变。
func (e *RevisionEngine) ReviseDeckWide(ctx context.Context, deck *entity.GeneratedDeck, instruction string) []entity.SlideContent {
	if deck == nil {
		return nil
	}
	revised := make([]entity.SlideContent, 0, len(deck.Slides))
	for _, slide := range deck.Slides {
		revised = append(revised, e.ReviseSlide(ctx, slide, instruction, deck.Context))
	}
	metrics.RevisionTotal.WithLabelValues("deck", "success").Inc()
	return revised
}

func reviseSlideFallback(slide entity.SlideContent, instruction string) entity.SlideContent {
	out := slide
	out.Title = slide.Title + " (Enhanced)"
	out.Content.Headline = annotate(slide.Content.Headline, instruction)
	return out
}

// annotate 把指令文本以可见方式附加到原文之后
func annotate(original, instruction string) string {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return original
	}
	return fmt.Sprintf("%s (revision requested: %s)", original, instruction)
}
