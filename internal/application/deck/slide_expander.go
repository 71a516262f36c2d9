package deck

import (
	"context"

	"pitchdeck-ai-api/internal/config"
	"pitchdeck-ai-api/internal/domain/entity"
	wfchain "pitchdeck-ai-api/internal/workflow/chain"
	wfmodel "pitchdeck-ai-api/internal/workflow/model"
	"pitchdeck-ai-api/pkg/logger"
	"pitchdeck-ai-api/pkg/metrics"
)

// maxDigestSlides 提示词中携带的已生成幻灯片摘要上限
const maxDigestSlides = 8

// SlideExpander 把一条大纲 stub 展开为完整幻灯片。
// Expand 永不失败：解析或校验不过就退化为最小合成内容，
// 保证管线对每个 stub 都产出 schema 完整的一页。
type SlideExpander struct {
	chain *wfchain.SlideChain
	cfg   *config.PipelineConfig
}

func NewSlideExpander(chain *wfchain.SlideChain, cfg *config.Config) *SlideExpander {
	return &SlideExpander{chain: chain, cfg: &cfg.Pipeline}
}

// Expand 展开一页。prior 为此前已展开的幻灯片，按生成顺序排列，
// 用于保持叙事连贯（如 traction 页不与 market 页的数字冲突）。
func (e *SlideExpander) Expand(ctx context.Context, stub entity.SlideStub, sctx entity.StartupContext, prior []entity.SlideContent) entity.SlideContent {
	// 投资人问答页是固定的结构占位，不经过生成
	if stub.Category == entity.CategoryQAChat {
		return entity.SlideContent{
			ID:       stub.ID,
			Title:    stub.Title,
			Category: stub.Category,
			Content:  qaChatSlideBody(),
		}
	}

	raw, err := e.chain.Invoke(ctx, &wfmodel.SlideExpandInput{
		Topic:      sctx.Topic,
		Industry:   sctx.Industry,
		Audience:   sctx.Audience,
		SlideTitle: stub.Title,
		Category:   string(stub.Category),
		Summary:    stub.Summary,
		Guidance:   GuidanceFor(stub.Category),
		Digest:     buildDigest(prior),
		MaxTokens:  e.cfg.SlideMaxTokens,
	})
	if err != nil {
		logger.Warn(ctx, "slide chain failed, using fallback slide",
			"slide_id", stub.ID, "category", string(stub.Category), "error", err.Error())
		metrics.SlideFallbackTotal.WithLabelValues(string(stub.Category), "chain").Inc()
		return fallbackSlide(stub, sctx)
	}

	body, perr := parseSlideBody(raw)
	if perr != nil {
		logger.Warn(ctx, "slide response unparsable, using fallback slide",
			"slide_id", stub.ID, "category", string(stub.Category), "error", perr.Error())
		metrics.SlideFallbackTotal.WithLabelValues(string(stub.Category), "parse").Inc()
		return fallbackSlide(stub, sctx)
	}
	if !validSlideBody(body) {
		logger.Warn(ctx, "slide response missing headline or bullets, using fallback slide",
			"slide_id", stub.ID, "category", string(stub.Category))
		metrics.SlideFallbackTotal.WithLabelValues(string(stub.Category), "validate").Inc()
		return fallbackSlide(stub, sctx)
	}

	return entity.SlideContent{
		ID:       stub.ID,
		Title:    stub.Title,
		Category: stub.Category,
		Content:  body,
	}
}

func fallbackSlide(stub entity.SlideStub, sctx entity.StartupContext) entity.SlideContent {
	return entity.SlideContent{
		ID:       stub.ID,
		Title:    stub.Title,
		Category: stub.Category,
		Content:  fallbackSlideBody(stub.Title, sctx.Topic),
	}
}

// buildDigest 压缩已生成幻灯片为 标题+headline 摘要，只保留最近若干页
func buildDigest(prior []entity.SlideContent) []wfmodel.SlideDigest {
	start := 0
	if len(prior) > maxDigestSlides {
		start = len(prior) - maxDigestSlides
	}
	digest := make([]wfmodel.SlideDigest, 0, len(prior)-start)
	for _, s := range prior[start:] {
		digest = append(digest, wfmodel.SlideDigest{
			Title:    s.Title,
			Headline: s.Content.Headline,
		})
	}
	return digest
}
