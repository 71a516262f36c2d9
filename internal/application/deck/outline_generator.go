package deck

import (
	"context"
	"strings"

	"pitchdeck-ai-api/internal/config"
	"pitchdeck-ai-api/internal/domain/entity"
	wfchain "pitchdeck-ai-api/internal/workflow/chain"
	wfmodel "pitchdeck-ai-api/internal/workflow/model"
	apperrors "pitchdeck-ai-api/pkg/errors"
	"pitchdeck-ai-api/pkg/logger"
)

const defaultSlideCount = 10

// OutlineGenerator 大纲生成器。唯一会向调用方抛错的生成组件：
// 空描述属于调用方误用；生成与解析失败则静默退化为兜底大纲。
type OutlineGenerator struct {
	chain *wfchain.OutlineChain
	cfg   *config.PipelineConfig
}

func NewOutlineGenerator(chain *wfchain.OutlineChain, cfg *config.Config) *OutlineGenerator {
	return &OutlineGenerator{chain: chain, cfg: &cfg.Pipeline}
}

// Generate 根据创业描述生成大纲。
// 产出保证：TotalCount 等于 stub 数量，id 连续从 1 开始；
// 兜底大纲最多只有默认条目数，可能少于请求值。
func (g *OutlineGenerator) Generate(ctx context.Context, sctx entity.StartupContext) (*entity.Outline, error) {
	topic := strings.TrimSpace(sctx.Topic)
	if topic == "" {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "startup description must not be empty")
	}

	count := g.clampSlideCount(sctx.SlideCount)

	raw, err := g.chain.Invoke(ctx, &wfmodel.OutlineGenerateInput{
		Topic:        topic,
		Industry:     sctx.Industry,
		Audience:     sctx.Audience,
		FundingStage: sctx.FundingStage,
		SlideCount:   count,
		RawContent:   sctx.RawContent,
		MaxTokens:    g.cfg.OutlineMaxTokens,
	})
	if err != nil {
		// 链本身失败（模板缺失等）也走兜底，保持大纲总能产出
		logger.Warn(ctx, "outline chain failed, using fallback outline", "error", err.Error())
		stubs := fallbackOutline(topic, count)
		return &entity.Outline{Stubs: stubs, TotalCount: len(stubs)}, nil
	}

	stubs, perr := parseOutlineStubs(raw)
	if perr != nil {
		logger.Warn(ctx, "outline response unusable, using fallback outline", "error", perr.Error())
		stubs = fallbackOutline(topic, count)
	} else {
		stubs = fitToCount(stubs, count, topic)
	}

	return &entity.Outline{Stubs: stubs, TotalCount: len(stubs)}, nil
}

// clampSlideCount 请求数量裁剪到 [1, MaxSlides]，未指定时取默认值
func (g *OutlineGenerator) clampSlideCount(n int) int {
	if n <= 0 {
		return defaultSlideCount
	}
	if g.cfg.MaxSlides > 0 && n > g.cfg.MaxSlides {
		return g.cfg.MaxSlides
	}
	return n
}

// fitToCount 把解析结果调整到请求数量：超出截断，不足用兜底补齐，
// 最后统一重排 id。
func fitToCount(stubs []entity.SlideStub, count int, topic string) []entity.SlideStub {
	if len(stubs) > count {
		stubs = stubs[:count]
	}
	for len(stubs) < count {
		pad := fallbackOutline(topic, count)
		idx := len(stubs)
		if idx >= len(pad) {
			idx = len(pad) - 1
		}
		stubs = append(stubs, pad[idx])
	}
	for i := range stubs {
		stubs[i].ID = i + 1
	}
	return stubs
}
