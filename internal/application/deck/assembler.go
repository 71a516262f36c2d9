package deck

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pitchdeck-ai-api/internal/application/theme"
	"pitchdeck-ai-api/internal/config"
	"pitchdeck-ai-api/internal/domain/entity"
	"pitchdeck-ai-api/pkg/logger"
	"pitchdeck-ai-api/pkg/metrics"
)

// Assembler 文稿装配器：大纲 → 逐页展开 → 成稿。
// 展开严格串行，第 n 页的提示词依赖前 n-1 页的结果，
// 并行会破坏叙事链。仅大纲阶段的错误向上传播。
type Assembler struct {
	outline  *OutlineGenerator
	expander *SlideExpander
	themes   *theme.Registry
	cfg      *config.PipelineConfig
}

func NewAssembler(outline *OutlineGenerator, expander *SlideExpander, themes *theme.Registry, cfg *config.Config) *Assembler {
	return &Assembler{
		outline:  outline,
		expander: expander,
		themes:   themes,
		cfg:      &cfg.Pipeline,
	}
}

// AssembleDeck 完整生成一套文稿。themeID 为空时使用默认主题。
// 单页展开失败由展开器自愈，不会让整稿失败。
func (a *Assembler) AssembleDeck(ctx context.Context, sctx entity.StartupContext, themeID string) (*entity.GeneratedDeck, error) {
	outline, err := a.outline.Generate(ctx, sctx)
	if err != nil {
		metrics.DeckGenerationTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	return a.assemble(ctx, outline, sctx, themeID)
}

// AssembleFromOutline 从已有大纲装配，供会话流程在大纲确认后复用。
// 大纲为空时退化为完整生成。
func (a *Assembler) AssembleFromOutline(ctx context.Context, outline *entity.Outline, sctx entity.StartupContext, themeID string) (*entity.GeneratedDeck, error) {
	if outline == nil || len(outline.Stubs) == 0 {
		return a.AssembleDeck(ctx, sctx, themeID)
	}
	return a.assemble(ctx, outline, sctx, themeID)
}

func (a *Assembler) assemble(ctx context.Context, outline *entity.Outline, sctx entity.StartupContext, themeID string) (*entity.GeneratedDeck, error) {
	start := time.Now()
	resolvedTheme := a.themes.Resolve(themeID)

	slides := make([]entity.SlideContent, 0, len(outline.Stubs))
	for i, stub := range outline.Stubs {
		// 页间节流，尊重上游限速；取消生效时立即中断
		if i > 0 && a.cfg.SlidePacing > 0 {
			select {
			case <-ctx.Done():
				metrics.DeckGenerationTotal.WithLabelValues("canceled").Inc()
				return nil, ctx.Err()
			case <-time.After(a.cfg.SlidePacing):
			}
		}
		slides = append(slides, a.expander.Expand(ctx, stub, sctx, slides))
	}

	deck := &entity.GeneratedDeck{
		ID:        uuid.NewString(),
		Title:     deckTitle(slides, sctx),
		ThemeID:   resolvedTheme.ID,
		CreatedAt: time.Now().UTC(),
		Slides:    slides,
		Context:   sctx,
	}

	metrics.DeckGenerationTotal.WithLabelValues("success").Inc()
	metrics.DeckGenerationDuration.WithLabelValues(resolvedTheme.ID).Observe(time.Since(start).Seconds())
	metrics.DeckSlideCount.WithLabelValues(resolvedTheme.ID).Observe(float64(len(slides)))
	logger.Info(ctx, "deck assembled",
		"deck_id", deck.ID,
		"slides", len(slides),
		"theme", resolvedTheme.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return deck, nil
}

// deckTitle 取首页标题作为文稿标题，否则退化为描述前缀
func deckTitle(slides []entity.SlideContent, sctx entity.StartupContext) string {
	if len(slides) > 0 && strings.TrimSpace(slides[0].Title) != "" {
		return slides[0].Title
	}
	return firstWords(sctx.Topic, 8)
}
