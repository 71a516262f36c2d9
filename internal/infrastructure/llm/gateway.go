package llm

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"pitchdeck-ai-api/internal/config"
	"pitchdeck-ai-api/internal/workflow/port"
	"pitchdeck-ai-api/pkg/logger"
	"pitchdeck-ai-api/pkg/metrics"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Gateway 生成式文本网关。对上游的所有调用在此收口：
//   - 演示模式（无有效凭据）直接走合成文本；
//   - 上游调用单次尝试，失败或空响应退化为合成文本；
//   - Invoke 因此永不返回错误，管线其余部分不感知上游可用性。
type Gateway struct {
	factory  port.ChatModelFactory
	cfg      *config.LLMConfig
	demoMode bool
	group    singleflight.Group
}

var _ port.TextGateway = (*Gateway)(nil)

// NewGateway 创建文本网关。演示模式在构造时定格，运行期不再变化。
func NewGateway(cfg *config.Config, factory port.ChatModelFactory) *Gateway {
	return &Gateway{
		factory:  factory,
		cfg:      &cfg.LLM,
		demoMode: cfg.LLM.EffectiveDemoMode(),
	}
}

// DemoMode 网关是否处于演示模式
func (g *Gateway) DemoMode() bool {
	return g != nil && g.demoMode
}

// Invoke 执行一次文本生成。永不返回错误：任何失败都退化为
// 与指令对应的确定性合成文本。相同指令的并发调用会被 singleflight
// 合并为一次上游请求。
func (g *Gateway) Invoke(ctx context.Context, instruction string, maxTokens int) string {
	if g == nil {
		return SyntheticText(instruction)
	}
	if g.demoMode {
		metrics.GatewayFallbackTotal.WithLabelValues("demo_mode").Inc()
		return SyntheticText(instruction)
	}

	v, _, _ := g.group.Do(instruction, func() (interface{}, error) {
		return g.invokeUpstream(ctx, instruction, maxTokens), nil
	})
	text, _ := v.(string)
	return text
}

// invokeUpstream 单次上游调用，不重试；失败路径返回合成文本。
func (g *Gateway) invokeUpstream(ctx context.Context, instruction string, maxTokens int) string {
	provider := g.cfg.DefaultProvider
	modelName := ""
	if p, ok := g.cfg.Providers[provider]; ok {
		modelName = p.Model
	}

	chatModel, err := g.factory.Get(ctx, provider)
	if err != nil {
		logger.Warn(ctx, "chat model unavailable, falling back to synthetic text",
			"provider", provider,
			"error", err.Error(),
		)
		metrics.GatewayFallbackTotal.WithLabelValues("upstream_error").Inc()
		return SyntheticText(instruction)
	}

	opts := make([]model.Option, 0, 1)
	if maxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(maxTokens))
	}

	start := time.Now()
	msg, err := chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(instruction)}, opts...)
	duration := time.Since(start).Seconds()
	metrics.LLMCallDuration.WithLabelValues(provider, modelName).Observe(duration)

	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(provider, modelName, "error").Inc()
		metrics.GatewayFallbackTotal.WithLabelValues("upstream_error").Inc()
		logger.Warn(ctx, "llm call failed, falling back to synthetic text",
			"provider", provider,
			"error", err.Error(),
		)
		return SyntheticText(instruction)
	}

	content := ""
	if msg != nil {
		content = strings.TrimSpace(msg.Content)
	}
	if content == "" {
		metrics.LLMCallTotal.WithLabelValues(provider, modelName, "empty").Inc()
		metrics.GatewayFallbackTotal.WithLabelValues("empty_response").Inc()
		logger.Warn(ctx, "llm returned empty content, falling back to synthetic text",
			"provider", provider,
		)
		return SyntheticText(instruction)
	}

	metrics.LLMCallTotal.WithLabelValues(provider, modelName, "success").Inc()
	if msg.ResponseMeta != nil && msg.ResponseMeta.Usage != nil {
		usage := msg.ResponseMeta.Usage
		metrics.LLMTokensUsed.WithLabelValues(provider, modelName, "prompt").Add(float64(usage.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(provider, modelName, "completion").Add(float64(usage.CompletionTokens))
	}
	return content
}
