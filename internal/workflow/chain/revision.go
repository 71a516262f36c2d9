package chain

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino/compose"

	wfmodel "pitchdeck-ai-api/internal/workflow/model"
	wfnode "pitchdeck-ai-api/internal/workflow/node"
	workflowport "pitchdeck-ai-api/internal/workflow/port"
	workflowprompt "pitchdeck-ai-api/internal/workflow/prompt"
)

// RevisionChain 修订链：整页修订与单字段修订共用一条链，
// 按输入类型选择提示词模板。
type RevisionChain struct {
	gateway workflowport.TextGateway

	slideOnce sync.Once
	slide     compose.Runnable[*wfmodel.ReviseSlideInput, string]
	slideErr  error

	fieldOnce sync.Once
	field     compose.Runnable[*wfmodel.ReviseFieldInput, string]
	fieldErr  error
}

func NewRevisionChain(gateway workflowport.TextGateway) *RevisionChain {
	return &RevisionChain{gateway: gateway}
}

// InvokeSlide 整页修订，返回模型原始输出文本。
func (c *RevisionChain) InvokeSlide(ctx context.Context, in *wfmodel.ReviseSlideInput) (string, error) {
	if c == nil || c.gateway == nil {
		return "", fmt.Errorf("text gateway not configured")
	}
	if in == nil {
		return "", fmt.Errorf("input is nil")
	}

	c.slideOnce.Do(func() {
		c.slide, c.slideErr = buildGatewayChain(context.Background(), "revise_slide", c.gateway, formatReviseSlideInstruction,
			func(in *wfmodel.ReviseSlideInput) int { return in.MaxTokens })
	})
	if c.slideErr != nil {
		return "", c.slideErr
	}
	return c.slide.Invoke(ctx, in)
}

// InvokeField 单字段修订，返回改写后的纯文本。
func (c *RevisionChain) InvokeField(ctx context.Context, in *wfmodel.ReviseFieldInput) (string, error) {
	if c == nil || c.gateway == nil {
		return "", fmt.Errorf("text gateway not configured")
	}
	if in == nil {
		return "", fmt.Errorf("input is nil")
	}

	c.fieldOnce.Do(func() {
		c.field, c.fieldErr = buildGatewayChain(context.Background(), "revise_field", c.gateway, formatReviseFieldInstruction,
			func(in *wfmodel.ReviseFieldInput) int { return in.MaxTokens })
	})
	if c.fieldErr != nil {
		return "", c.fieldErr
	}
	return c.field.Invoke(ctx, in)
}

type gatewayChainState[T any] struct {
	In          T
	Instruction string
	Output      string
}

// buildGatewayChain 通用的 模板 → 网关 两段式链
func buildGatewayChain[T any](
	ctx context.Context,
	name string,
	gateway workflowport.TextGateway,
	format func(context.Context, T) (string, error),
	maxTokens func(T) int,
) (compose.Runnable[T, string], error) {
	chain := compose.NewChain[T, string]()

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, in T) (*gatewayChainState[T], error) {
			instruction, err := format(ctx, in)
			if err != nil {
				return nil, err
			}
			return &gatewayChainState[T]{In: in, Instruction: instruction}, nil
		}),
		compose.WithNodeName(name+".template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *gatewayChainState[T]) (string, error) {
			if st == nil {
				return "", fmt.Errorf("state is nil")
			}
			return gateway.Invoke(ctx, st.Instruction, maxTokens(st.In)), nil
		}),
		compose.WithNodeName(name+".llm"),
	)

	return chain.Compile(ctx)
}

func formatReviseSlideInstruction(ctx context.Context, in *wfmodel.ReviseSlideInput) (string, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptReviseSlideV1)
	if err != nil {
		return "", err
	}
	vars := map[string]any{
		"topic":       strings.TrimSpace(in.Topic),
		"slide_title": strings.TrimSpace(in.SlideTitle),
		"category":    strings.TrimSpace(in.Category),
		"slide_json":  strings.TrimSpace(in.SlideJSON),
		"instruction": strings.TrimSpace(in.Instruction),
		"guidance":    orUnspecified(in.Guidance),
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", err
	}
	return wfnode.FlattenMessages(msgs), nil
}

func formatReviseFieldInstruction(ctx context.Context, in *wfmodel.ReviseFieldInput) (string, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptReviseFieldV1)
	if err != nil {
		return "", err
	}
	vars := map[string]any{
		"topic":         strings.TrimSpace(in.Topic),
		"slide_title":   strings.TrimSpace(in.SlideTitle),
		"category":      strings.TrimSpace(in.Category),
		"current_value": in.CurrentValue,
		"instruction":   strings.TrimSpace(in.Instruction),
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", err
	}
	return wfnode.FlattenMessages(msgs), nil
}
