// Package chain 基于 Eino compose 编排各生成工作流。
// 所有链都依赖 port.TextGateway 而非具体 ChatModel：网关保证
// Invoke 永不失败，链内的 llm 节点因此总能产出文本。
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

var defaultPromptRegistry = workflowprompt.NewRegistry()

// OutlineChain 大纲生成链：模板渲染 → 网关调用。
type OutlineChain struct {
	gateway workflowport.TextGateway

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.OutlineGenerateInput, string]
	chainErr  error
}

func NewOutlineChain(gateway workflowport.TextGateway) *OutlineChain {
	return &OutlineChain{gateway: gateway}
}

// Invoke 返回模型原始输出文本，解析与校验由调用方负责。
func (c *OutlineChain) Invoke(ctx context.Context, in *wfmodel.OutlineGenerateInput) (string, error) {
	if c == nil || c.gateway == nil {
		return "", fmt.Errorf("text gateway not configured")
	}
	if in == nil {
		return "", fmt.Errorf("input is nil")
	}

	chain, err := c.getChain()
	if err != nil {
		return "", err
	}
	return chain.Invoke(ctx, in)
}

type outlineChainState struct {
	In          *wfmodel.OutlineGenerateInput
	Instruction string
	Output      string
}

func (c *OutlineChain) getChain() (compose.Runnable[*wfmodel.OutlineGenerateInput, string], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *OutlineChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.OutlineGenerateInput, string], error) {
	chain := compose.NewChain[*wfmodel.OutlineGenerateInput, string]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, in *wfmodel.OutlineGenerateInput) (*outlineChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			return &outlineChainState{In: in}, nil
		}),
		compose.WithNodeName("outline.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *outlineChainState) (*outlineChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			instruction, err := formatOutlineInstruction(ctx, st.In)
			if err != nil {
				return nil, err
			}
			st.Instruction = instruction
			return st, nil
		}),
		compose.WithNodeName("outline.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *outlineChainState) (*outlineChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			st.Output = c.gateway.Invoke(ctx, st.Instruction, st.In.MaxTokens)
			return st, nil
		}),
		compose.WithNodeName("outline.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *outlineChainState) (string, error) {
			if st == nil {
				return "", fmt.Errorf("state is nil")
			}
			return st.Output, nil
		}),
		compose.WithNodeName("outline.finalize"),
	)

	return chain.Compile(ctx)
}

func formatOutlineInstruction(ctx context.Context, in *wfmodel.OutlineGenerateInput) (string, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptOutlineV1)
	if err != nil {
		return "", err
	}
	vars := map[string]any{
		"topic":             strings.TrimSpace(in.Topic),
		"industry":          orUnspecified(in.Industry),
		"audience":          orUnspecified(in.Audience),
		"funding_stage":     orUnspecified(in.FundingStage),
		"slide_count":       in.SlideCount,
		"raw_content_block": wfnode.BuildRawContentBlock(in.RawContent),
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", err
	}
	return wfnode.FlattenMessages(msgs), nil
}

func orUnspecified(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unspecified"
	}
	return s
}
