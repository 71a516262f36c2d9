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

// SlideChain 单页内容展开链
type SlideChain struct {
	gateway workflowport.TextGateway

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.SlideExpandInput, string]
	chainErr  error
}

func NewSlideChain(gateway workflowport.TextGateway) *SlideChain {
	return &SlideChain{gateway: gateway}
}

func (c *SlideChain) Invoke(ctx context.Context, in *wfmodel.SlideExpandInput) (string, error) {
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

type slideChainState struct {
	In          *wfmodel.SlideExpandInput
	Instruction string
	Output      string
}

func (c *SlideChain) getChain() (compose.Runnable[*wfmodel.SlideExpandInput, string], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *SlideChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.SlideExpandInput, string], error) {
	chain := compose.NewChain[*wfmodel.SlideExpandInput, string]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, in *wfmodel.SlideExpandInput) (*slideChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			return &slideChainState{In: in}, nil
		}),
		compose.WithNodeName("slide.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *slideChainState) (*slideChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			instruction, err := formatSlideInstruction(ctx, st.In)
			if err != nil {
				return nil, err
			}
			st.Instruction = instruction
			return st, nil
		}),
		compose.WithNodeName("slide.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *slideChainState) (*slideChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			st.Output = c.gateway.Invoke(ctx, st.Instruction, st.In.MaxTokens)
			return st, nil
		}),
		compose.WithNodeName("slide.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *slideChainState) (string, error) {
			if st == nil {
				return "", fmt.Errorf("state is nil")
			}
			return st.Output, nil
		}),
		compose.WithNodeName("slide.finalize"),
	)

	return chain.Compile(ctx)
}

func formatSlideInstruction(ctx context.Context, in *wfmodel.SlideExpandInput) (string, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptSlideContentV1)
	if err != nil {
		return "", err
	}
	vars := map[string]any{
		"topic":       strings.TrimSpace(in.Topic),
		"industry":    orUnspecified(in.Industry),
		"audience":    orUnspecified(in.Audience),
		"slide_title": strings.TrimSpace(in.SlideTitle),
		"category":    strings.TrimSpace(in.Category),
		"summary":     orUnspecified(in.Summary),
		"guidance":    orUnspecified(in.Guidance),
		"deck_digest": wfnode.BuildDigestBlock(in.Digest),
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", err
	}
	return wfnode.FlattenMessages(msgs), nil
}
