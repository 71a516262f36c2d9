package deck

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pitchdeck-ai-api/internal/domain/entity"
	"pitchdeck-ai-api/internal/mocks"
	wfchain "pitchdeck-ai-api/internal/workflow/chain"
)

func newSlideExpander(t *testing.T, gw *mocks.MockTextGateway) *SlideExpander {
	t.Helper()
	return NewSlideExpander(wfchain.NewSlideChain(gw), newTestConfig())
}

func TestSlideExpander_ParsesModelOutput(t *testing.T) {
	gw := mocks.NewMockTextGateway(t)
	gw.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"headline": "We cut invoice time by 90%", "subheadline": "Automation for SMB finance teams", "bullets": ["First", "Second"], "callout": "Launching Q3"}`)

	exp := newSlideExpander(t, gw)
	stub := entity.SlideStub{ID: 2, Title: "The Problem", Category: entity.CategoryProblem, Summary: "pain"}
	slide := exp.Expand(context.Background(), stub, entity.StartupContext{Topic: "AI bookkeeping"}, nil)

	assert.Equal(t, 2, slide.ID)
	assert.Equal(t, "The Problem", slide.Title)
	assert.Equal(t, entity.CategoryProblem, slide.Category)
	assert.Equal(t, "We cut invoice time by 90%", slide.Content.Headline)
	assert.Equal(t, []string{"First", "Second"}, slide.Content.Bullets)
}

func TestSlideExpander_QAChatBypassesGateway(t *testing.T) {
	// 问答页不应触发任何 Invoke，mock 上不设置期望即可验证
	gw := mocks.NewMockTextGateway(t)
	exp := newSlideExpander(t, gw)

	stub := entity.SlideStub{ID: 11, Title: "Investor Q&A", Category: entity.CategoryQAChat}
	slide := exp.Expand(context.Background(), stub, entity.StartupContext{Topic: "anything"}, nil)

	assert.Equal(t, 11, slide.ID)
	assert.Equal(t, "Ask Us Anything", slide.Content.Headline)
	assert.Equal(t, "chat", slide.Content.Icon)
	require.Len(t, slide.Content.Bullets, 3)
}

func TestSlideExpander_FallbackOnInvalidBody(t *testing.T) {
	// headline 为空的响应通不过校验，应退化为合成内容
	gw := mocks.NewMockTextGateway(t)
	gw.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"headline": "", "bullets": []}`)

	exp := newSlideExpander(t, gw)
	stub := entity.SlideStub{ID: 4, Title: "Market Opportunity", Category: entity.CategoryMarket}
	slide := exp.Expand(context.Background(), stub, entity.StartupContext{Topic: "drone delivery for rural clinics"}, nil)

	assert.Equal(t, "Market Opportunity", slide.Title)
	assert.Equal(t, "Market Opportunity: drone delivery for rural clinics", slide.Content.Headline)
	require.Len(t, slide.Content.Bullets, 3)
	assert.NotEmpty(t, slide.Content.Callout)
}

func TestSlideExpander_DigestKeepsRecentSlidesOnly(t *testing.T) {
	var captured string
	gw := mocks.NewMockTextGateway(t)
	gw.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.String(1)
		}).
		Return(`{"headline": "h", "bullets": ["b"]}`)

	prior := make([]entity.SlideContent, 0, 10)
	for i := 1; i <= 10; i++ {
		prior = append(prior, entity.SlideContent{
			ID:      i,
			Title:   fmt.Sprintf("Slide %02d", i),
			Content: entity.SlideBody{Headline: fmt.Sprintf("Headline %02d", i)},
		})
	}

	exp := newSlideExpander(t, gw)
	stub := entity.SlideStub{ID: 11, Title: "Financials", Category: entity.CategoryFinancials}
	exp.Expand(context.Background(), stub, entity.StartupContext{Topic: "t"}, prior)

	// 只保留最近 8 页的摘要
	assert.False(t, strings.Contains(captured, "Slide 01"))
	assert.False(t, strings.Contains(captured, "Slide 02"))
	for i := 3; i <= 10; i++ {
		assert.Contains(t, captured, fmt.Sprintf("Slide %02d", i))
	}
}
