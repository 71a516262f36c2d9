package deck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pitchdeck-ai-api/internal/config"
	"pitchdeck-ai-api/internal/domain/entity"
	"pitchdeck-ai-api/internal/mocks"
	wfchain "pitchdeck-ai-api/internal/workflow/chain"
	apperrors "pitchdeck-ai-api/pkg/errors"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Pipeline: config.PipelineConfig{
			SlidePacing:       0,
			MaxSlides:         20,
			OutlineMaxTokens:  1500,
			SlideMaxTokens:    1200,
			RevisionMaxTokens: 1200,
		},
	}
}

func newOutlineGenerator(t *testing.T, gw *mocks.MockTextGateway) *OutlineGenerator {
	t.Helper()
	return NewOutlineGenerator(wfchain.NewOutlineChain(gw), newTestConfig())
}

func TestOutlineGenerator_EmptyTopicRejected(t *testing.T) {
	gen := newOutlineGenerator(t, mocks.NewMockTextGateway(t))

	_, err := gen.Generate(context.Background(), entity.StartupContext{Topic: "   "})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestOutlineGenerator_ParsesModelOutput(t *testing.T) {
	gw := mocks.NewMockTextGateway(t)
	gw.On("Invoke", mock.Anything, mock.Anything, mock.Anything).Return(`Here you go:
[
  {"id": 7, "title": "Opening", "category": "TITLE", "summary": "intro"},
  {"id": 9, "title": "Pain", "category": "problem", "summary": "the pain"},
  {"id": 3, "title": "Weird One", "category": "no-such-category", "summary": "misc"}
]`)

	gen := newOutlineGenerator(t, gw)
	outline, err := gen.Generate(context.Background(), entity.StartupContext{Topic: "AI bookkeeping", SlideCount: 3})
	require.NoError(t, err)

	require.Len(t, outline.Stubs, 3)
	// id 按出现顺序重排为 1..n，与模型给出的编号无关
	for i, stub := range outline.Stubs {
		assert.Equal(t, i+1, stub.ID)
	}
	assert.Equal(t, entity.CategoryTitle, outline.Stubs[0].Category)
	assert.Equal(t, entity.CategoryProblem, outline.Stubs[1].Category)
	// 未知类别归一化为 appendix
	assert.Equal(t, entity.CategoryAppendix, outline.Stubs[2].Category)
}

func TestOutlineGenerator_TruncatesToRequestedCount(t *testing.T) {
	long := `[
  {"title": "A", "category": "title"}, {"title": "B", "category": "problem"},
  {"title": "C", "category": "solution"}, {"title": "D", "category": "market"},
  {"title": "E", "category": "product"}, {"title": "F", "category": "traction"},
  {"title": "G", "category": "team"}, {"title": "H", "category": "ask"}
]`
	gw := mocks.NewMockTextGateway(t)
	gw.On("Invoke", mock.Anything, mock.Anything, mock.Anything).Return(long)

	gen := newOutlineGenerator(t, gw)
	outline, err := gen.Generate(context.Background(), entity.StartupContext{Topic: "drone delivery", SlideCount: 4})
	require.NoError(t, err)

	require.Len(t, outline.Stubs, 4)
	assert.Equal(t, []string{"A", "B", "C", "D"}, []string{
		outline.Stubs[0].Title, outline.Stubs[1].Title, outline.Stubs[2].Title, outline.Stubs[3].Title,
	})
}

func TestOutlineGenerator_FallbackOnGarbage(t *testing.T) {
	gw := mocks.NewMockTextGateway(t)
	gw.On("Invoke", mock.Anything, mock.Anything, mock.Anything).Return("sorry, I cannot help with that")

	gen := newOutlineGenerator(t, gw)
	outline, err := gen.Generate(context.Background(), entity.StartupContext{Topic: "vertical farming", SlideCount: 5})
	require.NoError(t, err)

	require.Len(t, outline.Stubs, 5)
	assert.Equal(t, entity.CategoryTitle, outline.Stubs[0].Category)
	for i, stub := range outline.Stubs {
		assert.Equal(t, i+1, stub.ID)
		assert.NotEmpty(t, stub.Title)
	}
}

func TestOutlineGenerator_ChainErrorFallbackCountsMatch(t *testing.T) {
	// 网关缺失让链本身报错；兜底大纲最多只有默认条目数，
	// TotalCount 必须跟随实际 stub 数量而非请求值
	gen := NewOutlineGenerator(wfchain.NewOutlineChain(nil), newTestConfig())

	outline, err := gen.Generate(context.Background(), entity.StartupContext{Topic: "AI bookkeeping", SlideCount: 15})
	require.NoError(t, err)

	assert.Equal(t, len(outline.Stubs), outline.TotalCount)
	assert.Len(t, outline.Stubs, 11)
	for i, stub := range outline.Stubs {
		assert.Equal(t, i+1, stub.ID)
	}
}

func TestOutlineGenerator_ClampsSlideCount(t *testing.T) {
	gw := mocks.NewMockTextGateway(t)
	gw.On("Invoke", mock.Anything, mock.Anything, mock.Anything).Return("garbage")

	gen := newOutlineGenerator(t, gw)

	// 未指定时取默认页数
	outline, err := gen.Generate(context.Background(), entity.StartupContext{Topic: "fintech"})
	require.NoError(t, err)
	assert.Len(t, outline.Stubs, 10)

	// 超出上限时截断
	outline, err = gen.Generate(context.Background(), entity.StartupContext{Topic: "fintech", SlideCount: 99})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(outline.Stubs), 20)
	assert.Equal(t, len(outline.Stubs), outline.TotalCount)
}
