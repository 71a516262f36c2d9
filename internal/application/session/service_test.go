package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pitchdeck-ai-api/internal/application/deck"
	"pitchdeck-ai-api/internal/application/theme"
	"pitchdeck-ai-api/internal/config"
	"pitchdeck-ai-api/internal/domain/entity"
	"pitchdeck-ai-api/internal/infrastructure/persistence/memory"
	"pitchdeck-ai-api/internal/mocks"
	wfchain "pitchdeck-ai-api/internal/workflow/chain"
	apperrors "pitchdeck-ai-api/pkg/errors"
)

// newTestService 组装一套走真实链路、由 mock 网关驱动的会话服务。
// gw 不返回合法 JSON 时，生成组件全部走兜底，状态机行为不变。
func newTestService(t *testing.T, gw *mocks.MockTextGateway) *Service {
	t.Helper()
	cfg := &config.Config{
		Pipeline: config.PipelineConfig{
			SlidePacing:       0,
			MaxSlides:         20,
			OutlineMaxTokens:  1500,
			SlideMaxTokens:    1200,
			RevisionMaxTokens: 1200,
		},
		Session: config.SessionConfig{TTL: time.Hour, SweepInterval: time.Minute},
	}

	store := memory.NewSessionStore(cfg)
	themes := theme.NewRegistry()
	outline := deck.NewOutlineGenerator(wfchain.NewOutlineChain(gw), cfg)
	expander := deck.NewSlideExpander(wfchain.NewSlideChain(gw), cfg)
	revision := deck.NewRevisionEngine(wfchain.NewRevisionChain(gw), cfg)
	assembler := deck.NewAssembler(outline, expander, themes, cfg)
	return NewService(store, outline, assembler, revision, themes)
}

func stubGateway(t *testing.T) *mocks.MockTextGateway {
	t.Helper()
	gw := mocks.NewMockTextGateway(t)
	gw.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"headline": "A headline", "bullets": ["One", "Two"]}`).
		Maybe()
	return gw
}

func TestService_CreateValidatesTopic(t *testing.T) {
	svc := newTestService(t, stubGateway(t))

	_, err := svc.Create(context.Background(), entity.StartupContext{Topic: "  "}, "")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.AsAppError(err).Code)
}

func TestService_StateMachineProgression(t *testing.T) {
	svc := newTestService(t, stubGateway(t))
	ctx := context.Background()

	sess, err := svc.Create(ctx, entity.StartupContext{Topic: "AI bookkeeping", SlideCount: 3}, "classic")
	require.NoError(t, err)
	assert.Equal(t, entity.StateNoOutline, sess.State)
	assert.Equal(t, "classic", sess.ThemeID)
	assert.Nil(t, sess.Outline)
	assert.Nil(t, sess.Deck)

	sess, err = svc.GenerateOutline(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StateOutlineReady, sess.State)
	require.NotNil(t, sess.Outline)
	assert.Len(t, sess.Outline.Stubs, 3)

	sess, err = svc.GenerateDeck(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StateDeckReady, sess.State)
	require.NotNil(t, sess.Deck)
	assert.Len(t, sess.Deck.Slides, 3)
	assert.Equal(t, "classic", sess.Deck.ThemeID)
}

func TestService_GenerateDeckWithoutOutline(t *testing.T) {
	svc := newTestService(t, stubGateway(t))
	ctx := context.Background()

	sess, err := svc.Create(ctx, entity.StartupContext{Topic: "robotics", SlideCount: 2}, "")
	require.NoError(t, err)

	// 跳过大纲直接生成：内部先完整生成，再反推大纲保持自洽
	sess, err = svc.GenerateDeck(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StateDeckReady, sess.State)
	require.NotNil(t, sess.Outline)
	assert.Equal(t, len(sess.Deck.Slides), len(sess.Outline.Stubs))
}

func TestService_RegenerateOutlineDiscardsDeck(t *testing.T) {
	svc := newTestService(t, stubGateway(t))
	ctx := context.Background()

	sess, err := svc.Create(ctx, entity.StartupContext{Topic: "fintech", SlideCount: 2}, "")
	require.NoError(t, err)
	_, err = svc.GenerateDeck(ctx, sess.ID)
	require.NoError(t, err)

	sess, err = svc.GenerateOutline(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StateOutlineReady, sess.State)
	assert.Nil(t, sess.Deck)
}

func TestService_RevisionRequiresDeck(t *testing.T) {
	svc := newTestService(t, stubGateway(t))
	ctx := context.Background()

	sess, err := svc.Create(ctx, entity.StartupContext{Topic: "fintech"}, "")
	require.NoError(t, err)

	_, err = svc.ReviseSlide(ctx, sess.ID, 1, "shorter")
	assert.ErrorIs(t, err, apperrors.ErrDeckNotReady)

	_, err = svc.ReviseField(ctx, sess.ID, 1, "shorter")
	assert.ErrorIs(t, err, apperrors.ErrDeckNotReady)

	_, err = svc.ReviseDeckWide(ctx, sess.ID, "shorter")
	assert.ErrorIs(t, err, apperrors.ErrDeckNotReady)
}

func TestService_ReviseSlideUnknownID(t *testing.T) {
	svc := newTestService(t, stubGateway(t))
	ctx := context.Background()

	sess, err := svc.Create(ctx, entity.StartupContext{Topic: "fintech", SlideCount: 2}, "")
	require.NoError(t, err)
	_, err = svc.GenerateDeck(ctx, sess.ID)
	require.NoError(t, err)

	_, err = svc.ReviseSlide(ctx, sess.ID, 99, "anything")
	assert.ErrorIs(t, err, apperrors.ErrSlideNotFound)
}

func TestService_ReviseSlideReplacesInPlace(t *testing.T) {
	svc := newTestService(t, stubGateway(t))
	ctx := context.Background()

	sess, err := svc.Create(ctx, entity.StartupContext{Topic: "fintech", SlideCount: 2}, "")
	require.NoError(t, err)
	sess, err = svc.GenerateDeck(ctx, sess.ID)
	require.NoError(t, err)
	before := len(sess.Deck.Slides)

	sess, err = svc.ReviseSlide(ctx, sess.ID, 1, "use stronger verbs")
	require.NoError(t, err)
	assert.Len(t, sess.Deck.Slides, before)
	assert.Equal(t, 1, sess.Deck.Slides[0].ID)
}

func TestService_ReviseFieldWritesTitleBack(t *testing.T) {
	gw := mocks.NewMockTextGateway(t)
	gw.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"title": "Sharper Title", "content": "A tighter one-paragraph summary.", "headline": "h", "bullets": ["b"]}`).
		Maybe()
	svc := newTestService(t, gw)
	ctx := context.Background()

	sess, err := svc.Create(ctx, entity.StartupContext{Topic: "fintech", SlideCount: 1}, "")
	require.NoError(t, err)
	_, err = svc.GenerateDeck(ctx, sess.ID)
	require.NoError(t, err)

	rev, err := svc.ReviseField(ctx, sess.ID, 1, "sharpen the title")
	require.NoError(t, err)
	assert.Equal(t, "Sharper Title", rev.Title)
	assert.Equal(t, "A tighter one-paragraph summary.", rev.Content)

	sess, err = svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sharper Title", sess.Deck.Slides[0].Title)
}

func TestService_SetThemePropagatesToDeck(t *testing.T) {
	svc := newTestService(t, stubGateway(t))
	ctx := context.Background()

	sess, err := svc.Create(ctx, entity.StartupContext{Topic: "fintech", SlideCount: 1}, "")
	require.NoError(t, err)
	_, err = svc.GenerateDeck(ctx, sess.ID)
	require.NoError(t, err)

	sess, err = svc.SetTheme(ctx, sess.ID, "dark")
	require.NoError(t, err)
	assert.Equal(t, "dark", sess.ThemeID)
	assert.Equal(t, "dark", sess.Deck.ThemeID)

	// 未知主题落回默认主题而非报错
	sess, err = svc.SetTheme(ctx, sess.ID, "no-such-theme")
	require.NoError(t, err)
	assert.Equal(t, theme.DefaultThemeID, sess.ThemeID)
}

func TestService_GetUnknownSession(t *testing.T) {
	svc := newTestService(t, stubGateway(t))
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestService_DeleteIsIdempotent(t *testing.T) {
	svc := newTestService(t, stubGateway(t))
	ctx := context.Background()

	sess, err := svc.Create(ctx, entity.StartupContext{Topic: "fintech"}, "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, sess.ID))
	require.NoError(t, svc.Delete(ctx, sess.ID))

	_, err = svc.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}
