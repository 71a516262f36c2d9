// Package session 管理文稿创作会话的状态机：
// no-outline → outline-ready → deck-ready。
package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pitchdeck-ai-api/internal/application/deck"
	"pitchdeck-ai-api/internal/application/theme"
	"pitchdeck-ai-api/internal/domain/entity"
	"pitchdeck-ai-api/internal/infrastructure/persistence/memory"
	apperrors "pitchdeck-ai-api/pkg/errors"
	"pitchdeck-ai-api/pkg/logger"
)

// Service 会话服务。生成组件自身永不失败（自愈兜底），
// 这里抛出的错误全部属于调用方误用：空描述、未知会话、
// 未知幻灯片、文稿未就绪。
type Service struct {
	store     *memory.SessionStore
	outline   *deck.OutlineGenerator
	assembler *deck.Assembler
	revision  *deck.RevisionEngine
	themes    *theme.Registry
}

func NewService(
	store *memory.SessionStore,
	outline *deck.OutlineGenerator,
	assembler *deck.Assembler,
	revision *deck.RevisionEngine,
	themes *theme.Registry,
) *Service {
	return &Service{
		store:     store,
		outline:   outline,
		assembler: assembler,
		revision:  revision,
		themes:    themes,
	}
}

// Create 创建会话。描述为空是调用方误用，直接报错。
func (s *Service) Create(ctx context.Context, sctx entity.StartupContext, themeID string) (*entity.Session, error) {
	if strings.TrimSpace(sctx.Topic) == "" {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "startup description must not be empty")
	}

	sess := &entity.Session{
		ID:        uuid.NewString(),
		State:     entity.StateNoOutline,
		Context:   sctx,
		ThemeID:   s.themes.Resolve(themeID).ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	logger.Info(ctx, "session created", "session_id", sess.ID)
	return sess, nil
}

// Get 读取会话
func (s *Service) Get(ctx context.Context, id string) (*entity.Session, error) {
	return s.store.Get(ctx, id)
}

// Delete 删除会话，幂等
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// GenerateOutline 生成（或重新生成）大纲。
// 重新生成会丢弃已有文稿，状态回到 outline-ready。
func (s *Service) GenerateOutline(ctx context.Context, id string) (*entity.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	outline, err := s.outline.Generate(ctx, sess.Context)
	if err != nil {
		return nil, err
	}

	sess.Outline = outline
	sess.Deck = nil
	sess.State = entity.StateOutlineReady
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// GenerateDeck 从当前大纲装配文稿；尚无大纲时先完整生成。
func (s *Service) GenerateDeck(ctx context.Context, id string) (*entity.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	d, err := s.assembler.AssembleFromOutline(ctx, sess.Outline, sess.Context, sess.ThemeID)
	if err != nil {
		return nil, err
	}

	if sess.Outline == nil {
		sess.Outline = outlineFromDeck(d)
	}
	sess.Deck = d
	sess.State = entity.StateDeckReady
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ReviseSlide 整页修订并替换文稿中的对应页。
func (s *Service) ReviseSlide(ctx context.Context, id string, slideID int, instruction string) (*entity.Session, error) {
	sess, slide, err := s.slideForRevision(ctx, id, slideID)
	if err != nil {
		return nil, err
	}

	revised := s.revision.ReviseSlide(ctx, *slide, instruction, sess.Context)
	*slide = revised
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ReviseField 轻量修订：改进标题与正文摘要。
// 标题写回文稿，摘要作为结果返回，不改动结构化正文。
func (s *Service) ReviseField(ctx context.Context, id string, slideID int, instruction string) (deck.FieldRevision, error) {
	sess, slide, err := s.slideForRevision(ctx, id, slideID)
	if err != nil {
		return deck.FieldRevision{}, err
	}

	rev := s.revision.ReviseField(ctx, slide.Title, slide.Content.Headline, slide.Category, instruction, sess.Context)
	slide.Title = rev.Title
	if err := s.store.Put(ctx, sess); err != nil {
		return deck.FieldRevision{}, err
	}
	return rev, nil
}

// ReviseDeckWide 全稿修订，页数与顺序保持不变。
func (s *Service) ReviseDeckWide(ctx context.Context, id string, instruction string) (*entity.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Deck == nil {
		return nil, apperrors.ErrDeckNotReady
	}

	sess.Deck.Slides = s.revision.ReviseDeckWide(ctx, sess.Deck, instruction)
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetTheme 更换主题。主题解析是全函数，未知 id 落默认主题。
func (s *Service) SetTheme(ctx context.Context, id string, themeID string) (*entity.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resolved := s.themes.Resolve(themeID)
	sess.ThemeID = resolved.ID
	if sess.Deck != nil {
		sess.Deck.ThemeID = resolved.ID
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) slideForRevision(ctx context.Context, id string, slideID int) (*entity.Session, *entity.SlideContent, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sess.Deck == nil {
		return nil, nil, apperrors.ErrDeckNotReady
	}
	slide := sess.Deck.SlideByID(slideID)
	if slide == nil {
		return nil, nil, apperrors.ErrSlideNotFound
	}
	return sess, slide, nil
}

// outlineFromDeck 从成稿反推大纲，保证会话状态对外自洽
func outlineFromDeck(d *entity.GeneratedDeck) *entity.Outline {
	stubs := make([]entity.SlideStub, 0, len(d.Slides))
	for _, s := range d.Slides {
		stubs = append(stubs, entity.SlideStub{
			ID:       s.ID,
			Title:    s.Title,
			Category: s.Category,
		})
	}
	return &entity.Outline{Stubs: stubs, TotalCount: len(stubs)}
}
