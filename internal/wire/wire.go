// Package wire 提供依赖注入配置。
// 依赖图足够小，这里手工装配而不引入代码生成。
package wire

import (
	"context"

	"pitchdeck-ai-api/internal/application/deck"
	"pitchdeck-ai-api/internal/application/session"
	"pitchdeck-ai-api/internal/application/theme"
	"pitchdeck-ai-api/internal/config"
	"pitchdeck-ai-api/internal/infrastructure/llm"
	"pitchdeck-ai-api/internal/infrastructure/persistence/memory"
	"pitchdeck-ai-api/internal/interfaces/http/handler"
	"pitchdeck-ai-api/internal/interfaces/http/router"
	wfchain "pitchdeck-ai-api/internal/workflow/chain"
)

// App 装配完成的应用
type App struct {
	Router  *router.Router
	Store   *memory.SessionStore
	Gateway *llm.Gateway
}

// InitializeApp 初始化整个应用
func InitializeApp(ctx context.Context, cfg *config.Config, version string) *App {
	// 基础设施
	factory := llm.NewEinoFactory(cfg)
	gateway := llm.NewGateway(cfg, factory)
	store := memory.NewSessionStore(cfg)
	limiter := memory.NewRateLimiter()

	// 工作流
	outlineChain := wfchain.NewOutlineChain(gateway)
	slideChain := wfchain.NewSlideChain(gateway)
	revisionChain := wfchain.NewRevisionChain(gateway)

	// 应用层
	themes := theme.NewRegistry()
	outlineGen := deck.NewOutlineGenerator(outlineChain, cfg)
	expander := deck.NewSlideExpander(slideChain, cfg)
	revision := deck.NewRevisionEngine(revisionChain, cfg)
	assembler := deck.NewAssembler(outlineGen, expander, themes, cfg)
	sessionSvc := session.NewService(store, outlineGen, assembler, revision, themes)

	// 接口层
	handlers := router.Handlers{
		Health:  handler.NewHealthHandler(gateway, version),
		Session: handler.NewSessionHandler(sessionSvc),
		Theme:   handler.NewThemeHandler(themes),
	}
	r := router.New(cfg, handlers, limiter)

	// 后台清扫
	store.StartSweeper(ctx)

	return &App{
		Router:  r,
		Store:   store,
		Gateway: gateway,
	}
}
