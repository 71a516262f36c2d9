// Package router 提供 HTTP 路由配置
package router

import (
	"pitchdeck-ai-api/internal/interfaces/http/handler"

	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(
	v1 *gin.RouterGroup,
	sessionHandler *handler.SessionHandler,
	themeHandler *handler.ThemeHandler,
) {
	// 会话管理
	sessions := v1.Group("/sessions")
	{
		sessions.POST("", sessionHandler.Create)
		sessions.GET("/:sid", sessionHandler.Get)
		sessions.DELETE("/:sid", sessionHandler.Delete)

		// 生成流程
		sessions.POST("/:sid/outline", sessionHandler.GenerateOutline)
		sessions.POST("/:sid/deck", sessionHandler.GenerateDeck)

		// 修订
		sessions.POST("/:sid/slides/:id/revise", sessionHandler.ReviseSlide)
		sessions.POST("/:sid/slides/:id/revise-field", sessionHandler.ReviseField)
		sessions.POST("/:sid/deck/revise", sessionHandler.ReviseDeckWide)

		// 主题
		sessions.PUT("/:sid/theme", sessionHandler.SetTheme)
	}

	// 主题目录
	themes := v1.Group("/themes")
	{
		themes.GET("", themeHandler.List)
		themes.GET("/:id", themeHandler.Get)
	}
}
