package handler

import (
	"github.com/gin-gonic/gin"

	"pitchdeck-ai-api/internal/application/theme"
	"pitchdeck-ai-api/internal/interfaces/http/dto"
)

// ThemeHandler 主题处理器
type ThemeHandler struct {
	registry *theme.Registry
}

// NewThemeHandler 创建主题处理器
func NewThemeHandler(registry *theme.Registry) *ThemeHandler {
	return &ThemeHandler{registry: registry}
}

// List 主题列表
// @Summary 列出全部渲染主题
// @Tags Theme
// @Produce json
// @Success 200 {object} dto.Response[dto.ThemeListResponse]
// @Router /v1/themes [get]
func (h *ThemeHandler) List(c *gin.Context) {
	all := h.registry.List()
	out := make([]*dto.ThemeResponse, 0, len(all))
	for _, t := range all {
		out = append(out, dto.NewThemeResponse(t, theme.DefaultThemeID))
	}
	dto.Success(c, &dto.ThemeListResponse{Themes: out})
}

// Get 查询主题。未知 id 返回 404，区别于生成路径上的静默兜底。
// @Summary 查询单个主题
// @Tags Theme
// @Produce json
// @Success 200 {object} dto.Response[dto.ThemeResponse]
// @Router /v1/themes/{id} [get]
func (h *ThemeHandler) Get(c *gin.Context) {
	t, ok := h.registry.Lookup(c.Param("id"))
	if !ok {
		dto.NotFound(c, "theme not found")
		return
	}
	dto.Success(c, dto.NewThemeResponse(t, theme.DefaultThemeID))
}
