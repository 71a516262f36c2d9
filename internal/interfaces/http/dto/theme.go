package dto

import "pitchdeck-ai-api/internal/domain/entity"

// ThemeResponse 主题响应
type ThemeResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Palette     entity.ThemePalette `json:"palette"`
	HeadingFont string              `json:"heading_font"`
	BodyFont    string              `json:"body_font"`
	Style       entity.ThemeStyle   `json:"style"`
	Default     bool                `json:"default"`
}

// NewThemeResponse 从实体构建主题响应
func NewThemeResponse(t entity.ThemeDescriptor, defaultID string) *ThemeResponse {
	return &ThemeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Palette:     t.Palette,
		HeadingFont: t.HeadingFont,
		BodyFont:    t.BodyFont,
		Style:       t.Style,
		Default:     t.ID == defaultID,
	}
}

// ThemeListResponse 主题列表响应
type ThemeListResponse struct {
	Themes []*ThemeResponse `json:"themes"`
}
