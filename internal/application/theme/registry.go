// Package theme 管理渲染主题目录。
package theme

import "pitchdeck-ai-api/internal/domain/entity"

// DefaultThemeID 默认主题
const DefaultThemeID = "modern"

// Registry 主题注册表。目录在编译期固化，Resolve 是全函数：
// 未知 id 一律落到默认主题，主题查找永不失败。
type Registry struct {
	themes map[string]entity.ThemeDescriptor
	order  []string
}

func NewRegistry() *Registry {
	catalog := []entity.ThemeDescriptor{
		{
			ID:          "modern",
			Name:        "Modern",
			Description: "Clean sans-serif look with a cool accent palette, the house default.",
			Palette: entity.ThemePalette{
				Primary:    "#1A73E8",
				Secondary:  "#0D1B2A",
				Accent:     "#34A853",
				Text:       "#1F2933",
				Background: "#FFFFFF",
				Surface:    "#F5F7FA",
			},
			HeadingFont: "Inter",
			BodyFont:    "Inter",
			Style: entity.ThemeStyle{
				CornerRadius: 12,
				Shadow:       "0 4px 16px rgba(13, 27, 42, 0.08)",
			},
		},
		{
			ID:          "classic",
			Name:        "Classic",
			Description: "Serif headings and muted tones for conservative audiences.",
			Palette: entity.ThemePalette{
				Primary:    "#1B263B",
				Secondary:  "#415A77",
				Accent:     "#B08968",
				Text:       "#22223B",
				Background: "#FDFCFB",
				Surface:    "#E0E1DD",
			},
			HeadingFont: "Playfair Display",
			BodyFont:    "Source Serif Pro",
			Style: entity.ThemeStyle{
				CornerRadius: 4,
				Shadow:       "0 2px 8px rgba(27, 38, 59, 0.12)",
			},
		},
		{
			ID:          "vibrant",
			Name:        "Vibrant",
			Description: "High-contrast statement style for crowded demo days.",
			Palette: entity.ThemePalette{
				Primary:    "#FF3B30",
				Secondary:  "#111111",
				Accent:     "#FFCC00",
				Text:       "#111111",
				Background: "#FFFFFF",
				Surface:    "#FFF4F2",
			},
			HeadingFont: "Archivo Black",
			BodyFont:    "Inter",
			Style: entity.ThemeStyle{
				CornerRadius: 16,
				Shadow:       "0 8px 24px rgba(255, 59, 48, 0.18)",
				Gradient:     "linear-gradient(135deg, #FF3B30 0%, #FFCC00 100%)",
			},
		},
		{
			ID:          "dark",
			Name:        "Dark",
			Description: "Dark background with neon accents, suited to developer tools.",
			Palette: entity.ThemePalette{
				Primary:    "#7C3AED",
				Secondary:  "#22D3EE",
				Accent:     "#A5B4FC",
				Text:       "#E2E8F0",
				Background: "#0B0F19",
				Surface:    "#151B2B",
			},
			HeadingFont: "Space Grotesk",
			BodyFont:    "IBM Plex Sans",
			Style: entity.ThemeStyle{
				CornerRadius: 10,
				Shadow:       "0 4px 20px rgba(124, 58, 237, 0.25)",
				Gradient:     "linear-gradient(180deg, #0B0F19 0%, #151B2B 100%)",
			},
		},
		{
			ID:          "minimal",
			Name:        "Minimal",
			Description: "Monochrome with generous whitespace, content does the talking.",
			Palette: entity.ThemePalette{
				Primary:    "#000000",
				Secondary:  "#666666",
				Accent:     "#000000",
				Text:       "#1A1A1A",
				Background: "#FFFFFF",
				Surface:    "#EEEEEE",
			},
			HeadingFont: "Helvetica Neue",
			BodyFont:    "Helvetica Neue",
			Style: entity.ThemeStyle{
				CornerRadius: 0,
			},
		},
	}

	r := &Registry{themes: make(map[string]entity.ThemeDescriptor, len(catalog))}
	for _, t := range catalog {
		r.themes[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	return r
}

// Resolve 按 id 查找主题，空串或未知 id 返回默认主题
func (r *Registry) Resolve(id string) entity.ThemeDescriptor {
	if t, ok := r.themes[id]; ok {
		return t
	}
	return r.themes[DefaultThemeID]
}

// Lookup 按 id 查找，返回是否命中；供需要区分未知主题的调用方使用
func (r *Registry) Lookup(id string) (entity.ThemeDescriptor, bool) {
	t, ok := r.themes[id]
	return t, ok
}

// List 按固定顺序返回全部主题
func (r *Registry) List() []entity.ThemeDescriptor {
	out := make([]entity.ThemeDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.themes[id])
	}
	return out
}
