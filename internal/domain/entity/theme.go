package entity

// ThemePalette 按角色命名的主题色板，展示层直接按角色取色
type ThemePalette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Text       string `json:"text"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
}

// ThemeStyle 形状与质感 token
type ThemeStyle struct {
	// CornerRadius 圆角半径（px）
	CornerRadius int `json:"corner_radius"`
	// Shadow CSS 风格的投影值，空串表示无投影
	Shadow string `json:"shadow,omitempty"`
	// Gradient 可选的背景渐变
	Gradient string `json:"gradient,omitempty"`
}

// ThemeDescriptor 渲染主题的静态描述。
// 主题目录在编译期固化，查找总是有解（未知 id 回退默认主题）。
type ThemeDescriptor struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Palette     ThemePalette `json:"palette"`
	// 标题/正文字体族建议
	HeadingFont string     `json:"heading_font"`
	BodyFont    string     `json:"body_font"`
	Style       ThemeStyle `json:"style"`
}
