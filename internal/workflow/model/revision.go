package model

type ReviseSlideInput struct {
	Topic      string
	SlideTitle string
	Category   string
	// SlideJSON 当前幻灯片内容的 JSON 序列化
	SlideJSON   string
	Instruction string
	// Guidance 类别附加指引，目前仅 market 类使用
	Guidance string

	MaxTokens int
}

type ReviseFieldInput struct {
	Topic        string
	SlideTitle   string
	Category     string
	CurrentValue string
	Instruction  string

	MaxTokens int
}
