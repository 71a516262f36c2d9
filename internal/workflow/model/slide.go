package model

type SlideExpandInput struct {
	Topic    string
	Industry string
	Audience string

	SlideTitle string
	Category   string
	Summary    string
	// Guidance 按类别特化的写作指引
	Guidance string

	// Digest 近期已生成幻灯片的摘要，最近的排在最后
	Digest []SlideDigest

	MaxTokens int
}
