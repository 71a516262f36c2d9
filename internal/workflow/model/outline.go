package model

type OutlineGenerateInput struct {
	Topic        string
	Industry     string
	Audience     string
	FundingStage string
	SlideCount   int
	// RawContent 用户粘贴的已有素材，非空时注入提示词
	RawContent string

	MaxTokens int
}
