package model

// SlideDigest 已生成幻灯片的压缩摘要，随提示词携带以保持上下文连贯。
// 只保留标题与 headline，避免提示词随文稿增长而膨胀。
type SlideDigest struct {
	Title    string
	Headline string
}
