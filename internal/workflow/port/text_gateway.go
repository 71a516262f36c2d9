package port

import "context"

// TextGateway 工作流层对生成式文本能力的最小依赖（port）。
// Invoke 永不返回错误：上游失败、空响应、演示模式均由实现方
// 退化为确定性的合成文本，调用方只需面对字符串。
type TextGateway interface {
	Invoke(ctx context.Context, instruction string, maxTokens int) string
}
