package node

import (
	"testing"

	"github.com/stretchr/testify/assert"

	wfmodel "pitchdeck-ai-api/internal/workflow/model"

	"github.com/cloudwego/eino/schema"
)

func TestExtractJSONValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"headline": "x"}`,
			want:  `{"headline": "x"}`,
		},
		{
			name:  "object wrapped in prose",
			input: "Sure, here is the slide:\n{\"headline\": \"x\"}\nHope that helps!",
			want:  `{"headline": "x"}`,
		},
		{
			name:  "markdown fenced object",
			input: "```json\n{\"headline\": \"x\"}\n```",
			want:  `{"headline": "x"}`,
		},
		{
			name:  "array wrapped in prose",
			input: "Outline below.\n[{\"id\": 1}]\nDone.",
			want:  `[{"id": 1}]`,
		},
		{
			name:  "array with trailing junk",
			input: `[{"id": 1}] trailing text`,
			want:  `[{"id": 1}]`,
		},
		{
			name:  "no json at all",
			input: "plain text only",
			want:  "plain text only",
		},
		{
			name:  "empty input",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSONValue(tt.input))
		})
	}
}

func TestTruncateByRunes(t *testing.T) {
	assert.Equal(t, "", TruncateByRunes("abc", 0))
	assert.Equal(t, "abc", TruncateByRunes("abc", 5))
	assert.Equal(t, "ab", TruncateByRunes("abcd", 2))
	// 多字节字符不会被切成半个
	assert.Equal(t, "你好", TruncateByRunes("你好世界", 2))
}

func TestFlattenMessages(t *testing.T) {
	msgs := []*schema.Message{
		schema.SystemMessage("system text"),
		nil,
		schema.UserMessage("  user text  "),
		schema.UserMessage(""),
	}
	assert.Equal(t, "system text\n\nuser text", FlattenMessages(msgs))
}

func TestBuildDigestBlock(t *testing.T) {
	assert.Equal(t, "(none yet, this is the first slide)", BuildDigestBlock(nil))

	block := BuildDigestBlock([]wfmodel.SlideDigest{
		{Title: "Problem", Headline: "Costs are exploding"},
		{Title: "Solution", Headline: "Automate the workflow"},
	})
	assert.Equal(t, "- Problem: Costs are exploding\n- Solution: Automate the workflow", block)
}

func TestBuildRawContentBlock(t *testing.T) {
	assert.Equal(t, "", BuildRawContentBlock("   "))
	block := BuildRawContentBlock("existing pitch notes")
	assert.Contains(t, block, "existing pitch notes")
	assert.Contains(t, block, "supplied by the founder")
}
