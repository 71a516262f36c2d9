package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticText_OutlineKeyword(t *testing.T) {
	out := SyntheticText("Produce a slide outline for the startup below.")

	var stubs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &stubs))
	assert.Len(t, stubs, 10)
	assert.Equal(t, "title", stubs[0]["category"])
	assert.Equal(t, "ask", stubs[9]["category"])

	// id 连续从 1 开始
	for i, s := range stubs {
		assert.EqualValues(t, i+1, s["id"])
	}
}

func TestSyntheticText_SlideContentKeyword(t *testing.T) {
	out := SyntheticText("Write the slide content JSON now.")

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.NotEmpty(t, body["headline"])
	assert.Len(t, body["bullets"], 3)
}

// 展开类指令同时包含 "slide outline" 与 "slide content"，
// 必须落在单页分支而不是大纲分支。
func TestSyntheticText_SlideContentWinsOverOutline(t *testing.T) {
	out := SyntheticText("You turn slide outlines into finished slide content.")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"), "expected a single JSON object")

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Contains(t, body, "headline")
}

func TestSyntheticText_UnknownInstruction(t *testing.T) {
	out := SyntheticText("Translate this sentence into French.")

	var envelope map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	assert.Equal(t, "generation unavailable", envelope["error"])
}

func TestSyntheticText_Deterministic(t *testing.T) {
	instructions := []string{
		"Produce a slide outline for an AI startup.",
		"Write the slide content JSON now.",
		"Anything else entirely.",
	}
	for _, in := range instructions {
		first := SyntheticText(in)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, SyntheticText(in), "synthetic output must be byte-identical for %q", in)
		}
	}
}
