package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptOutlineV1      PromptID = "outline_v1"
	PromptSlideContentV1 PromptID = "slide_content_v1"
	PromptReviseSlideV1  PromptID = "revise_slide_v1"
	PromptReviseFieldV1  PromptID = "revise_field_v1"
)

// Registry 提示词模板注册表：模板编译进二进制，首次使用时解析并缓存。
type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]einoprompt.ChatTemplate
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]einoprompt.ChatTemplate),
	}
}

func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	systemPath, userPath, err := resolvePromptFiles(id)
	if err != nil {
		return nil, err
	}
	system, err := readEmbeddedText(systemPath)
	if err != nil {
		return nil, err
	}
	user, err := readEmbeddedText(userPath)
	if err != nil {
		return nil, err
	}

	tpl := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(system),
		schema.UserMessage(user),
	)
	r.cache[id] = tpl
	return tpl, nil
}

func resolvePromptFiles(id PromptID) (systemFile string, userFile string, err error) {
	switch id {
	case PromptOutlineV1:
		return "templates/outline_v1.system.txt", "templates/outline_v1.user.txt", nil
	case PromptSlideContentV1:
		return "templates/slide_content_v1.system.txt", "templates/slide_content_v1.user.txt", nil
	case PromptReviseSlideV1:
		return "templates/revise_slide_v1.system.txt", "templates/revise_slide_v1.user.txt", nil
	case PromptReviseFieldV1:
		return "templates/revise_field_v1.system.txt", "templates/revise_field_v1.user.txt", nil
	default:
		return "", "", fmt.Errorf("unknown prompt id: %s", id)
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
