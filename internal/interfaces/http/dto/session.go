// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"pitchdeck-ai-api/internal/domain/entity"
)

// CreateSessionRequest 创建会话请求
type CreateSessionRequest struct {
	Description  string `json:"description" binding:"required"`
	Industry     string `json:"industry,omitempty"`
	Audience     string `json:"audience,omitempty"`
	SlideCount   int    `json:"slide_count,omitempty"`
	FundingStage string `json:"funding_stage,omitempty"`
	RawContent   string `json:"raw_content,omitempty"`
	Theme        string `json:"theme,omitempty"`
}

// ToStartupContext 转换为领域输入
func (r *CreateSessionRequest) ToStartupContext() entity.StartupContext {
	return entity.StartupContext{
		Topic:        r.Description,
		Industry:     r.Industry,
		Audience:     r.Audience,
		SlideCount:   r.SlideCount,
		FundingStage: r.FundingStage,
		RawContent:   r.RawContent,
	}
}

// RevisionRequest 修订请求，三种粒度共用
type RevisionRequest struct {
	Instruction string `json:"instruction" binding:"required"`
}

// SetThemeRequest 更换主题请求
type SetThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// SessionResponse 会话响应
type SessionResponse struct {
	ID        string                `json:"id"`
	State     string                `json:"state"`
	Context   entity.StartupContext `json:"context"`
	ThemeID   string                `json:"theme_id"`
	Outline   *entity.Outline       `json:"outline,omitempty"`
	Deck      *entity.GeneratedDeck `json:"deck,omitempty"`
	CreatedAt string                `json:"created_at"`
	UpdatedAt string                `json:"updated_at"`
}

// FieldRevisionResponse 单字段修订结果
type FieldRevisionResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewSessionResponse 从实体构建会话响应
func NewSessionResponse(s *entity.Session) *SessionResponse {
	if s == nil {
		return nil
	}
	return &SessionResponse{
		ID:        s.ID,
		State:     string(s.State),
		Context:   s.Context,
		ThemeID:   s.ThemeID,
		Outline:   s.Outline,
		Deck:      s.Deck,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}
