package entity

import "time"

// SessionState 会话状态机：no-outline → outline-ready → deck-ready。
// 状态只前进不后退（重新生成大纲除外，会清空已生成 deck）。
type SessionState string

const (
	StateNoOutline    SessionState = "no-outline"
	StateOutlineReady SessionState = "outline-ready"
	StateDeckReady    SessionState = "deck-ready"
)

// Session 一次文稿创作会话，承载从大纲到成稿的全部可变状态
type Session struct {
	ID        string         `json:"id"`
	State     SessionState   `json:"state"`
	Context   StartupContext `json:"context"`
	Outline   *Outline       `json:"outline,omitempty"`
	Deck      *GeneratedDeck `json:"deck,omitempty"`
	ThemeID   string         `json:"theme_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
