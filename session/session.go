package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session 一次头脑风暴会话的标识与起始参数。
// 花名册与内存转写由调度器独占持有，不放在这里。
type Session struct {
	// ID 形如 session_ab12cd34，同时用作日志集合的隔离键
	ID string `json:"id"`

	// Idea 用户的原始想法
	Idea string `json:"idea"`

	CreatedAt time.Time `json:"created_at"`
}

// NewSession 创建会话标识
func NewSession(idea string) *Session {
	return &Session{
		ID:        "session_" + uuid.NewString()[:8],
		Idea:      idea,
		CreatedAt: time.Now(),
	}
}

// Embedder 会话日志与归档需要的最小嵌入接口.
type Embedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float64, error)
	EmbedDocuments(ctx context.Context, documents []string) ([][]float64, error)
}
