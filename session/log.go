package session

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BaSui01/ideastorm/types"
	"github.com/BaSui01/ideastorm/vectorstore"
)

// 日志记录的元数据字段
const (
	metaSessionID = "session_id"
	metaPersona   = "persona"
)

// Log 会话内相似度日志：只追加，按相似度读取。
// 必须先 Bind 到一个会话；未绑定时 Append/Retrieve 立即报
// SESSION_NOT_INITIALIZED，绝不静默丢轮次。
type Log struct {
	store    vectorstore.VectorStore
	embedder Embedder
	logger   *zap.Logger

	sessionID string
}

// NewLog 创建未绑定的会话日志
func NewLog(store vectorstore.VectorStore, embedder Embedder, logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{
		store:    store,
		embedder: embedder,
		logger:   logger.With(zap.String("component", "session_log")),
	}
}

// Bind 将日志绑定到指定会话
func (l *Log) Bind(sess *Session) {
	l.sessionID = sess.ID
	l.logger = l.logger.With(zap.String("session_id", sess.ID))
}

// SessionID 返回当前绑定的会话标识，未绑定时为空
func (l *Log) SessionID() string {
	return l.sessionID
}

func (l *Log) requireBound() error {
	if l.sessionID == "" {
		return types.NewError(types.ErrSessionNotInitialized,
			"session log used before session creation")
	}
	return nil
}

// Append 嵌入文本并写入一条 {text, persona, session_id} 记录。
func (l *Log) Append(ctx context.Context, personaName, text string) error {
	if err := l.requireBound(); err != nil {
		return err
	}

	vec, err := l.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return types.NewError(types.ErrEmbeddingFailed, "failed to embed turn text").
			WithPersona(personaName).WithCause(err)
	}

	doc := vectorstore.Document{
		ID:      uuid.NewString(),
		Content: text,
		Metadata: map[string]interface{}{
			metaSessionID: l.sessionID,
			metaPersona:   personaName,
		},
		Embedding: vec,
	}
	if err := l.store.AddDocuments(ctx, []vectorstore.Document{doc}); err != nil {
		return types.NewError(types.ErrStoreUnavailable, "failed to append session log").
			WithPersona(personaName).WithCause(err)
	}
	return nil
}

// Retrieve 相似度检索本会话的记录，按相似度降序返回至多 k 条文本。
// 日志为空时返回空序列。
func (l *Log) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	if err := l.requireBound(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, nil
	}

	vec, err := l.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, types.NewError(types.ErrEmbeddingFailed, "failed to embed retrieval probe").
			WithCause(err)
	}

	results, err := l.store.Search(ctx, vec, k, vectorstore.Filter{metaSessionID: l.sessionID})
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "session log search failed").
			WithCause(err)
	}

	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Document.Content)
	}
	return texts, nil
}

// RetrieveContext 与 Retrieve 相同，但把命中文本拼接为一段上下文。
func (l *Log) RetrieveContext(ctx context.Context, query string, k int) (string, error) {
	texts, err := l.Retrieve(ctx, query, k)
	if err != nil {
		return "", err
	}
	return strings.Join(texts, "\n"), nil
}

// Clear 删除本会话的全部记录（复用集合实例重开会话时使用）。
func (l *Log) Clear(ctx context.Context) error {
	if err := l.requireBound(); err != nil {
		return err
	}

	docs, err := l.store.GetAll(ctx)
	if err != nil {
		return types.NewError(types.ErrStoreUnavailable, "failed to list session log").WithCause(err)
	}

	var ids []string
	for _, doc := range docs {
		if sid, _ := doc.Metadata[metaSessionID].(string); sid == l.sessionID {
			ids = append(ids, doc.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	if err := l.store.DeleteDocuments(ctx, ids); err != nil {
		return types.NewError(types.ErrStoreUnavailable, "failed to clear session log").WithCause(err)
	}

	l.logger.Info("session log cleared", zap.Int("deleted", len(ids)))
	return nil
}
