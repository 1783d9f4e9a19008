package session

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BaSui01/ideastorm/types"
	"github.com/BaSui01/ideastorm/vectorstore"
)

// ArchiveCollection 跨会话归档集合的名称
const ArchiveCollection = "all_session_archives"

// 归档记录的元数据字段
const metaArchivePersona = "persona_name"

// Archive 跨会话归档：会话视角只写，通过相似度搜索跨会话读取。
type Archive struct {
	store    vectorstore.VectorStore
	embedder Embedder
	logger   *zap.Logger
}

// NewArchive 创建跨会话归档
func NewArchive(store vectorstore.VectorStore, embedder Embedder, logger *zap.Logger) *Archive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archive{
		store:    store,
		embedder: embedder,
		logger:   logger.With(zap.String("component", "session_archive")),
	}
}

// Append 归档一条轮次文本。
func (a *Archive) Append(ctx context.Context, rec types.ArchiveRecord) error {
	vec, err := a.embedder.EmbedQuery(ctx, rec.Content)
	if err != nil {
		return types.NewError(types.ErrEmbeddingFailed, "failed to embed archive record").
			WithPersona(rec.Persona).WithCause(err)
	}

	doc := vectorstore.Document{
		ID:      uuid.NewString(),
		Content: rec.Content,
		Metadata: map[string]interface{}{
			metaSessionID:      rec.SessionID,
			metaArchivePersona: rec.Persona,
		},
		Embedding: vec,
	}
	if err := a.store.AddDocuments(ctx, []vectorstore.Document{doc}); err != nil {
		return types.NewError(types.ErrStoreUnavailable, "failed to archive turn").
			WithPersona(rec.Persona).WithCause(err)
	}
	return nil
}

// Snippet 归档搜索命中：来源会话、发言者与文本片段。
type Snippet struct {
	SessionID string `json:"session_id"`
	Persona   string `json:"persona"`
	Content   string `json:"content"`
	Score     float64 `json:"score"`
}

// SearchPastSessions 跨全部历史会话做相似度搜索。
func (a *Archive) SearchPastSessions(ctx context.Context, query string, k int) ([]Snippet, error) {
	if k <= 0 {
		k = 5
	}

	vec, err := a.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, types.NewError(types.ErrEmbeddingFailed, "failed to embed archive query").WithCause(err)
	}

	results, err := a.store.Search(ctx, vec, k, nil)
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "archive search failed").WithCause(err)
	}

	out := make([]Snippet, 0, len(results))
	for _, r := range results {
		sid, _ := r.Document.Metadata[metaSessionID].(string)
		p, _ := r.Document.Metadata[metaArchivePersona].(string)
		out = append(out, Snippet{
			SessionID: sid,
			Persona:   p,
			Content:   r.Document.Content,
			Score:     r.Score,
		})
	}
	return out, nil
}
