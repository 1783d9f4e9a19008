package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BaSui01/ideastorm/internal/database"
	"github.com/BaSui01/ideastorm/internal/metrics"
	"github.com/BaSui01/ideastorm/types"
)

// SessionModel 会话表
type SessionModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Idea      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName 指定表名
func (SessionModel) TableName() string { return "sessions" }

// TurnModel 轮次表，Seq 保证严格时间顺序
type TurnModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	SessionID string `gorm:"size:64;index:idx_turns_session_seq,priority:1"`
	Persona   string `gorm:"size:128"`
	Round     int
	Seq       int `gorm:"index:idx_turns_session_seq,priority:2"`
	Content   string `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName 指定表名
func (TurnModel) TableName() string { return "turns" }

// Repository 会话与轮次的关系型仓储，
// 是相似度集合之外严格有序的持久化补充。
type Repository struct {
	pool      *database.PoolManager
	logger    *zap.Logger
	collector *metrics.Collector // 可为 nil
}

// RepositoryOption 仓储可选配置
type RepositoryOption func(*Repository)

// WithCollector 启用数据库查询指标采集
func WithCollector(collector *metrics.Collector) RepositoryOption {
	return func(r *Repository) {
		r.collector = collector
	}
}

// NewRepository 创建仓储并迁移表结构
func NewRepository(pool *database.PoolManager, logger *zap.Logger, opts ...RepositoryOption) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := pool.DB().AutoMigrate(&SessionModel{}, &TurnModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session schema: %w", err)
	}
	r := &Repository{
		pool:   pool,
		logger: logger.With(zap.String("component", "session_repository")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Repository) observe(operation string, start time.Time) {
	if r.collector != nil {
		r.collector.RecordDBQuery(operation, time.Since(start))
	}
}

// SaveSession 持久化会话元信息
func (r *Repository) SaveSession(ctx context.Context, sess *Session) error {
	defer r.observe("save_session", time.Now())

	model := SessionModel{
		ID:        sess.ID,
		Idea:      sess.Idea,
		CreatedAt: sess.CreatedAt,
	}
	if err := r.pool.DB().WithContext(ctx).Create(&model).Error; err != nil {
		return types.NewError(types.ErrStoreUnavailable, "failed to persist session").WithCause(err)
	}
	return nil
}

// SaveTurn 持久化一条轮次记录
func (r *Repository) SaveTurn(ctx context.Context, rec types.TurnRecord) error {
	defer r.observe("save_turn", time.Now())

	model := TurnModel{
		SessionID: rec.SessionID,
		Persona:   rec.Persona,
		Round:     rec.Round,
		Seq:       rec.Seq,
		Content:   rec.Content,
		CreatedAt: rec.CreatedAt,
	}
	err := r.pool.WithTransactionRetry(ctx, 3, func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
	if err != nil {
		return types.NewError(types.ErrStoreUnavailable, "failed to persist turn").
			WithPersona(rec.Persona).WithTurn(rec.Seq).WithCause(err)
	}
	return nil
}

// LoadTranscript 按全局序号重建某会话的有序转写
func (r *Repository) LoadTranscript(ctx context.Context, sessionID string) ([]types.TurnRecord, error) {
	defer r.observe("load_transcript", time.Now())

	var models []TurnModel
	err := r.pool.DB().WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("seq ASC").
		Find(&models).Error
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "failed to load transcript").WithCause(err)
	}

	out := make([]types.TurnRecord, 0, len(models))
	for _, m := range models {
		out = append(out, types.TurnRecord{
			SessionID: m.SessionID,
			Persona:   m.Persona,
			Round:     m.Round,
			Seq:       m.Seq,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// ListSessions 按创建时间倒序列出历史会话
func (r *Repository) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	defer r.observe("list_sessions", time.Now())

	if limit <= 0 {
		limit = 20
	}
	var models []SessionModel
	err := r.pool.DB().WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "failed to list sessions").WithCause(err)
	}

	out := make([]Session, 0, len(models))
	for _, m := range models {
		out = append(out, Session{ID: m.ID, Idea: m.Idea, CreatedAt: m.CreatedAt})
	}
	return out, nil
}
