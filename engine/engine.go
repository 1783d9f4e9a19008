package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/ideastorm/config"
	"github.com/BaSui01/ideastorm/internal/metrics"
	"github.com/BaSui01/ideastorm/llm"
	"github.com/BaSui01/ideastorm/llm/tokenizer"
	"github.com/BaSui01/ideastorm/persona"
	"github.com/BaSui01/ideastorm/session"
	"github.com/BaSui01/ideastorm/types"
)

// Engine 会话执行的显式上下文对象：所有共享句柄都在这里，
// 没有隐藏单例，同一进程可并行运行多个会话。
type Engine struct {
	cfg      config.SessionConfig
	model    string
	provider llm.Provider
	identity *persona.IdentityStore
	personas *persona.Cache
	log      *session.Log

	// 可选件
	archive   *session.Archive
	repo      *session.Repository
	collector *metrics.Collector

	tok         tokenizer.Tokenizer
	callTimeout time.Duration
	tracer      trace.Tracer
	logger      *zap.Logger
}

// Option Engine 可选配置
type Option func(*Engine)

// WithArchive 启用跨会话归档
func WithArchive(archive *session.Archive) Option {
	return func(e *Engine) { e.archive = archive }
}

// WithRepository 启用关系型轮次仓储
func WithRepository(repo *session.Repository) Option {
	return func(e *Engine) { e.repo = repo }
}

// WithMetrics 启用指标采集
func WithMetrics(collector *metrics.Collector) Option {
	return func(e *Engine) { e.collector = collector }
}

// WithCallTimeout 设置单次能力调用的超时上限
func WithCallTimeout(d time.Duration) Option {
	return func(e *Engine) { e.callTimeout = d }
}

// New 创建会话引擎
func New(
	cfg config.SessionConfig,
	model string,
	provider llm.Provider,
	identity *persona.IdentityStore,
	personaCache *persona.Cache,
	log *session.Log,
	logger *zap.Logger,
	opts ...Option,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		cfg:         cfg,
		model:       model,
		provider:    provider,
		identity:    identity,
		personas:    personaCache,
		log:         log,
		tok:         tokenizer.ForModel(model),
		callTimeout: 2 * time.Minute,
		tracer:      otel.Tracer("ideastorm/engine"),
		logger:      logger.With(zap.String("component", "engine")),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result 一次完整会话的产出
type Result struct {
	Session    *session.Session    `json:"session"`
	Roster     []string            `json:"roster"`
	Transcript []types.TurnRecord  `json:"transcript"`
	History    map[string][]string `json:"history"`
	Proposal   string              `json:"proposal"`
}

// Run 执行一次完整会话：轮转调度 → 终稿合成。
// 生成能力失败会中止整个会话，诊断信息带出正在处理的角色与轮次。
func (e *Engine) Run(ctx context.Context, sess *session.Session, roster []types.Persona) (*Result, error) {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "session.run", trace.WithAttributes(
		attribute.String("session.id", sess.ID),
		attribute.Int("roster.size", len(roster)),
	))
	defer span.End()

	e.log.Bind(sess)
	if e.repo != nil {
		if err := e.repo.SaveSession(ctx, sess); err != nil {
			e.logger.Warn("failed to persist session metadata", zap.Error(err))
		}
	}

	names := make([]string, 0, len(roster))
	for _, p := range roster {
		names = append(names, p.Name)
	}
	if e.collector != nil {
		e.collector.SetRosterSize(sess.ID, len(names))
	}

	sched := newScheduler(e, sess, names)
	if err := sched.Run(ctx); err != nil {
		e.recordSession("error", start)
		return nil, err
	}

	synth := newSynthesizer(e)
	proposal, err := synth.Synthesize(ctx, sess.Idea, sched.roster, sched.history)
	if err != nil {
		e.recordSession("error", start)
		return nil, err
	}

	e.recordSession("ok", start)
	e.logger.Info("session completed",
		zap.String("session_id", sess.ID),
		zap.Int("turns", len(sched.records)),
		zap.Int("roster_size", len(sched.roster)),
		zap.Duration("elapsed", time.Since(start)))

	return &Result{
		Session:    sess,
		Roster:     sched.roster,
		Transcript: sched.records,
		History:    sched.history,
		Proposal:   proposal,
	}, nil
}

func (e *Engine) recordSession(status string, start time.Time) {
	if e.collector != nil {
		e.collector.RecordSession(status, time.Since(start))
	}
}

// complete 发起一次带超时的生成调用
func (e *Engine) complete(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	if req.Model == "" {
		req.Model = e.model
	}
	if req.Timeout == 0 {
		req.Timeout = e.callTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	start := time.Now()
	resp, err := e.provider.Completion(ctx, req)
	if e.collector != nil {
		status := "ok"
		var prompt, completion int
		if err != nil {
			status = "error"
		} else {
			prompt = resp.Usage.PromptTokens
			completion = resp.Usage.CompletionTokens
		}
		e.collector.RecordLLMRequest(e.provider.Name(), req.Model, status, time.Since(start), prompt, completion)
	}
	return resp, err
}

// trimToBudget 把检索上下文裁剪到 token 预算内，从尾部整行丢弃
func (e *Engine) trimToBudget(text string) string {
	if e.cfg.ContextTokenBudget <= 0 || text == "" {
		return text
	}

	lines := splitLines(text)
	for len(lines) > 1 {
		n, err := e.tok.CountTokens(joinLines(lines))
		if err != nil || n <= e.cfg.ContextTokenBudget {
			break
		}
		lines = lines[:len(lines)-1]
	}
	return joinLines(lines)
}
