package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/BaSui01/ideastorm/llm"
	"github.com/BaSui01/ideastorm/session"
	"github.com/BaSui01/ideastorm/types"
)

// Scheduler 轮转调度器：INIT → ROUND_ROBIN → GAP_CHECK → ... → DONE。
// 花名册与内存转写由它独占持有；总轮次上界 N×T 在每次
// 边界检查时用当前花名册长度重新计算，缺口监控把花名册
// 撑大后新角色自动获得自己的 T 轮。
type Scheduler struct {
	engine *Engine
	sess   *session.Session

	roster  []string
	active  map[string]bool
	history map[string][]string
	records []types.TurnRecord

	gap *GapMonitor // 关闭缺口检查时为 nil
}

func newScheduler(e *Engine, sess *session.Session, roster []string) *Scheduler {
	s := &Scheduler{
		engine:  e,
		sess:    sess,
		roster:  append([]string(nil), roster...),
		active:  make(map[string]bool, len(roster)),
		history: make(map[string][]string, len(roster)),
	}
	for _, name := range roster {
		s.active[name] = true
		s.history[name] = []string{}
	}
	if e.cfg.GapCheckEnabled {
		s.gap = newGapMonitor(e)
	}
	return s
}

// Run 执行调度循环直到 DONE。
func (s *Scheduler) Run(ctx context.Context) error {
	turnsEach := s.engine.cfg.TurnsEach
	if turnsEach <= 0 || len(s.roster) == 0 {
		return nil
	}

	// 上界每轮重算：len(s.roster) 可能在缺口检查中增长
	for i := 0; i < len(s.roster)*turnsEach; i++ {
		name := s.roster[i%len(s.roster)]

		if err := s.runTurn(ctx, i, name); err != nil {
			return err
		}

		// 每完成一整轮做一次缺口检查
		if s.gap != nil && (i+1)%len(s.roster) == 0 {
			if err := s.gapCheck(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// runTurn 执行一个轮次：检索 → 生成 → 记录。
// 生成失败时该轮不入任何记录，整个会话中止。
func (s *Scheduler) runTurn(ctx context.Context, turnIndex int, name string) error {
	start := time.Now()
	ctx, span := s.engine.tracer.Start(ctx, "turn")
	span.SetAttributes(
		attribute.Int("turn.index", turnIndex),
		attribute.String("turn.persona", name),
	)
	defer span.End()

	// 检索探针：角色名 + 其上一条发言（首轮为空） + 原始想法
	last := ""
	if msgs := s.history[name]; len(msgs) > 0 {
		last = msgs[len(msgs)-1]
	}
	probe := fmt.Sprintf("New turn for %s. Last message from them: %s. Idea: %s", name, last, s.sess.Idea)

	retrievalStart := time.Now()
	contextText, err := s.engine.log.RetrieveContext(ctx, probe, s.engine.cfg.RetrievalK)
	if err != nil {
		s.recordTurnMetric(name, "error", start)
		return fmt.Errorf("turn %d (%s): %w", turnIndex, name, err)
	}
	if s.engine.collector != nil {
		s.engine.collector.RecordRetrieval("session_log", time.Since(retrievalStart))
	}
	contextText = s.engine.trimToBudget(contextText)

	// 身份解析失败不致命：空描述符照常生成
	desc, err := s.engine.personas.Resolve(ctx, name)
	if err != nil {
		s.engine.logger.Warn("persona resolution failed, using empty descriptor",
			zap.String("persona", name), zap.Error(err))
		desc = ""
	}

	resp, err := s.engine.complete(ctx, &llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: turnSystemPrompt(name, desc)},
			{Role: llm.RoleUser, Content: turnUserPrompt(s.sess.Idea, contextText)},
		},
		MaxTokens:   s.engine.cfg.TurnMaxTokens,
		Temperature: float32(s.engine.cfg.TurnTemperature),
	})
	if err != nil {
		s.recordTurnMetric(name, "error", start)
		return types.NewError(types.ErrTurnFailed,
			fmt.Sprintf("generation failed at turn %d for persona %q", turnIndex, name)).
			WithPersona(name).WithTurn(turnIndex).WithCause(err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		s.recordTurnMetric(name, "error", start)
		return types.NewError(types.ErrTurnFailed,
			fmt.Sprintf("empty generation at turn %d for persona %q", turnIndex, name)).
			WithPersona(name).WithTurn(turnIndex)
	}

	record := types.TurnRecord{
		SessionID: s.sess.ID,
		Persona:   name,
		Round:     len(s.history[name]),
		Seq:       turnIndex,
		Content:   text,
		CreatedAt: time.Now(),
	}

	// 本地转写 + 有序记录 + 会话日志；日志写失败视为能力失败
	s.history[name] = append(s.history[name], text)
	s.records = append(s.records, record)
	if err := s.engine.log.Append(ctx, name, text); err != nil {
		s.recordTurnMetric(name, "error", start)
		return fmt.Errorf("turn %d (%s): %w", turnIndex, name, err)
	}

	// 归档与关系型仓储是补充持久化，失败降级告警
	if s.engine.archive != nil {
		rec := types.ArchiveRecord{SessionID: s.sess.ID, Persona: name, Content: text}
		if err := s.engine.archive.Append(ctx, rec); err != nil {
			s.engine.logger.Warn("archive append failed", zap.String("persona", name), zap.Error(err))
		}
	}
	if s.engine.repo != nil {
		if err := s.engine.repo.SaveTurn(ctx, record); err != nil {
			s.engine.logger.Warn("turn persistence failed", zap.String("persona", name), zap.Error(err))
		}
	}

	s.recordTurnMetric(name, "ok", start)
	s.engine.logger.Info("turn completed",
		zap.Int("turn", turnIndex),
		zap.String("persona", name),
		zap.Int("round", record.Round),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// gapCheck 调用缺口监控并按需扩编花名册。
// 花名册只增不减；已激活角色不会被重复加入。
func (s *Scheduler) gapCheck(ctx context.Context) error {
	ctx, span := s.engine.tracer.Start(ctx, "gap_check")
	defer span.End()

	latest := make(map[string]string)
	for name, msgs := range s.history {
		if len(msgs) > 0 {
			latest[name] = msgs[len(msgs)-1]
		}
	}

	name, err := s.gap.Check(ctx, s.sess.Idea, latest, s.active)
	if err != nil {
		return err
	}
	if name == "" || s.active[name] {
		return nil
	}

	s.roster = append(s.roster, name)
	s.active[name] = true
	s.history[name] = []string{}
	if s.engine.collector != nil {
		s.engine.collector.SetRosterSize(s.sess.ID, len(s.roster))
	}
	s.engine.logger.Info("persona activated",
		zap.String("persona", name),
		zap.Int("roster_size", len(s.roster)))
	return nil
}

func (s *Scheduler) recordTurnMetric(name, status string, start time.Time) {
	if s.engine.collector != nil {
		s.engine.collector.RecordTurn(name, status, time.Since(start))
	}
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
