package engine

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/ideastorm/llm"
)

// LearnSummaries 会话收尾的增量学习：为每个发过言的角色
// 生成一段习得摘要，追加到身份存储并失效其缓存，
// 让后续会话的身份解析带上这次的经验。
// 单个角色失败不影响其他角色，也不影响会话结果。
func (e *Engine) LearnSummaries(ctx context.Context, idea string, history map[string][]string) int {
	names := make([]string, 0, len(history))
	for name := range history {
		if len(history[name]) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	learned := 0
	for _, name := range names {
		summary, err := e.summarizeContributions(ctx, name, idea, history[name])
		if err != nil {
			e.logger.Warn("learned summary generation failed",
				zap.String("persona", name), zap.Error(err))
			continue
		}
		if summary == "" {
			continue
		}
		if err := e.identity.AppendLearnedSummary(ctx, name, summary); err != nil {
			e.logger.Warn("learned summary persistence failed",
				zap.String("persona", name), zap.Error(err))
			continue
		}
		e.personas.Invalidate(ctx, name)
		learned++
	}

	if learned > 0 {
		e.logger.Info("learned summaries stored", zap.Int("personas", learned))
	}
	return learned
}

func (e *Engine) summarizeContributions(ctx context.Context, name, idea string, contributions []string) (string, error) {
	resp, err := e.complete(ctx, &llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: learnSummaryPrompt(name, idea, contributions)},
		},
		MaxTokens:   500,
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}
