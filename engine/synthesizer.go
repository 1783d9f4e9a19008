package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/ideastorm/llm"
	"github.com/BaSui01/ideastorm/types"
)

// LinearTurn 线性化后的一个轮次
type LinearTurn struct {
	Persona string
	Round   int
	Content string
}

// Linearize 把按角色分组的转写还原为严格轮转顺序。
// 对最终花名册做 roster[i mod N] 索引；中途加入的角色轮次
// 较少，只有 (persona, round) 真实存在时才产出条目。
func Linearize(roster []string, history map[string][]string) []LinearTurn {
	if len(roster) == 0 {
		return nil
	}

	maxRounds := 0
	for _, name := range roster {
		if n := len(history[name]); n > maxRounds {
			maxRounds = n
		}
	}

	n := len(roster)
	out := make([]LinearTurn, 0, n*maxRounds)
	for i := 0; i < n*maxRounds; i++ {
		name := roster[i%n]
		round := i / n
		if round < len(history[name]) {
			out = append(out, LinearTurn{
				Persona: name,
				Round:   round,
				Content: history[name][round],
			})
		}
	}
	return out
}

// Synthesizer 终稿合成器：对完成的转写做一次纯线性化，
// 通过角色缓存补全身份署名，发起一次生成调用产出
// 固定大纲的最终提案。不持有任何后续状态。
type Synthesizer struct {
	engine *Engine
	logger *zap.Logger
}

func newSynthesizer(e *Engine) *Synthesizer {
	return &Synthesizer{
		engine: e,
		logger: e.logger.With(zap.String("component", "synthesizer")),
	}
}

// Synthesize 产出最终提案文档。
func (s *Synthesizer) Synthesize(ctx context.Context, idea string, roster []string, history map[string][]string) (string, error) {
	ctx, span := s.engine.tracer.Start(ctx, "synthesis")
	defer span.End()

	turns := Linearize(roster, history)

	var b strings.Builder
	for i, turn := range turns {
		desc, err := s.engine.personas.Resolve(ctx, turn.Persona)
		if err != nil {
			s.logger.Warn("attribution resolution failed",
				zap.String("persona", turn.Persona), zap.Error(err))
			desc = ""
		}
		fmt.Fprintf(&b, "\n--- Turn %d: %s (%s) ---\n%s\n", i+1, turn.Persona, desc, turn.Content)
	}

	resp, err := s.engine.complete(ctx, &llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: synthesisSystemPrompt},
			{Role: llm.RoleUser, Content: synthesisUserPrompt(idea, b.String())},
		},
		MaxTokens:   s.engine.cfg.SynthesisMaxTokens,
		Temperature: float32(s.engine.cfg.SynthesisTemperature),
	})
	if err != nil {
		return "", types.NewError(types.ErrSynthesisFailed, "final synthesis failed").WithCause(err)
	}

	proposal := strings.TrimSpace(resp.Text())
	if proposal == "" {
		return "", types.NewError(types.ErrSynthesisFailed, "final synthesis returned empty output")
	}

	s.logger.Info("proposal synthesized",
		zap.Int("turns", len(turns)),
		zap.Int("length", len(proposal)))
	return proposal, nil
}
