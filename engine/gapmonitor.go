package engine

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/ideastorm/llm"
	"github.com/BaSui01/ideastorm/types"
)

// GapMonitor 专长缺口监控：每完成一整轮，让判定能力审视
// 各角色的最新发言，找出讨论缺失的专长领域。
// 判定输出不可解析是可恢复的（按无缺口处理）；
// 角色合成输出不可解析是该次构造的致命失败——
// 绝不伪造占位角色。
type GapMonitor struct {
	engine *Engine
	logger *zap.Logger
}

func newGapMonitor(e *Engine) *GapMonitor {
	return &GapMonitor{
		engine: e,
		logger: e.logger.With(zap.String("component", "gap_monitor")),
	}
}

// Check 执行一次缺口检查，返回应激活的角色名（空串 = 无动作）。
// 还没有任何角色发言时是 no-op。
func (g *GapMonitor) Check(ctx context.Context, idea string, latest map[string]string, active map[string]bool) (string, error) {
	if len(latest) == 0 {
		return "", nil
	}

	resp, err := g.engine.complete(ctx, &llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: judgeSystemPrompt},
			{Role: llm.RoleUser, Content: judgePrompt(idea, latest)},
		},
		MaxTokens:   g.engine.cfg.TurnMaxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		// 缺口检查是顾问性质的，判定调用失败不中断会话
		g.logger.Warn("gap judgment call failed", zap.Error(err))
		g.recordOutcome("failed")
		return "", nil
	}

	judgment := ParseDomains(resp.Text())
	g.logger.Debug("gap judgment parsed",
		zap.String("strategy", string(judgment.Strategy)),
		zap.Strings("domains", judgment.Domains))
	if judgment.Empty() {
		g.recordOutcome("no_gap")
		return "", nil
	}

	// 优先激活库中已有、尚未上场的匹配角色
	candidates, err := g.engine.identity.FindByDomains(ctx, judgment.Domains)
	if err != nil {
		g.logger.Warn("domain lookup failed", zap.Error(err))
	}
	for _, p := range candidates {
		if !active[p.Name] {
			g.recordOutcome("activated")
			g.recordAdded("library")
			g.logger.Info("existing persona matches gap",
				zap.String("persona", p.Name),
				zap.Strings("domains", judgment.Domains))
			return p.Name, nil
		}
	}
	if len(candidates) > 0 {
		// 匹配角色已全部上场：领域已被现有阵容覆盖，不扩编也不合成
		g.recordOutcome("covered")
		g.logger.Debug("gap domains already covered by active roster",
			zap.Strings("domains", judgment.Domains))
		return "", nil
	}

	// 库中完全没有覆盖该领域的角色，恰好合成一个
	p, err := g.synthesizePersona(ctx, judgment.Domains)
	if err != nil {
		g.recordOutcome("failed")
		return "", err
	}
	if err := g.engine.identity.Register(ctx, p); err != nil {
		g.recordOutcome("failed")
		return "", err
	}
	g.engine.personas.Invalidate(ctx, p.Name)

	g.recordOutcome("synthesized")
	g.recordAdded("synthesized")
	g.logger.Info("persona synthesized for gap",
		zap.String("persona", p.Name),
		zap.Strings("domains", judgment.Domains))
	return p.Name, nil
}

// personaWire 角色合成输出的 JSON 结构
type personaWire struct {
	Name              string   `json:"name"`
	Desc              string   `json:"desc"`
	ShortBio          string   `json:"short_bio"`
	DomainExpertise   []string `json:"domain_expertise"`
	PersonalityTraits []string `json:"personality_traits"`
	RoleFunction      string   `json:"role_function"`
	ExperienceLevel   string   `json:"experience_level"`
	StyleKeywords     []string `json:"style_keywords"`
}

// synthesizePersona 让生成能力产出一个覆盖指定领域的结构化角色。
func (g *GapMonitor) synthesizePersona(ctx context.Context, domains []string) (types.Persona, error) {
	resp, err := g.engine.complete(ctx, &llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: personaSynthesisPrompt(domains)},
		},
		MaxTokens:   g.engine.cfg.TurnMaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return types.Persona{}, types.NewError(types.ErrPersonaSynthesis,
			"persona synthesis call failed").WithCause(err)
	}

	raw := extractJSONObject(resp.Text())
	if raw == "" {
		return types.Persona{}, types.NewError(types.ErrPersonaSynthesis,
			"persona synthesis returned no JSON object: "+snippet(resp.Text()))
	}

	var wire personaWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return types.Persona{}, types.NewError(types.ErrPersonaSynthesis,
			"persona synthesis returned malformed JSON").WithCause(err)
	}

	p := types.Persona{
		Name:              strings.TrimSpace(wire.Name),
		Desc:              strings.TrimSpace(wire.Desc),
		ShortBio:          strings.TrimSpace(wire.ShortBio),
		DomainExpertise:   wire.DomainExpertise,
		PersonalityTraits: wire.PersonalityTraits,
		RoleFunction:      strings.TrimSpace(wire.RoleFunction),
		ExperienceLevel:   strings.TrimSpace(wire.ExperienceLevel),
		StyleKeywords:     wire.StyleKeywords,
	}
	if err := p.Validate(); err != nil {
		return types.Persona{}, types.NewError(types.ErrPersonaSynthesis,
			"synthesized persona is incomplete").WithCause(err)
	}
	return p, nil
}

func (g *GapMonitor) recordOutcome(outcome string) {
	if g.engine.collector != nil {
		g.engine.collector.RecordGapCheck(outcome)
	}
}

func (g *GapMonitor) recordAdded(source string) {
	if g.engine.collector != nil {
		g.engine.collector.RecordPersonaAdded(source)
	}
}

// extractJSONObject 提取首个 { 到末个 } 之间的片段，容忍代码围栏
func extractJSONObject(text string) string {
	open := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if open < 0 || end <= open {
		return ""
	}
	return text[open : end+1]
}

func snippet(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > 120 {
		return text[:120] + "..."
	}
	return text
}
