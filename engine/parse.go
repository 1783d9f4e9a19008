package engine

import (
	"encoding/json"
	"strings"
)

// ParseStrategy 标记最终生效的解析策略，用于日志与测试
type ParseStrategy string

const (
	// ParseStructured 整段响应是一个 JSON 列表
	ParseStructured ParseStrategy = "structured"
	// ParseLines 按行提取带编号/项目符号的条目
	ParseLines ParseStrategy = "lines"
	// ParseBracket 提取方括号内的逗号分隔项
	ParseBracket ParseStrategy = "bracket"
	// ParseEmpty 三种策略都落空，或显式 No Gap
	ParseEmpty ParseStrategy = "empty"
)

// DomainJudgment 缺口判定的解析结果（带标记的变体，而非层层吞异常）
type DomainJudgment struct {
	Strategy ParseStrategy
	Domains  []string
}

// Empty 判定是否没有缺口
func (j DomainJudgment) Empty() bool {
	return len(j.Domains) == 0
}

// ParseDomains 防御性解析判定能力的自由文本输出。
// 解析链按序尝试：JSON 列表 → 带标记行 → 方括号切分；
// 全部失败按无缺口处理，绝不因解析失败中断会话。
func ParseDomains(raw string) DomainJudgment {
	text := strings.TrimSpace(raw)
	if text == "" || strings.Contains(strings.ToLower(text), "no gap") {
		return DomainJudgment{Strategy: ParseEmpty}
	}

	if domains := parseJSONList(text); len(domains) > 0 {
		return DomainJudgment{Strategy: ParseStructured, Domains: domains}
	}
	if domains := parseMarkedLines(text); len(domains) > 0 {
		return DomainJudgment{Strategy: ParseLines, Domains: domains}
	}
	if domains := parseBracketList(text); len(domains) > 0 {
		return DomainJudgment{Strategy: ParseBracket, Domains: domains}
	}
	return DomainJudgment{Strategy: ParseEmpty}
}

// parseJSONList 尝试把整段文本当作 JSON 字符串列表
func parseJSONList(text string) []string {
	if !strings.HasPrefix(text, "[") {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil
	}
	return cleanDomains(items)
}

// parseMarkedLines 提取带编号或项目符号前缀的行。
// 没有任何标记行时视为失败，让下一级策略接手。
func parseMarkedLines(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		stripped := stripListMarker(trimmed)
		if stripped == trimmed {
			continue // 不是标记行
		}
		if len(stripped) <= 2 {
			continue // 行提取容易混入 "a." 之类的噪声残片
		}
		items = append(items, stripped)
	}
	return cleanDomains(items)
}

// stripListMarker 去掉行首的编号/项目符号；没有标记时原样返回
func stripListMarker(line string) string {
	if line == "" {
		return line
	}

	switch line[0] {
	case '-', '*', '+':
		return strings.TrimSpace(line[1:])
	}
	if strings.HasPrefix(line, "•") {
		return strings.TrimSpace(strings.TrimPrefix(line, "•"))
	}

	// 数字编号："1." / "2)" / "3 -"
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 {
		return line
	}
	rest := strings.TrimSpace(line[i:])
	for _, sep := range []string{".", ")", "-", ":"} {
		if strings.HasPrefix(rest, sep) {
			return strings.TrimSpace(rest[len(sep):])
		}
	}
	return line
}

// parseBracketList 提取首对方括号内的逗号分隔项
func parseBracketList(text string) []string {
	open := strings.Index(text, "[")
	if open < 0 {
		return nil
	}
	end := strings.Index(text[open:], "]")
	if end < 0 {
		return nil
	}
	inner := text[open+1 : open+end]
	return cleanDomains(strings.Split(inner, ","))
}

// cleanDomains 去引号去空白，丢弃空条目。
// 长度过滤只属于行提取策略；"AI"、"ML" 这类短领域名在
// 结构化与括号切分里是合法条目。
func cleanDomains(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		cleaned := strings.Trim(strings.TrimSpace(item), `"'`)
		if cleaned != "" {
			out = append(out, cleaned)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
