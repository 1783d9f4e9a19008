package engine

import (
	"fmt"
	"sort"
	"strings"
)

// turnSystemPrompt 轮次发言的系统提示：注入角色本质描述
func turnSystemPrompt(personaName, personaDesc string) string {
	return fmt.Sprintf(
		"You are %s. Below is your personality description or 'essence':\n\n%s\n\n"+
			"Always leverage this mindset, worldview, and expertise. "+
			"You are participating in a dynamic brainstorming session with other experts. "+
			"Engage naturally with the other participants, responding to their points while adding your unique "+
			"expertise and perspective to the discussion. "+
			"Ask questions, challenge assumptions constructively, and help evolve the idea. Offer new insights,"+
			" reference previous points without repeating them verbatim, and move the conversation forward."+
			"Contribute to the discussion in a way that aligns with your persona's style.",
		personaName, personaDesc)
}

// turnUserPrompt 轮次发言的用户提示：想法 + 检索上下文
func turnUserPrompt(idea, context string) string {
	return fmt.Sprintf(
		"Original idea: %s\n\nRelevant conversation context: \n%s\n\n"+
			"Please provide your next message in this brainstorming session.",
		idea, context)
}

// judgeSystemPrompt 缺口判定的系统提示
const judgeSystemPrompt = "You are a neutral facilitator auditing an expert brainstorming session. " +
	"You identify which areas of expertise are missing from the discussion."

// judgePrompt 缺口判定的用户提示：各角色最新发言 + 原始想法。
// 角色按名称排序，保证同一输入产生同一提示。
func judgePrompt(idea string, latest map[string]string) string {
	names := make([]string, 0, len(latest))
	for name := range latest {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("The idea under discussion:\n")
	b.WriteString(idea)
	b.WriteString("\n\nThe latest contribution from each participant:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "\n== %s ==\n%s\n", name, latest[name])
	}
	b.WriteString("\nIs any critical area of expertise missing from this discussion? " +
		"If the current participants cover the idea adequately, reply with exactly: No Gap\n" +
		"Otherwise reply with a JSON array of the missing expertise domains, " +
		`for example: ["AI Ethics","Hardware"]. Keep the list short (at most 3 domains).`)
	return b.String()
}

// personaSynthesisPrompt 要求模型产出一个覆盖指定领域的结构化角色
func personaSynthesisPrompt(domains []string) string {
	return fmt.Sprintf(
		"Create one expert persona covering these domains: %s.\n\n"+
			"Reply with a single JSON object and nothing else, with exactly these keys:\n"+
			"{\n"+
			`  "name": "a plausible first name",`+"\n"+
			`  "desc": "2-3 sentences describing their essence, mindset and expertise",`+"\n"+
			`  "short_bio": "one-line bio",`+"\n"+
			`  "domain_expertise": ["list", "of", "domains"],`+"\n"+
			`  "personality_traits": ["list", "of", "traits"],`+"\n"+
			`  "role_function": "their function in a team",`+"\n"+
			`  "experience_level": "Junior | Intermediate | Senior | Expert",`+"\n"+
			`  "style_keywords": ["list", "of", "style", "keywords"]`+"\n"+
			"}",
		strings.Join(domains, ", "))
}

// synthesisSystemPrompt 终稿合成的系统提示
const synthesisSystemPrompt = "You are a world-class management consultant. You specialize in detailed, " +
	"executive-level proposals with robust data and analysis."

// synthesisUserPrompt 终稿合成的用户提示：想法 + 线性化转写 + 固定大纲
func synthesisUserPrompt(idea, transcript string) string {
	return fmt.Sprintf(
		"The user's original idea:\n\n%s\n\n"+
			"Below is the full multi-persona conversation:\n%s\n\n"+
			"Please provide a comprehensive proposal in the following structure:\n\n"+
			"1. Executive Summary\n2. Situation Analysis\n3. Proposed Solution\n4. "+
			"Implementation Roadmap with Timelines\n5. Financials/ROI\n6. Risk Mitigation\n\n"+
			"Use the conversation transcript and the user's original idea as context."+
			"Whenever it supports the proposal and brings value, include bullet points, tables, and other visual elements."+
			"Identify all of the potential features mentioned in the conversation transcript and categorize them and list them as bullet points.",
		idea, transcript)
}

// learnSummaryPrompt 会后习得摘要的提示
func learnSummaryPrompt(personaName, idea string, contributions []string) string {
	return fmt.Sprintf(
		"Below are all contributions made by %s during a brainstorming session about:\n%s\n\n"+
			"Contributions:\n%s\n\n"+
			"Write a 2-3 sentence summary of what %s learned or demonstrated in this session, "+
			"written in third person, suitable for enriching their persona profile. "+
			"Focus on positions taken, expertise shown and recurring themes. Reply with the summary only.",
		personaName, idea, strings.Join(contributions, "\n---\n"), personaName)
}
