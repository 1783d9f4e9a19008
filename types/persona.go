package types

import (
	"fmt"
	"strings"
)

// Persona 表示一个具名的文本身份档案，用于条件化生成内容。
type Persona struct {
	// Name 在身份库中唯一标识该 Persona
	Name string `json:"name" yaml:"name"`

	// Desc 自由文本的"本质"描述
	Desc string `json:"desc" yaml:"desc"`

	// ShortBio 一句话简介（列表展示用）
	ShortBio string `json:"short_bio" yaml:"short_bio"`

	// DomainExpertise 专业领域集合
	DomainExpertise []string `json:"domain_expertise" yaml:"domain_expertise"`

	// PersonalityTraits 性格特质集合
	PersonalityTraits []string `json:"personality_traits" yaml:"personality_traits"`

	// RoleFunction 角色职能
	RoleFunction string `json:"role_function" yaml:"role_function"`

	// ExperienceLevel 经验水平（Junior/Intermediate/Senior/Expert）
	ExperienceLevel string `json:"experience_level" yaml:"experience_level"`

	// StyleKeywords 表达风格关键词集合
	StyleKeywords []string `json:"style_keywords" yaml:"style_keywords"`

	// LearnedSummary 会话结束后追加的学习摘要（可选，附加记录）
	LearnedSummary string `json:"learned_summary,omitempty" yaml:"learned_summary,omitempty"`
}

// Validate 校验 Persona 是否包含注册所需的全部字段。
func (p *Persona) Validate() error {
	var missing []string

	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(p.Desc) == "" {
		missing = append(missing, "desc")
	}
	if strings.TrimSpace(p.ShortBio) == "" {
		missing = append(missing, "short_bio")
	}
	if len(p.DomainExpertise) == 0 {
		missing = append(missing, "domain_expertise")
	}
	if len(p.PersonalityTraits) == 0 {
		missing = append(missing, "personality_traits")
	}
	if strings.TrimSpace(p.RoleFunction) == "" {
		missing = append(missing, "role_function")
	}
	if strings.TrimSpace(p.ExperienceLevel) == "" {
		missing = append(missing, "experience_level")
	}
	if len(p.StyleKeywords) == 0 {
		missing = append(missing, "style_keywords")
	}

	if len(missing) > 0 {
		return NewError(ErrPersonaInvalid,
			fmt.Sprintf("persona %q missing required fields: %s", p.Name, strings.Join(missing, ", ")))
	}
	return nil
}

// NormalizeName 返回用于存储键和比较的规范化名称（小写、空格转连字符）。
// 相似度存储不保证大小写归一，调用方负责归一化。
func NormalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

// NormalizeDomain 返回用于集合匹配的规范化领域名（大小写折叠、去首尾空白）。
func NormalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
