package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDomainsStructuredList(t *testing.T) {
	j := ParseDomains(`["AI Ethics","Hardware"]`)
	assert.Equal(t, ParseStructured, j.Strategy)
	assert.Equal(t, []string{"AI Ethics", "Hardware"}, j.Domains)
}

func TestParseDomainsNumberedLines(t *testing.T) {
	j := ParseDomains("1) AI Ethics\n2) Hardware")
	assert.Equal(t, ParseLines, j.Strategy)
	assert.Equal(t, []string{"AI Ethics", "Hardware"}, j.Domains)
}

func TestParseDomainsBulletLines(t *testing.T) {
	j := ParseDomains("- AI Ethics\n- Hardware\n* Robotics")
	assert.Equal(t, ParseLines, j.Strategy)
	assert.Equal(t, []string{"AI Ethics", "Hardware", "Robotics"}, j.Domains)
}

func TestParseDomainsBracketFallback(t *testing.T) {
	j := ParseDomains("some text [AI Ethics, Hardware]")
	assert.Equal(t, ParseBracket, j.Strategy)
	assert.Equal(t, []string{"AI Ethics", "Hardware"}, j.Domains)
}

func TestParseDomainsNoGap(t *testing.T) {
	for _, raw := range []string{"No Gap", "no gap", "There is no gap in this discussion."} {
		j := ParseDomains(raw)
		assert.Equal(t, ParseEmpty, j.Strategy, "input %q", raw)
		assert.True(t, j.Empty())
	}
}

func TestParseDomainsUnparseable(t *testing.T) {
	for _, raw := range []string{"", "   ", "the discussion seems fine to me", "[]"} {
		j := ParseDomains(raw)
		assert.True(t, j.Empty(), "input %q", raw)
	}
}

// 短领域名（"AI"、"ML"）在结构化与括号切分里是合法条目
func TestParseDomainsKeepsShortNames(t *testing.T) {
	j := ParseDomains(`["AI"]`)
	assert.Equal(t, ParseStructured, j.Strategy)
	assert.Equal(t, []string{"AI"}, j.Domains)

	j = ParseDomains(`[AI, ML]`)
	assert.Equal(t, ParseBracket, j.Strategy)
	assert.Equal(t, []string{"AI", "ML"}, j.Domains)
}

// 行提取策略仍丢弃过短的噪声残片
func TestParseDomainsLineNoiseFiltered(t *testing.T) {
	j := ParseDomains("1. a\n2. AI Ethics")
	assert.Equal(t, ParseLines, j.Strategy)
	assert.Equal(t, []string{"AI Ethics"}, j.Domains)
}

func TestParseDomainsMalformedJSONFallsThrough(t *testing.T) {
	// 非法 JSON 但有方括号：结构化失败后括号切分接手
	j := ParseDomains(`[AI Ethics, Hardware]`)
	assert.Equal(t, ParseBracket, j.Strategy)
	assert.Equal(t, []string{"AI Ethics", "Hardware"}, j.Domains)
}

func TestParseDomainsStripsQuotes(t *testing.T) {
	j := ParseDomains("1. \"AI Ethics\"\n2. 'Hardware'")
	assert.Equal(t, ParseLines, j.Strategy)
	assert.Equal(t, []string{"AI Ethics", "Hardware"}, j.Domains)
}
