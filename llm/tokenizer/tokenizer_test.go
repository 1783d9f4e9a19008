package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForModel(t *testing.T) {
	tk := ForModel("gpt-4o")
	assert.Equal(t, "tiktoken[o200k_base]", tk.Name())
	assert.Equal(t, 128000, tk.MaxTokens())

	// 未知模型回退到估算器
	tk = ForModel("some-unknown-model")
	assert.Equal(t, "estimator", tk.Name())
}

func TestForModel_PrefixMatch(t *testing.T) {
	tk := ForModel("gpt-4o-2024-08-06")
	assert.Equal(t, "tiktoken[o200k_base]", tk.Name())
}

func TestEstimator_CountTokens(t *testing.T) {
	e := NewEstimatorTokenizer("any", 0)

	n, err := e.CountTokens("")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// ASCII ~4 chars/token
	n, err = e.CountTokens("hello world this is a test!!")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	// 短文本至少计 1 个 token
	n, err = e.CountTokens("a")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEstimator_CJK(t *testing.T) {
	e := NewEstimatorTokenizer("any", 0)

	ascii, err := e.CountTokens("abcdefgh")
	require.NoError(t, err)
	cjk, err := e.CountTokens("一二三四五六七八")
	require.NoError(t, err)

	// 同字符数下 CJK 的 token 估算应更高
	assert.Greater(t, cjk, ascii)
}

func TestEstimator_CountMessages(t *testing.T) {
	e := NewEstimatorTokenizer("any", 0)

	n, err := e.CountMessages([]Message{
		{Role: "system", Content: "You are a helpful assistant."},
		{Role: "user", Content: "hi"},
	})
	require.NoError(t, err)
	// 两条消息各 +4 开销，对话结束 +3
	assert.Greater(t, n, 11)
}

func TestEstimator_MaxTokensDefault(t *testing.T) {
	e := NewEstimatorTokenizer("any", 0)
	assert.Equal(t, 4096, e.MaxTokens())

	e = NewEstimatorTokenizer("any", 9000)
	assert.Equal(t, 9000, e.MaxTokens())
}
