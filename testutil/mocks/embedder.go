// =============================================================================
// 🧪 Mock Embedder
// =============================================================================
// 用于测试的模拟嵌入服务：从文本哈希生成确定性向量，
// 相同文本总是得到相同向量，方便断言检索行为
// =============================================================================
package mocks

import (
	"context"
	"hash/fnv"
	"sync"
)

// MockEmbedder 模拟的嵌入服务
type MockEmbedder struct {
	mu sync.RWMutex

	dimension int
	err       error

	queryCalls    int
	documentCalls int
}

// NewMockEmbedder 创建 Mock Embedder，向量维度默认 8
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{dimension: 8}
}

// WithDimension 设置向量维度
func (m *MockEmbedder) WithDimension(dim int) *MockEmbedder {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dimension = dim
	return m
}

// WithError 设置返回的错误
func (m *MockEmbedder) WithError(err error) *MockEmbedder {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// EmbedQuery 返回查询文本的确定性向量
func (m *MockEmbedder) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queryCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.vectorFor(query), nil
}

// EmbedDocuments 返回一批文档的确定性向量
func (m *MockEmbedder) EmbedDocuments(ctx context.Context, documents []string) ([][]float64, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documentCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float64, len(documents))
	for i, doc := range documents {
		out[i] = m.vectorFor(doc)
	}
	return out, nil
}

// QueryCalls 返回 EmbedQuery 被调用的次数
func (m *MockEmbedder) QueryCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.queryCalls
}

// DocumentCalls 返回 EmbedDocuments 被调用的次数
func (m *MockEmbedder) DocumentCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documentCalls
}

// vectorFor 从文本哈希生成确定性向量，分量范围 [0, 1)
func (m *MockEmbedder) vectorFor(text string) []float64 {
	vec := make([]float64, m.dimension)
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float64(seed%1000) / 1000.0
	}
	return vec
}
