package embedding

import (
	"context"

	"github.com/BaSui01/ideastorm/internal/metrics"
)

// Metered 包装 Provider，为每次嵌入调用记录请求指标。
// 与限流 Provider 同属装饰器，可叠加使用。
type Metered struct {
	inner     Provider
	collector *metrics.Collector
}

// NewMetered 创建带指标采集的嵌入提供者。collector 为 nil 时退化为透传。
func NewMetered(inner Provider, collector *metrics.Collector) *Metered {
	return &Metered{inner: inner, collector: collector}
}

// Embed 为给定输入生成嵌入.
func (m *Metered) Embed(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResponse, error) {
	resp, err := m.inner.Embed(ctx, req)
	m.record(err)
	return resp, err
}

// EmbedQuery 嵌入单个查询.
func (m *Metered) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	vec, err := m.inner.EmbedQuery(ctx, query)
	m.record(err)
	return vec, err
}

// EmbedDocuments 嵌入多个文档.
func (m *Metered) EmbedDocuments(ctx context.Context, documents []string) ([][]float64, error) {
	vecs, err := m.inner.EmbedDocuments(ctx, documents)
	m.record(err)
	return vecs, err
}

// Name 返回底层提供者名称.
func (m *Metered) Name() string { return m.inner.Name() }

// Dimensions 返回底层默认嵌入维度.
func (m *Metered) Dimensions() int { return m.inner.Dimensions() }

func (m *Metered) record(err error) {
	if m.collector == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.collector.RecordEmbeddingRequest(m.inner.Name(), status)
}
