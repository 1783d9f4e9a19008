package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDocs() []Document {
	return []Document{
		{
			ID:        "persona-rebecca",
			Content:   "A visionary entrepreneur and trendspotter.",
			Metadata:  map[string]interface{}{"persona_name": "Rebecca", "field": "desc"},
			Embedding: []float64{1, 0, 0},
		},
		{
			ID:        "persona-leo",
			Content:   "A pragmatic hardware engineer.",
			Metadata:  map[string]interface{}{"persona_name": "Leo", "field": "desc"},
			Embedding: []float64{0, 1, 0},
		},
		{
			ID:        "persona-joy",
			Content:   "A UX researcher obsessed with user delight.",
			Metadata:  map[string]interface{}{"persona_name": "Joy", "field": "desc"},
			Embedding: []float64{0.9, 0.1, 0},
		},
	}
}

func TestFilterMatches(t *testing.T) {
	f := Filter{"persona_name": "rebecca"}

	assert.True(t, f.Matches(map[string]interface{}{"persona_name": "Rebecca"}))
	assert.True(t, f.Matches(map[string]interface{}{"persona_name": " Rebecca ", "field": "desc"}))
	assert.False(t, f.Matches(map[string]interface{}{"persona_name": "Leo"}))
	assert.False(t, f.Matches(map[string]interface{}{"field": "desc"}))
	assert.False(t, f.Matches(nil))

	// 空过滤器匹配一切
	assert.True(t, Filter{}.Matches(nil))
	assert.True(t, Filter(nil).Matches(map[string]interface{}{"x": "y"}))
}

func TestInMemoryStore_AddAndSearch(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(nil)

	require.NoError(t, store.AddDocuments(ctx, seedDocs()))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	results, err := store.Search(ctx, []float64{1, 0, 0}, 2, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Top-1 应为完全同向的向量
	assert.Equal(t, "persona-rebecca", results[0].Document.ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Equal(t, "persona-joy", results[1].Document.ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestInMemoryStore_SearchWithFilter(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(nil)
	require.NoError(t, store.AddDocuments(ctx, seedDocs()))

	results, err := store.Search(ctx, []float64{1, 0, 0}, 5, Filter{"persona_name": "leo"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "persona-leo", results[0].Document.ID)
}

func TestInMemoryStore_SearchEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(nil)

	results, err := store.Search(ctx, []float64{1, 0, 0}, 3, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestInMemoryStore_AddValidation(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(nil)

	err := store.AddDocuments(ctx, []Document{{Content: "no id", Embedding: []float64{1}}})
	assert.Error(t, err)

	err = store.AddDocuments(ctx, []Document{{ID: "x", Content: "no embedding"}})
	assert.Error(t, err)
}

func TestInMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(nil)
	require.NoError(t, store.AddDocuments(ctx, seedDocs()))

	require.NoError(t, store.DeleteDocuments(ctx, []string{"persona-leo", "missing"}))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	docs, err := store.GetAll(ctx)
	require.NoError(t, err)
	for _, doc := range docs {
		assert.NotEqual(t, "persona-leo", doc.ID)
	}
}

func TestInMemoryStore_GetAllStripsEmbeddings(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(nil)
	require.NoError(t, store.AddDocuments(ctx, seedDocs()))

	docs, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for _, doc := range docs {
		assert.Nil(t, doc.Embedding)
		assert.NotEmpty(t, doc.Content)
	}
}

func TestInMemoryStore_ClearAll(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(nil)
	require.NoError(t, store.AddDocuments(ctx, seedDocs()))

	var clearable Clearable = store
	require.NoError(t, clearable.ClearAll(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-9)

	// 维度不匹配或零向量返回 0
	assert.Equal(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{1}))
	assert.Equal(t, 0.0, cosineSimilarity([]float64{0, 0}, []float64{1, 1}))
}

func TestQdrantPointID_Stable(t *testing.T) {
	a := qdrantPointID("persona-rebecca")
	b := qdrantPointID("persona-rebecca")
	c := qdrantPointID("persona-leo")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 36)
}
