package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/ideastorm/testutil"
	"github.com/BaSui01/ideastorm/testutil/mocks"
	"github.com/BaSui01/ideastorm/types"
	"github.com/BaSui01/ideastorm/vectorstore"
)

func TestArchiveAppendAndSearch(t *testing.T) {
	ctx := testutil.TestContext(t)
	archive := NewArchive(vectorstore.NewInMemoryStore(nil), mocks.NewMockEmbedder(), nil)

	records := []types.ArchiveRecord{
		{SessionID: "session_aaaa", Persona: "Rebecca", Content: "Urban commuters are an underserved market."},
		{SessionID: "session_aaaa", Persona: "Leo", Content: "Location data retention must be bounded."},
		{SessionID: "session_bbbb", Persona: "Hiro", Content: "Edge inference keeps the BOM realistic."},
	}
	for _, rec := range records {
		require.NoError(t, archive.Append(ctx, rec))
	}

	snippets, err := archive.SearchPastSessions(ctx, "market", 10)
	require.NoError(t, err)
	require.Len(t, snippets, 3)

	// 命中携带来源会话与发言者
	seen := make(map[string]string)
	for _, s := range snippets {
		assert.NotEmpty(t, s.SessionID)
		assert.NotEmpty(t, s.Persona)
		seen[s.Content] = s.SessionID
	}
	assert.Equal(t, "session_bbbb", seen["Edge inference keeps the BOM realistic."])
}

func TestArchiveSearchDefaultK(t *testing.T) {
	ctx := testutil.TestContext(t)
	archive := NewArchive(vectorstore.NewInMemoryStore(nil), mocks.NewMockEmbedder(), nil)

	snippets, err := archive.SearchPastSessions(ctx, "anything", 0)
	require.NoError(t, err)
	assert.Empty(t, snippets)
}
