package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/ideastorm/testutil"
	"github.com/BaSui01/ideastorm/types"
)

func TestSelectorListMode(t *testing.T) {
	ctx := testutil.TestContext(t)
	store, _ := newTestStore(t)
	_, err := store.Init(ctx)
	require.NoError(t, err)

	sel := NewSelector(store, nil)

	roster, err := sel.Select(ctx, ModeList, "", []string{"Rebecca", "Leo", "Joy"}, 0)
	require.NoError(t, err)
	require.Len(t, roster, 3)
	assert.Equal(t, "Rebecca", roster[0].Name)
	assert.Equal(t, "Leo", roster[1].Name)
	assert.Equal(t, "Joy", roster[2].Name)
}

func TestSelectorListModeSkipsUnknown(t *testing.T) {
	ctx := testutil.TestContext(t)
	store, _ := newTestStore(t)
	_, err := store.Init(ctx)
	require.NoError(t, err)

	sel := NewSelector(store, nil)

	roster, err := sel.Select(ctx, ModeList, "", []string{"Rebecca", "Nonexistent"}, 0)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Rebecca", roster[0].Name)
}

func TestSelectorEmptyRosterFails(t *testing.T) {
	ctx := testutil.TestContext(t)
	store, _ := newTestStore(t)

	sel := NewSelector(store, nil)

	_, err := sel.Select(ctx, ModeList, "", []string{"Nobody"}, 0)
	require.Error(t, err)
	assert.Equal(t, types.ErrPersonaInvalid, types.GetErrorCode(err))
}

func TestSelectorSemanticMode(t *testing.T) {
	ctx := testutil.TestContext(t)
	store, _ := newTestStore(t)
	_, err := store.Init(ctx)
	require.NoError(t, err)

	sel := NewSelector(store, nil)

	roster, err := sel.Select(ctx, ModeSemantic, "sustainable consumer hardware", nil, 0)
	require.NoError(t, err)
	assert.Len(t, roster, 3) // k 默认为 3
}

func TestSelectorAutoMode(t *testing.T) {
	ctx := testutil.TestContext(t)
	store, _ := newTestStore(t)
	_, err := store.Init(ctx)
	require.NoError(t, err)

	sel := NewSelector(store, nil)

	// 有名单走 list
	roster, err := sel.Select(ctx, ModeAuto, "topic", []string{"Amir"}, 5)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Amir", roster[0].Name)

	// 无名单走语义检索
	roster, err = sel.Select(ctx, ModeAuto, "fintech regulation", nil, 2)
	require.NoError(t, err)
	assert.Len(t, roster, 2)
}

func TestSelectorUnknownMode(t *testing.T) {
	ctx := testutil.TestContext(t)
	store, _ := newTestStore(t)
	sel := NewSelector(store, nil)

	_, err := sel.Select(ctx, SelectionMode("bogus"), "", nil, 0)
	require.Error(t, err)
}
