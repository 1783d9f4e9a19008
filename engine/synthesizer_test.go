package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/ideastorm/testutil"
	"github.com/BaSui01/ideastorm/testutil/mocks"
	"github.com/BaSui01/ideastorm/types"
)

// B 中途加入、比 A 少一轮：线性化必须按 t1(A,0), t2(B,0), t3(A,1)
// 产出，且不给 B 伪造第 1 轮。
func TestLinearizeMidSessionJoin(t *testing.T) {
	roster := []string{"A", "B"}
	history := map[string][]string{
		"A": {"t1", "t3"},
		"B": {"t2"},
	}

	turns := Linearize(roster, history)
	require.Len(t, turns, 3)
	assert.Equal(t, LinearTurn{Persona: "A", Round: 0, Content: "t1"}, turns[0])
	assert.Equal(t, LinearTurn{Persona: "B", Round: 0, Content: "t2"}, turns[1])
	assert.Equal(t, LinearTurn{Persona: "A", Round: 1, Content: "t3"}, turns[2])
}

func TestLinearizeUniformRoster(t *testing.T) {
	roster := []string{"A", "B", "C"}
	history := map[string][]string{
		"A": {"a0", "a1"},
		"B": {"b0", "b1"},
		"C": {"c0", "c1"},
	}

	turns := Linearize(roster, history)
	require.Len(t, turns, 6)
	want := []string{"a0", "b0", "c0", "a1", "b1", "c1"}
	for i, turn := range turns {
		assert.Equal(t, want[i], turn.Content)
		assert.Equal(t, roster[i%3], turn.Persona)
		assert.Equal(t, i/3, turn.Round)
	}
}

func TestLinearizeEmpty(t *testing.T) {
	assert.Empty(t, Linearize(nil, nil))
	assert.Empty(t, Linearize([]string{"A"}, map[string][]string{"A": {}}))
}

func TestSynthesizeBuildsAttributedTranscript(t *testing.T) {
	ctx := testutil.TestContext(t)
	provider := mocks.NewMockProvider().WithResponse("# Proposal\nExecutive Summary ...")
	te := newTestEngine(t, testSessionConfig(), provider)

	roster := rosterOf("A")
	require.NoError(t, te.identity.Register(ctx, roster[0]))

	synth := newSynthesizer(te.engine)
	proposal, err := synth.Synthesize(ctx, "the idea", []string{"A"}, map[string][]string{
		"A": {"first message", "second message"},
	})
	require.NoError(t, err)
	assert.Equal(t, "# Proposal\nExecutive Summary ...", proposal)

	// 提示词里带上了身份署名与固定大纲
	call, ok := provider.LastCall()
	require.True(t, ok)
	user := call.Request.Messages[1].Content
	assert.Contains(t, user, "--- Turn 1: A (A is a test participant.) ---")
	assert.Contains(t, user, "--- Turn 2: A")
	assert.Contains(t, user, "1. Executive Summary")
	assert.Contains(t, user, "6. Risk Mitigation")
}

func TestSynthesizeFailure(t *testing.T) {
	ctx := testutil.TestContext(t)
	provider := mocks.NewMockProvider().WithError(assert.AnError)
	te := newTestEngine(t, testSessionConfig(), provider)

	synth := newSynthesizer(te.engine)
	_, err := synth.Synthesize(ctx, "idea", []string{"A"}, map[string][]string{"A": {"t"}})
	require.Error(t, err)
	assert.Equal(t, types.ErrSynthesisFailed, types.GetErrorCode(err))
}

func TestSynthesizeEmptyOutputFails(t *testing.T) {
	ctx := testutil.TestContext(t)
	provider := mocks.NewMockProvider().WithResponse("")
	te := newTestEngine(t, testSessionConfig(), provider)

	synth := newSynthesizer(te.engine)
	_, err := synth.Synthesize(ctx, "idea", []string{"A"}, map[string][]string{"A": {"t"}})
	require.Error(t, err)
	assert.Equal(t, types.ErrSynthesisFailed, types.GetErrorCode(err))
}
