package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/BaSui01/ideastorm/session"
	"github.com/BaSui01/ideastorm/testutil"
	"github.com/BaSui01/ideastorm/testutil/mocks"
	"github.com/BaSui01/ideastorm/types"
)

// 性质：缺口检查关闭时，总轮次恒等于 N×T，
// 且每个角色的转写恰有 T 条、严格时间有序。
func TestSchedulerTurnCountProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(rt, "n")
		turnsEach := rapid.IntRange(1, 4).Draw(rt, "turnsEach")

		names := make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("P%d", i)
		}

		cfg := testSessionConfig()
		cfg.TurnsEach = turnsEach
		provider := mocks.NewMockProvider().WithCompletionFunc(sequencedResponses())
		te := newTestEngine(t, cfg, provider)

		sess := session.NewSession("idea")
		te.log.Bind(sess)
		sched := newScheduler(te.engine, sess, names)
		require.NoError(t, sched.Run(testutil.TestContext(t)))

		assert.Equal(t, n*turnsEach, len(sched.records))
		for _, name := range names {
			assert.Len(t, sched.history[name], turnsEach)
		}

		// 严格轮转：第 i 轮的发言者是 roster[i mod N]
		for i, rec := range sched.records {
			assert.Equal(t, names[i%n], rec.Persona)
			assert.Equal(t, i, rec.Seq)
			assert.Equal(t, i/n, rec.Round)
		}
	})
}

// 性质：每条轮次记录的内容与对应角色转写槽一致
func TestSchedulerRecordsMatchHistory(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 4).Draw(rt, "n")
		turnsEach := rapid.IntRange(1, 3).Draw(rt, "turnsEach")

		names := make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("P%d", i)
		}

		cfg := testSessionConfig()
		cfg.TurnsEach = turnsEach
		provider := mocks.NewMockProvider().WithCompletionFunc(sequencedResponses())
		te := newTestEngine(t, cfg, provider)

		sess := session.NewSession("idea")
		te.log.Bind(sess)
		sched := newScheduler(te.engine, sess, names)
		require.NoError(t, sched.Run(testutil.TestContext(t)))

		for _, rec := range sched.records {
			assert.Equal(t, sched.history[rec.Persona][rec.Round], rec.Content)
		}
	})
}

func TestSchedulerZeroBudgetIsNoop(t *testing.T) {
	cfg := testSessionConfig()
	cfg.TurnsEach = 0
	provider := mocks.NewMockProvider()
	te := newTestEngine(t, cfg, provider)

	sess := session.NewSession("idea")
	te.log.Bind(sess)
	sched := newScheduler(te.engine, sess, []string{"A"})
	require.NoError(t, sched.Run(testutil.TestContext(t)))
	assert.Empty(t, sched.records)
	assert.Zero(t, provider.CallCount())
}

// 缺口检查激活库中已有角色：花名册中途扩编，
// 新角色获得自己的 T 轮，上界随之重算。
func TestSchedulerGapActivatesExistingPersona(t *testing.T) {
	ctx := testutil.TestContext(t)

	cfg := testSessionConfig()
	cfg.TurnsEach = 2
	cfg.GapCheckEnabled = true

	// 第一轮结束后报告缺口，之后都是 No Gap
	provider := mocks.NewMockProvider().WithCompletionFunc(judgeScripted([]string{`["AI Ethics"]`}))
	te := newTestEngine(t, cfg, provider)

	// 库里有一个未上场的 AI Ethics 专家
	ethicist := rosterOf("Echo")[0]
	ethicist.DomainExpertise = []string{"AI Ethics"}
	require.NoError(t, te.identity.Register(ctx, ethicist))

	sess := session.NewSession("idea")
	te.log.Bind(sess)
	sched := newScheduler(te.engine, sess, []string{"A", "B"})
	require.NoError(t, sched.Run(ctx))

	assert.Equal(t, []string{"A", "B", "Echo"}, sched.roster)
	assert.Equal(t, 3*cfg.TurnsEach, len(sched.records))
	for _, name := range sched.roster {
		assert.Len(t, sched.history[name], cfg.TurnsEach, "persona %s", name)
	}

	// 扩编之后仍然严格按当时的花名册轮转
	for i, rec := range sched.records {
		if i < 2 {
			assert.Equal(t, []string{"A", "B"}[i%2], rec.Persona)
		} else {
			assert.Equal(t, sched.roster[i%3], rec.Persona)
		}
	}
}

// 没有匹配的库存角色时恰好合成一个新角色并注册
func TestSchedulerGapSynthesizesPersona(t *testing.T) {
	ctx := testutil.TestContext(t)

	cfg := testSessionConfig()
	cfg.TurnsEach = 2
	cfg.GapCheckEnabled = true

	provider := mocks.NewMockProvider().WithCompletionFunc(judgeScripted([]string{`["Quantum Computing"]`}))
	te := newTestEngine(t, cfg, provider)

	sess := session.NewSession("idea")
	te.log.Bind(sess)
	sched := newScheduler(te.engine, sess, []string{"A", "B"})
	require.NoError(t, sched.Run(ctx))

	assert.Equal(t, []string{"A", "B", "Quentin"}, sched.roster)
	assert.Len(t, sched.history["Quentin"], cfg.TurnsEach)

	// 合成角色已注册进身份存储
	p, ok, err := te.identity.Get(ctx, "Quentin")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"Quantum Computing"}, p.DomainExpertise)
}

// 判定输出全部解析失败按无缺口处理，不中断会话
func TestSchedulerGapMalformedJudgmentRecovers(t *testing.T) {
	ctx := testutil.TestContext(t)

	cfg := testSessionConfig()
	cfg.TurnsEach = 1
	cfg.GapCheckEnabled = true

	provider := mocks.NewMockProvider().WithCompletionFunc(judgeScripted([]string{"the coverage looks broad enough to me"}))
	te := newTestEngine(t, cfg, provider)

	sess := session.NewSession("idea")
	te.log.Bind(sess)
	sched := newScheduler(te.engine, sess, []string{"A", "B"})
	require.NoError(t, sched.Run(ctx))

	assert.Equal(t, []string{"A", "B"}, sched.roster)
	assert.Len(t, sched.records, 2)
}

// 角色合成输出不可解析是该次构造的致命失败，中止会话
func TestSchedulerGapMalformedSynthesisAborts(t *testing.T) {
	ctx := testutil.TestContext(t)

	cfg := testSessionConfig()
	cfg.TurnsEach = 2
	cfg.GapCheckEnabled = true

	provider := mocks.NewMockProvider().WithCompletionFunc(judgeScriptedWithSynthesis(
		[]string{`["Quantum Computing"]`},
		"sorry, I cannot produce JSON today",
	))
	te := newTestEngine(t, cfg, provider)

	sess := session.NewSession("idea")
	te.log.Bind(sess)
	sched := newScheduler(te.engine, sess, []string{"A", "B"})
	err := sched.Run(ctx)
	require.Error(t, err)
	assert.Equal(t, types.ErrPersonaSynthesis, types.GetErrorCode(err))
}

// 花名册单调性：已激活角色不会被重复加入
func TestSchedulerGapActivationIdempotent(t *testing.T) {
	ctx := testutil.TestContext(t)

	cfg := testSessionConfig()
	cfg.TurnsEach = 3
	cfg.GapCheckEnabled = true

	// 每轮都报告同一个缺口
	provider := mocks.NewMockProvider().WithCompletionFunc(judgeScripted([]string{
		`["AI Ethics"]`, `["AI Ethics"]`, `["AI Ethics"]`, `["AI Ethics"]`, `["AI Ethics"]`,
	}))
	te := newTestEngine(t, cfg, provider)

	ethicist := rosterOf("Echo")[0]
	ethicist.DomainExpertise = []string{"AI Ethics"}
	require.NoError(t, te.identity.Register(ctx, ethicist))

	sess := session.NewSession("idea")
	te.log.Bind(sess)
	sched := newScheduler(te.engine, sess, []string{"A"})
	require.NoError(t, sched.Run(ctx))

	// Echo 只被激活一次，后续同领域判定不再改动花名册
	assert.Equal(t, []string{"A", "Echo"}, sched.roster)
	assert.Len(t, sched.records, 2*cfg.TurnsEach)
	_, ok, err := te.identity.Get(ctx, "Quentin")
	require.NoError(t, err)
	assert.False(t, ok, "covered gap must not trigger synthesis")
}

// 判定领域已被场上角色覆盖时，检查必须是无动作：
// 既不重复激活，也不为同一领域合成新角色。
func TestSchedulerGapCoveredByActiveRoster(t *testing.T) {
	ctx := testutil.TestContext(t)

	cfg := testSessionConfig()
	cfg.TurnsEach = 2
	cfg.GapCheckEnabled = true

	provider := mocks.NewMockProvider().WithCompletionFunc(judgeScripted([]string{
		`["AI Ethics"]`, `["AI Ethics"]`,
	}))
	te := newTestEngine(t, cfg, provider)

	// 场上唯一角色本身就是 AI Ethics 专家
	ethicist := rosterOf("A")[0]
	ethicist.DomainExpertise = []string{"AI Ethics"}
	require.NoError(t, te.identity.Register(ctx, ethicist))

	sess := session.NewSession("idea")
	te.log.Bind(sess)
	sched := newScheduler(te.engine, sess, []string{"A"})
	require.NoError(t, sched.Run(ctx))

	assert.Equal(t, []string{"A"}, sched.roster)
	assert.Len(t, sched.records, cfg.TurnsEach)

	// 覆盖中的领域不得引发合成
	_, ok, err := te.identity.Get(ctx, "Quentin")
	require.NoError(t, err)
	assert.False(t, ok)
}
