package resolver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-xmpp/pkg/types"
)

// TestWeightedShuffle_Distribution 测试权重分布
//
// 权重 [10, 30] 的两条记录，权重大的排在首位的概率应约为
// 0.75（统计性质，允许合理偏差）。
func TestWeightedShuffle_Distribution(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	records := []types.SRVRecord{
		{Target: "light.example.com", Weight: 10},
		{Target: "heavy.example.com", Weight: 30},
	}

	const trials = 10000
	heavyFirst := 0
	for i := 0; i < trials; i++ {
		ordered := weightedShuffle(records, rng)
		require.Len(t, ordered, 2)
		if ordered[0].Target == "heavy.example.com" {
			heavyFirst++
		}
	}

	ratio := float64(heavyFirst) / trials
	assert.InDelta(t, 0.75, ratio, 0.03, "权重 30:10 时大权重应约 75%% 领先，实际 %f", ratio)
}

// TestWeightedShuffle_EqualWeights 测试同权重的顺序随机化
//
// 同权重记录不应偏向输入顺序。
func TestWeightedShuffle_EqualWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	records := []types.SRVRecord{
		{Target: "a.example.com", Weight: 5},
		{Target: "b.example.com", Weight: 5},
	}

	const trials = 10000
	aFirst := 0
	for i := 0; i < trials; i++ {
		if weightedShuffle(records, rng)[0].Target == "a.example.com" {
			aFirst++
		}
	}

	ratio := float64(aFirst) / trials
	assert.InDelta(t, 0.5, ratio, 0.03)
}

// TestWeightedShuffle_ZeroWeights 测试全零权重
//
// 全零权重时按预打乱后的顺序取首条，结果仍应包含全部记录。
func TestWeightedShuffle_ZeroWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	records := []types.SRVRecord{
		{Target: "a.example.com", Weight: 0},
		{Target: "b.example.com", Weight: 0},
		{Target: "c.example.com", Weight: 0},
	}

	ordered := weightedShuffle(records, rng)
	require.Len(t, ordered, 3)

	seen := map[string]bool{}
	for _, rec := range ordered {
		seen[rec.Target] = true
	}
	assert.Len(t, seen, 3)
}

// TestWeightedShuffle_MixedZeroWeights 测试零权重与正权重混合
//
// 有正权重存在时，零权重记录不应排在正权重记录之前。
func TestWeightedShuffle_MixedZeroWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	records := []types.SRVRecord{
		{Target: "zero.example.com", Weight: 0},
		{Target: "pos.example.com", Weight: 100},
	}

	for i := 0; i < 1000; i++ {
		ordered := weightedShuffle(records, rng)
		assert.Equal(t, "pos.example.com", ordered[0].Target)
	}
}

// TestWeightedShuffle_Empty 测试空组
func TestWeightedShuffle_Empty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Empty(t, weightedShuffle(nil, rng))
}

// TestOrderByPriority 测试优先级分组
//
// 优先级 [0,0,1] 的记录中，优先级 1 必须永远排在最后，
// 与权重无关。
func TestOrderByPriority(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	records := []types.SRVRecord{
		{Target: "p1.example.com", Priority: 1, Weight: 10000},
		{Target: "p0a.example.com", Priority: 0, Weight: 1},
		{Target: "p0b.example.com", Priority: 0, Weight: 1},
	}

	for i := 0; i < 500; i++ {
		ordered := orderByPriority(records, rng)
		require.Len(t, ordered, 3)
		assert.Equal(t, "p1.example.com", ordered[2].Target,
			"低优先数值的组必须整体领先")
		assert.Equal(t, uint16(0), ordered[0].Priority)
		assert.Equal(t, uint16(0), ordered[1].Priority)
	}
}

// TestOrderByPriority_PreservesAll 测试记录不丢不重
func TestOrderByPriority_PreservesAll(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	records := []types.SRVRecord{
		{Target: "a", Priority: 20, Weight: 1},
		{Target: "b", Priority: 10, Weight: 2},
		{Target: "c", Priority: 10, Weight: 3},
		{Target: "d", Priority: 0, Weight: 0},
		{Target: "e", Priority: 20, Weight: 7},
	}

	ordered := orderByPriority(records, rng)
	require.Len(t, ordered, len(records))

	seen := map[string]int{}
	for _, rec := range ordered {
		seen[rec.Target]++
	}
	for _, rec := range records {
		assert.Equal(t, 1, seen[rec.Target], "记录 %s 应恰好出现一次", rec.Target)
	}

	// 组间顺序：0 在前，10 居中，20 在后
	assert.Equal(t, "d", ordered[0].Target)
	assert.Equal(t, uint16(10), ordered[1].Priority)
	assert.Equal(t, uint16(10), ordered[2].Priority)
	assert.Equal(t, uint16(20), ordered[3].Priority)
	assert.Equal(t, uint16(20), ordered[4].Priority)
}
