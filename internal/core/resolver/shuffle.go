package resolver

import (
	"math/rand"
	"sort"

	"github.com/dep2p/go-xmpp/pkg/types"
)

// ============================================================================
//                              权重随机排序
// ============================================================================

// orderByPriority 按优先级分组排序服务记录
//
// 记录按优先级升序分组（数值小的先试），每组独立做权重
// 随机排序，再按优先级顺序拼接。
func orderByPriority(records []types.SRVRecord, rng *rand.Rand) []types.SRVRecord {
	sorted := make([]types.SRVRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	result := make([]types.SRVRecord, 0, len(sorted))
	for start := 0; start < len(sorted); {
		end := start
		for end < len(sorted) && sorted[end].Priority == sorted[start].Priority {
			end++
		}
		result = append(result, weightedShuffle(sorted[start:end], rng)...)
		start = end
	}
	return result
}

// weightedShuffle 对同优先级的记录做权重随机排序
//
// 记录被选中的概率与其权重成正比：items 为 [0,1]、权重为
// [10,30] 时，结果 25% 是 [0,1]，75% 是 [1,0]。
//
// 复杂度 O(n^2)，SRV 记录组最多几十条，可以接受。
func weightedShuffle(group []types.SRVRecord, rng *rand.Rand) []types.SRVRecord {
	items := make([]types.SRVRecord, len(group))
	copy(items, group)

	// 先整体随机打乱，使同权重的记录不受输入顺序影响
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})

	result := make([]types.SRVRecord, 0, len(items))
	cumulative := make([]int, 0, len(items))

	for len(items) > 0 {
		// 从左到右累加权重；若累加会溢出，把该权重按 0 处理
		// （防御病态输入）
		cumulative = cumulative[:0]
		total := 0
		for _, rec := range items {
			w := int(rec.Weight)
			if total+w < total {
				w = 0
			}
			total += w
			cumulative = append(cumulative, total)
		}

		// 全零权重时取首条剩余记录：预打乱已保证均匀性
		idx := 0
		if total > 0 {
			draw := rng.Intn(total)
			// 选中第一个累计权重严格大于 draw 的记录，
			// 即 draw 落在该记录的权重区间内
			idx = sort.SearchInts(cumulative, draw+1)
		}

		result = append(result, items[idx])
		items = append(items[:idx], items[idx+1:]...)
	}
	return result
}
