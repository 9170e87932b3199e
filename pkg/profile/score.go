package profile

import (
	"sort"

	"github.com/forsakeprojects/partnur-backend/entity"
)

// Score 计算完整度得分 [0,100]：已填写字段权重和占总权重的百分比，四舍五入
// 纯函数，不修改画像；每次合并成功后必须重算并随画像一起落库
func Score(p *entity.BusinessProfile) int {
	if p == nil {
		return 0
	}

	sum := 0
	for i := range fields {
		if fields[i].filled(p) {
			sum += fields[i].Weight
		}
	}
	return roundPercent(sum, totalWeight)
}

// Missing 返回未填写的字段定义，按权重从高到低排序（同权重按字段表顺序）
// 追问引导按这个顺序挑字段
func Missing(p *entity.BusinessProfile) []FieldSpec {
	var missing []FieldSpec
	for i := range fields {
		if fields[i].apply == nil {
			continue
		}
		if !fields[i].filled(p) {
			missing = append(missing, fields[i])
		}
	}

	sort.SliceStable(missing, func(i, j int) bool {
		return missing[i].Weight > missing[j].Weight
	})
	return missing
}

// roundPercent 四舍五入的百分比，part/total 非负
func roundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}
