package profile

import (
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/forsakeprojects/partnur-backend/entity"
	"github.com/forsakeprojects/partnur-backend/pkg/str"
)

// Apply 把抽取结果合并进画像：标量后写覆盖，列表去重并集
// 返回真正发生变化的字段名，顺序与字段表一致（同一次调用内稳定）
// schema 之外的键一律丢弃，不落库；重复应用同一份抽取结果不产生新变化
func Apply(p *entity.BusinessProfile, proposed map[string]interface{}, now time.Time) []string {
	if p == nil || len(proposed) == 0 {
		return nil
	}

	var changed []string
	for i := range fields {
		spec := &fields[i]
		if spec.apply == nil {
			// 标识字段不可通过合并写入
			continue
		}
		value, ok := proposed[spec.Name]
		if !ok || value == nil {
			continue
		}
		if spec.apply(p, value) {
			changed = append(changed, spec.Name)
		}
	}

	if len(changed) > 0 {
		p.LastProfileUpdate = now
		p.UpdatedAt = now
	}
	return changed
}

// Filter 过滤抽取结果，只保留 schema 认可且可合并的字段
// 抽取输出必须先过这层再进 Apply，避免任意键落到画像上
func Filter(proposed map[string]interface{}) map[string]interface{} {
	if len(proposed) == 0 {
		return map[string]interface{}{}
	}

	res := make(map[string]interface{}, len(proposed))
	for name, value := range proposed {
		spec, ok := fieldIndex[name]
		if !ok || spec.apply == nil || value == nil {
			continue
		}
		res[name] = value
	}
	return res
}

// setText 标量文本覆盖写，空值不写
func setText(dst *string, value interface{}) bool {
	s := strings.TrimSpace(cast.ToString(value))
	if s == "" || *dst == s {
		return false
	}
	*dst = s
	return true
}

// setAmount 金额类标量，容忍 "80,000"、"₹80000" 等写法
func setAmount(dst *int64, value interface{}) bool {
	v, ok := toAmount(value)
	if !ok || v <= 0 || *dst == v {
		return false
	}
	*dst = v
	return true
}

// setCount 数量类标量
func setCount(dst *int, value interface{}) bool {
	v, ok := toAmount(value)
	if !ok || v <= 0 || int64(*dst) == v {
		return false
	}
	*dst = int(v)
	return true
}

func toAmount(value interface{}) (int64, bool) {
	if v, err := cast.ToInt64E(value); err == nil {
		return v, true
	}
	return str.ParseAmount(cast.ToString(value))
}

// mergeSequence 列表并集：保持已有顺序，新元素按出现顺序追加，按字面值去重
func mergeSequence(dst *[]string, value interface{}) bool {
	items := toStringList(value)
	if len(items) == 0 {
		return false
	}

	seen := make(map[string]bool, len(*dst)+len(items))
	for _, v := range *dst {
		seen[v] = true
	}

	appended := false
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		*dst = append(*dst, item)
		seen[item] = true
		appended = true
	}
	return appended
}

// toStringList 把抽取值拗成字符串列表：单个字符串视为单元素列表
func toStringList(value interface{}) []string {
	switch v := value.(type) {
	case string:
		if t := strings.TrimSpace(v); t != "" {
			return []string{t}
		}
		return nil
	default:
		items, err := cast.ToStringSliceE(value)
		if err != nil {
			return nil
		}
		return items
	}
}
