package str

import (
	"strconv"
	"strings"
	"unicode"
)

// 字符串转int
func StringToInt(str string) (int, error) {
	if str == "" {
		return 0, nil
	}

	i, err := strconv.Atoi(str)
	if err != nil {
		return 0, err
	}

	return i, err
}

// NormalizeMobile 规范化手机号：去掉空格、横线、括号等符号，保留开头的 +
// 例："+91 98765-43210" => "+919876543210"
func NormalizeMobile(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range s {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	normalized := b.String()
	if normalized == "" || normalized == "+" {
		return ""
	}
	return normalized
}

// ParseAmount 解析金额文本为整数，容忍货币符号、逗号和小数部分
// 例："₹80,000"、"Rs. 80000"、"80000.50" 均解析为 80000
func ParseAmount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	var b strings.Builder
	seenDigit := false
loop:
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
			seenDigit = true
		case r == ',' || r == ' ':
			// 千位分隔符，跳过
		case r == '.':
			// 小数部分截断
			if seenDigit {
				break loop
			}
		default:
			// 货币符号、单位等：数字出现前跳过，出现后截断
			if seenDigit {
				break loop
			}
		}
	}

	if !seenDigit {
		return 0, false
	}

	v, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
