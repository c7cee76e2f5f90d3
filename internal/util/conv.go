package util

import (
	"strconv"
	"strings"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseUintList parses "1,2,3"; blank and malformed entries are skipped.
func ParseUintList(s string) []uint {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []uint
	for _, part := range strings.Split(s, ",") {
		if id := MustParseUint(strings.TrimSpace(part)); id > 0 {
			out = append(out, id)
		}
	}
	return out
}
