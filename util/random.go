package util

import (
	"math"
	"math/rand/v2"
)

// GetRandomRange 返回闭区间 [min, max] 内均匀分布的随机整数
// 区间跨度按无符号计算，[math.MinInt, math.MaxInt] 也不会溢出；max < min 时 panic
func GetRandomRange(min, max int) int {
	if max < min {
		panic("util: GetRandomRange called with max < min")
	}
	span := uint64(max) - uint64(min)
	if span == math.MaxUint64 {
		return int(rand.Uint64())
	}
	return int(uint64(min) + rand.Uint64N(span+1))
}
