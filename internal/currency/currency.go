package currency

import "math"

// 各转换器的汇率常量是历史遗留的标定值，按平台各自维护
// 统一成一个全局汇率会悄悄改变已缓存与前端比对的价格，不能合并
const (
	// RateCNYToUSD 大多数字段使用的固定系数（乘法方向）
	RateCNYToUSD = 0.14

	// DivisorTaobaoUSD 淘宝标价美元的除数
	DivisorTaobaoUSD = 6.65

	// DivisorResponseUSD 响应视图重算美元时的除数
	DivisorResponseUSD = 6.7
)

// Round2 四舍五入到两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CNYToUSD 按固定系数把人民币金额换算成美元，保留两位小数
// 结果不会是负数以下的值：入参为负时返回 0
func CNYToUSD(cny float64, rate float64) float64 {
	if cny < 0 {
		return 0
	}
	return Round2(cny * rate)
}

// CNYDivUSD 按除数方向换算美元，保留两位小数
func CNYDivUSD(cny float64, divisor float64) float64 {
	if cny < 0 || divisor == 0 {
		return 0
	}
	return Round2(cny / divisor)
}

// NonNegative 把 NaN、Inf 和负数钳制为 0，价格字段永远非负
func NonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
