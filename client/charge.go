package client

// 蓄力与抛竿的时间模型
const (
	MaxChargeMs  = 2000 // 蓄满所需毫秒数
	MinCastPower = 0.1
	MaxCastPower = 1.0
)

// ChargeState 本地蓄力状态；只在本地玩家按住蓄力期间存在，全局至多一份
type ChargeState struct {
	StartMs int64 // 按下时刻（wall-clock 毫秒）
}

// ChargeRatio 由绝对时间差算出的蓄力比例，裁剪到 [0,1]
// 永远从时间戳重算，不做逐帧累加，保证与帧率抖动无关
func ChargeRatio(nowMs, startMs int64) float64 {
	r := float64(nowMs-startMs) / float64(MaxChargeMs)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// CastPower 蓄力比例到抛竿力度的线性映射：[0,1] → [0.1,1.0]
func CastPower(ratio float64) float64 {
	return MinCastPower + (MaxCastPower-MinCastPower)*ratio
}
