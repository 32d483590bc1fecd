package client

// Tint 视觉色调，由呈现层自行解释为具体颜色
type Tint int

const (
	TintLocalIdle  Tint = iota // 本地玩家常态
	TintRemoteIdle             // 远端玩家常态
	TintFishing                // 钓鱼中（提示色）
	TintHooked                 // 咬钩（警示色）
)

// Visual 由 {状态, 朝向} 派生出的呈现属性集
type Visual struct {
	Tint   Tint
	Label  string
	Marker Vec2 // 朝向标记的单位位移
}

// VisualFor 纯函数：状态/朝向 → 呈现属性
// 未知状态按 idle 处理，未知朝向按 down 处理，永不报错
// 每次状态或朝向变化后都必须重新调用，保证视觉与注册表一致
func VisualFor(state State, dir Direction, local bool) Visual {
	v := Visual{Marker: dir.Vector()}
	switch state {
	case StateFishing:
		v.Tint = TintFishing
		v.Label = "Fishing..."
	case StateHooked:
		v.Tint = TintHooked
		v.Label = "Hooked!"
	default:
		if local {
			v.Tint = TintLocalIdle
		} else {
			v.Tint = TintRemoteIdle
		}
	}
	return v
}
