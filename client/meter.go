package client

import "fmt"

// HookMeter 钩子判定反馈条：纯反应式，只保存最近一次服务端推送，
// 不自带状态机；隐藏时不销毁，便于下一次推送直接复用
type HookMeter struct {
	visible bool
	last    HookAttemptData
}

// Apply 收到一次 hook_attempt_update 推送
func (m *HookMeter) Apply(data HookAttemptData) {
	m.visible = true
	m.last = data
}

// Hide 隐藏（咬钩确认、取消抛竿、钓线移除时）
func (m *HookMeter) Hide() { m.visible = false }

// Visible 当前是否应该显示
func (m *HookMeter) Visible() bool { return m.visible }

// View 派生出本帧的视觉参数，anchor 为本地玩家当前位置
// no_fish_nearby 时强制空条并隐藏阈值标记，无论推送里的 roll 是多少
func (m *HookMeter) View(anchor Vec2) MeterView {
	v := MeterView{
		Anchor:       anchor,
		AttemptsLeft: m.last.AttemptsLeft,
	}
	if m.last.Status == HookStatusNoFishNear {
		v.Label = fmt.Sprintf("No fish nearby (%d left)", m.last.AttemptsLeft)
		return v
	}
	v.RollFill = clamp01(m.last.Roll)
	v.Threshold = clamp01(m.last.Threshold)
	v.ShowThreshold = true
	v.Success = m.last.Roll < m.last.Threshold
	v.Label = fmt.Sprintf("Attempts left: %d", m.last.AttemptsLeft)
	return v
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
