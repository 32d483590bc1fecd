package client

// Emitter 出站事件的发送端（由传输层实现，测试用桩替换）
type Emitter interface {
	Emit(event string, data any)
}

// Controller 本地玩家控制器：把离散输入翻译成移动/转向/抛竿动作
// 蓄力(charging)是叠在 idle 之上的本地子模式，服务端确认前不改实体状态
// 所有输入在 welcome 之前（本地实体不存在时）一律 no-op
type Controller struct {
	reg   *Registry
	out   Emitter
	sink  Sink
	meter *HookMeter

	charge *ChargeState // nil 表示未在蓄力
	step   float64      // 单次移动步长，可经调试端点热调
}

// NewController 创建控制器
func NewController(reg *Registry, out Emitter, sink Sink, meter *HookMeter) *Controller {
	if sink == nil {
		sink = NopSink{}
	}
	return &Controller{reg: reg, out: out, sink: sink, meter: meter, step: MoveStep}
}

// Charging 当前是否在蓄力
func (c *Controller) Charging() bool { return c.charge != nil }

// ChargeFill 本帧蓄力条的填充比例；未蓄力时返回 0
// 永远由绝对时间戳重算，跳帧/乱序都不会出错
func (c *Controller) ChargeFill(nowMs int64) float64 {
	if c.charge == nil {
		return 0
	}
	return ChargeRatio(nowMs, c.charge.StartMs)
}

// PointerDown 指针按下：idle 且自己没有钓线时开始蓄力
func (c *Controller) PointerDown(nowMs int64) {
	p := c.reg.Local()
	if p == nil {
		return
	}
	if p.State != StateIdle || c.charge != nil {
		return
	}
	if c.reg.Line(p.ID) != nil {
		return
	}
	c.charge = &ChargeState{StartMs: nowMs}
	c.sink.ShowCharge(0)
}

// PointerUp 指针松开：按蓄力时长发出 start_cast，目标取松开时刻的指针落点
// 发出请求后本地仍视为 idle，是否进入 fishing 由服务端事件决定
func (c *Controller) PointerUp(nowMs int64, target Vec2) {
	p := c.reg.Local()
	if p == nil || c.charge == nil {
		return
	}
	power := CastPower(ChargeRatio(nowMs, c.charge.StartMs))
	c.charge = nil
	c.sink.HideCharge()
	c.out.Emit(EvStartCast, StartCastData{Power: power, Target: target})
}

// Cancel 取消键：蓄力中 → 纯本地放弃，不发网络事件；
// 钓鱼中 → 发 cancel_cast 并乐观隐藏判定条，状态等服务端确认
func (c *Controller) Cancel() {
	p := c.reg.Local()
	if p == nil {
		return
	}
	if c.charge != nil {
		c.charge = nil
		c.sink.HideCharge()
		return
	}
	if p.State == StateFishing {
		c.meter.Hide()
		c.sink.HideMeter()
		c.out.Emit(EvCancelCast, nil)
	}
}

// Move 沿当前朝向前进(+1)或后退(-1)一步，裁剪到世界边界后上报
// 按当前设计不受 charging/fishing/hooked 限制
func (c *Controller) Move(sign float64) {
	p := c.reg.Local()
	if p == nil {
		return
	}
	d := p.Dir.Vector()
	pos := ClampToWorld(Vec2{X: p.Pos.X + d.X*c.step*sign, Y: p.Pos.Y + d.Y*c.step*sign})
	p.Pos = pos
	c.sink.MovePlayer(p.ID, pos)
	c.out.Emit(EvPlayerMove, MoveData{X: pos.X, Y: pos.Y})
}

// Step 当前移动步长
func (c *Controller) Step() float64 { return c.step }

// SetStep 热更新移动步长（非正值忽略）
func (c *Controller) SetStep(v float64) {
	if v > 0 {
		c.step = v
	}
}

// TurnLeft 逆时针 90°，本地乐观生效并上报（后到的权威事件无条件覆盖）
func (c *Controller) TurnLeft() { c.turn(true) }

// TurnRight 顺时针 90°
func (c *Controller) TurnRight() { c.turn(false) }

func (c *Controller) turn(left bool) {
	p := c.reg.Local()
	if p == nil {
		return
	}
	if left {
		p.Dir = p.Dir.TurnLeft()
	} else {
		p.Dir = p.Dir.TurnRight()
	}
	c.sink.RestylePlayer(p.ID, VisualFor(p.State, p.Dir, p.Local))
	c.out.Emit(EvPlayerFace, FaceReqData{Direction: p.Dir})
}
