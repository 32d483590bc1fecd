package client

import (
	"context"
	"time"
)

const (
	// FramesPerSecond 帧循环频率（蓄力条/判定条的重定位节奏）
	FramesPerSecond = 30
)

var frameInterval = time.Second / FramesPerSecond

// Session 一次游戏会话：单协程事件循环，串行消费
// 入站网络事件、本地输入与帧 tick，任意两个处理器不会并发执行
// 注册表/控制器/判定条的全部可变状态只被这个协程改动
type Session struct {
	reg     *Registry
	ctrl    *Controller
	meter   *HookMeter
	sync    *SyncHandler
	conn    *ServerConn
	sink    Sink
	metrics *Metrics

	inputs chan Input
	name   string
}

// NewSession 组装一次会话；conn 已完成拨号
func NewSession(conn *ServerConn, sink Sink, name string, metrics *Metrics) *Session {
	if sink == nil {
		sink = NopSink{}
	}
	if metrics == nil {
		metrics = &Metrics{}
	}
	reg := NewRegistry(sink)
	meter := &HookMeter{}
	return &Session{
		reg:     reg,
		ctrl:    NewController(reg, conn, sink, meter),
		meter:   meter,
		sync:    NewSyncHandler(reg, meter, sink, metrics),
		conn:    conn,
		sink:    sink,
		metrics: metrics,
		inputs:  make(chan Input, 64),
		name:    name,
	}
}

// Inputs 视图层投递输入的通道
func (s *Session) Inputs() chan<- Input { return s.inputs }

// Registry 供调试端点读取
func (s *Session) Registry() *Registry { return s.reg }

// Controller 供调试端点热调参数
func (s *Session) Controller() *Controller { return s.ctrl }

// Run 主循环；连接断开、收到退出输入或 ctx 取消时返回
func (s *Session) Run(ctx context.Context) {
	s.conn.Emit(EvJoinGame, JoinGameData{Name: s.name})

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-s.conn.Inbound():
			if !ok {
				return
			}
			s.sync.Handle(env)
			if env.Event == EvDisconnect {
				return
			}
		case in := <-s.inputs:
			if s.handleInput(in) {
				return
			}
		case <-ticker.C:
			start := time.Now()
			s.frame(start.UnixMilli())
			s.metrics.AddFrame(time.Since(start).Nanoseconds())
		}
	}
}

// handleInput 分发一次输入；返回 true 表示会话应当结束
func (s *Session) handleInput(in Input) bool {
	now := time.Now().UnixMilli()
	switch in.Kind {
	case InputPointerDown:
		s.ctrl.PointerDown(now)
	case InputPointerUp:
		s.ctrl.PointerUp(now, in.Target)
	case InputCancel:
		s.ctrl.Cancel()
	case InputMoveForward:
		s.ctrl.Move(+1)
	case InputMoveBackward:
		s.ctrl.Move(-1)
	case InputTurnLeft:
		s.ctrl.TurnLeft()
	case InputTurnRight:
		s.ctrl.TurnRight()
	case InputQuit:
		return true
	}
	return false
}

// frame 每帧工作：蓄力条按绝对时间重算，判定条跟随本地玩家
// 帧被跳过或与网络事件乱序都不影响正确性
func (s *Session) frame(nowMs int64) {
	if s.ctrl.Charging() {
		s.sink.ShowCharge(s.ctrl.ChargeFill(nowMs))
	}
	if s.meter.Visible() {
		if p := s.reg.Local(); p != nil {
			s.sink.UpdateMeter(s.meter.View(p.Pos))
		}
	}
}
