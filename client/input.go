package client

// InputKind 离散输入动作；由视图层从按键/指针翻译而来
type InputKind int

const (
	InputNone InputKind = iota
	InputPointerDown
	InputPointerUp // 携带释放时刻的指针落点
	InputCancel
	InputMoveForward
	InputMoveBackward
	InputTurnLeft
	InputTurnRight
	InputQuit
)

// Input 一次输入事件
type Input struct {
	Kind   InputKind
	Target Vec2 // 仅 InputPointerUp 使用
}
