package client

// Sink 呈现后端的抽象边界：核心只下发“建/改/删某实体的视觉”，
// 具体怎么画由实现决定（终端、图形窗口、或测试桩）
// 核心保证：实体存在 ⇔ 对应视觉句柄存在
type Sink interface {
	UpsertPlayer(p PlayerEntity, v Visual)
	MovePlayer(id string, pos Vec2)
	RestylePlayer(id string, v Visual)
	RemovePlayer(id string)

	UpsertFish(f FishEntity)
	RemoveFish(id string)

	SetLine(playerID string, start, end Vec2)
	ClearLine(playerID string)

	// ShowCharge 每帧用绝对时间重算的蓄力比例（0..1），不做增量累加
	ShowCharge(fill float64)
	HideCharge()

	UpdateMeter(m MeterView)
	HideMeter()

	// Notice 面向玩家的一行提示（cast_failed、断线等）
	Notice(text string)
}

// MeterView 钩子判定条的一帧视觉参数，纯派生数据
type MeterView struct {
	Anchor        Vec2    // 跟随本地玩家的锚点
	RollFill      float64 // 0..1
	Threshold     float64 // 0..1
	ShowThreshold bool
	Success       bool // roll < threshold 时为 true
	AttemptsLeft  int
	Label         string
}

// NopSink 空实现，供无界面运行与测试使用
type NopSink struct{}

func (NopSink) UpsertPlayer(PlayerEntity, Visual) {}
func (NopSink) MovePlayer(string, Vec2)           {}
func (NopSink) RestylePlayer(string, Visual)      {}
func (NopSink) RemovePlayer(string)               {}
func (NopSink) UpsertFish(FishEntity)             {}
func (NopSink) RemoveFish(string)                 {}
func (NopSink) SetLine(string, Vec2, Vec2)        {}
func (NopSink) ClearLine(string)                  {}
func (NopSink) ShowCharge(float64)                {}
func (NopSink) HideCharge()                       {}
func (NopSink) UpdateMeter(MeterView)             {}
func (NopSink) HideMeter()                        {}
func (NopSink) Notice(string)                     {}
