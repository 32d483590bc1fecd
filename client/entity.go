package client

// Vec2 世界坐标（服务端权威，单位与服务端一致）
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Direction 玩家朝向，线上传输即为这些字符串
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Valid 是否为协议认可的朝向
func (d Direction) Valid() bool {
	switch d {
	case DirUp, DirDown, DirLeft, DirRight:
		return true
	}
	return false
}

// TurnLeft 逆时针转 90°；未知朝向按 down 处理
func (d Direction) TurnLeft() Direction {
	switch d {
	case DirUp:
		return DirLeft
	case DirLeft:
		return DirDown
	case DirDown:
		return DirRight
	case DirRight:
		return DirUp
	}
	return DirDown.TurnLeft()
}

// TurnRight 顺时针转 90°
func (d Direction) TurnRight() Direction {
	switch d {
	case DirUp:
		return DirRight
	case DirRight:
		return DirDown
	case DirDown:
		return DirLeft
	case DirLeft:
		return DirUp
	}
	return DirDown.TurnRight()
}

// Vector 朝向对应的单位位移：up=(0,-1) down=(0,1) left=(-1,0) right=(1,0)
// 未知朝向退化为 down 的向量（宽松容错，绝不报错）
func (d Direction) Vector() Vec2 {
	switch d {
	case DirUp:
		return Vec2{0, -1}
	case DirDown:
		return Vec2{0, 1}
	case DirLeft:
		return Vec2{-1, 0}
	case DirRight:
		return Vec2{1, 0}
	}
	return Vec2{0, 1}
}

// State 玩家交互状态（服务端权威值）
// charging 只是本地蓄力子模式，不会出现在线上
type State string

const (
	StateIdle    State = "idle"
	StateFishing State = "fishing"
	StateHooked  State = "hooked"
)

// 世界边界与移动步长，与服务端一致
const (
	WorldWidth  = 800.0
	WorldHeight = 600.0
	MoveStep    = 8.0
)

// PlayerEntity 客户端侧的玩家实体（本地与远端共用一种表）
type PlayerEntity struct {
	ID    string
	Name  string
	Pos   Vec2
	Dir   Direction
	State State
	Local bool // 整个注册表里至多一个为 true
}

// FishEntity 鱼实体，位置由服务端权威下发，本地不插值
type FishEntity struct {
	ID     string
	Pos    Vec2
	Kind   string
	Rarity string
	Size   float64
}

// CastLine 某玩家的钓线，按玩家 id 归属，每人至多一条
type CastLine struct {
	Start Vec2
	End   Vec2
}

// ClampToWorld 将坐标裁剪到世界边界内
func ClampToWorld(p Vec2) Vec2 {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.X > WorldWidth {
		p.X = WorldWidth
	}
	if p.Y > WorldHeight {
		p.Y = WorldHeight
	}
	return p
}
