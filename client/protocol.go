package client

import "encoding/json"

// 协议：文本 JSON 帧，信封为 {"event": "...", "data": {...}}
// 事件名与字段拼写必须与服务端完全一致，不做别名兼容

// 入站事件（服务端 → 客户端）
const (
	EvWelcome           = "welcome"
	EvWorldState        = "world_state"
	EvPlayerJoined      = "player_joined"
	EvPlayerLeft        = "player_left"
	EvPlayerMoved       = "player_moved"
	EvPlayerStateChange = "player_state_changed"
	EvPlayerFaced       = "player_faced"
	EvFishSpawned       = "fish_spawned"
	EvFishRemoved       = "fish_removed"
	EvLineCasted        = "line_casted"
	EvLineRemoved       = "line_removed"
	EvCastFailed        = "cast_failed"
	EvFishHooked        = "fish_hooked"
	EvHookAttempt       = "hook_attempt_update"
	EvError             = "error"
	EvConnectError      = "connect_error"
	EvDisconnect        = "disconnect"
)

// 出站事件（客户端 → 服务端）
const (
	EvJoinGame   = "join_game"
	EvPlayerMove = "player_move"
	EvPlayerFace = "player_face"
	EvStartCast  = "start_cast"
	EvCancelCast = "cancel_cast"
)

// Envelope 线上信封；Data 延迟解码，由各事件处理器自行 Unmarshal
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// EncodeEnvelope 组装一条出站消息
func EncodeEnvelope(event string, data any) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}

// PlayerData 玩家记录的线上形态（welcome / player_joined / player_moved 等）
type PlayerData struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  Vec2      `json:"position"`
	State     State     `json:"state"`
	Direction Direction `json:"direction"`
}

// FishData 鱼记录的线上形态
type FishData struct {
	ID       string  `json:"id"`
	Kind     string  `json:"type"`
	Position Vec2    `json:"position"`
	Rarity   string  `json:"rarity"`
	Size     float64 `json:"size"`
}

// WelcomeData welcome 载荷：本地玩家自己的记录
type WelcomeData struct {
	Player PlayerData `json:"player"`
}

// WorldStateData 全量世界快照，用于整体重同步
type WorldStateData struct {
	Players []PlayerData `json:"players"`
	Fish    []FishData   `json:"fish"`
}

// IDData 仅携带实体 id 的载荷（player_left / fish_removed）
type IDData struct {
	ID string `json:"id"`
}

// StateChangeData player_state_changed 载荷
type StateChangeData struct {
	ID    string `json:"id"`
	State State  `json:"state"`
}

// FaceData player_faced 载荷
type FaceData struct {
	ID        string    `json:"id"`
	Direction Direction `json:"direction"`
}

// LineCastedData line_casted 载荷，字段拼写沿用服务端
type LineCastedData struct {
	PlayerID string `json:"playerId"`
	StartPos Vec2   `json:"startPos"`
	EndPos   Vec2   `json:"endPos"`
}

// LineRemovedData line_removed 载荷
type LineRemovedData struct {
	PlayerID string `json:"playerId"`
}

// CastFailedData cast_failed 载荷，reason 原样展示给玩家
type CastFailedData struct {
	Reason string `json:"reason"`
}

// FishHookedData fish_hooked 载荷，附带咬钩的鱼
type FishHookedData struct {
	Fish FishData `json:"fish"`
}

// 钩子判定状态；服务端在无鱼时置 no_fish_nearby
const (
	HookStatusChecking   = "checking"
	HookStatusNoFishNear = "no_fish_nearby"
)

// HookAttemptData hook_attempt_update 载荷（逐次概率判定的反馈）
type HookAttemptData struct {
	Threshold    float64 `json:"threshold"`
	Roll         float64 `json:"roll"`
	AttemptsLeft int     `json:"attempts_left"`
	Status       string  `json:"status"`
}

// ErrorData error / connect_error 载荷
type ErrorData struct {
	Message string `json:"message"`
}

// JoinGameData join_game 载荷
type JoinGameData struct {
	Name string `json:"name"`
}

// MoveData player_move 载荷：移动后的目标坐标
type MoveData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FaceReqData player_face 载荷
type FaceReqData struct {
	Direction Direction `json:"direction"`
}

// StartCastData start_cast 载荷：蓄力得出的力度与释放时刻的指针落点
type StartCastData struct {
	Power  float64 `json:"power"`
	Target Vec2    `json:"target"`
}
