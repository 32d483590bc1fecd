package client

import "encoding/json"

// SyncHandler 远端同步胶水：把每条入站事件映射为注册表/控制器的一次改动
// 服务端是权威：状态/朝向事件无条件覆写本地值，本地预测从不与之合并
// 坏载荷只记日志并丢弃，绝不让事件循环崩溃
type SyncHandler struct {
	reg     *Registry
	meter   *HookMeter
	sink    Sink
	metrics *Metrics
}

// NewSyncHandler 创建同步处理器
func NewSyncHandler(reg *Registry, meter *HookMeter, sink Sink, metrics *Metrics) *SyncHandler {
	if sink == nil {
		sink = NopSink{}
	}
	if metrics == nil {
		metrics = &Metrics{}
	}
	return &SyncHandler{reg: reg, meter: meter, sink: sink, metrics: metrics}
}

// Handle 分发一条入站事件
func (h *SyncHandler) Handle(env Envelope) {
	switch env.Event {
	case EvWelcome:
		var d WelcomeData
		if !h.decode(env, &d) || !h.requireID(env.Event, d.Player.ID) {
			return
		}
		h.reg.InitLocal(d.Player)
		Log.Infow("welcome", "id", d.Player.ID, "name", d.Player.Name)

	case EvWorldState:
		var d WorldStateData
		if !h.decode(env, &d) {
			return
		}
		h.reg.ResetAll()
		for _, p := range d.Players {
			if p.ID == h.reg.LocalID() {
				continue // 本地玩家以 welcome 为准，快照条目跳过
			}
			h.reg.UpsertPlayer(p)
		}
		for _, f := range d.Fish {
			h.reg.UpsertFish(f)
		}
		Log.Infow("world resynced", "players", len(d.Players), "fish", len(d.Fish))

	case EvPlayerJoined:
		var d PlayerData
		if !h.decode(env, &d) || !h.requireID(env.Event, d.ID) {
			return
		}
		h.reg.UpsertPlayer(d)

	case EvPlayerLeft:
		var d IDData
		if !h.decode(env, &d) || !h.requireID(env.Event, d.ID) {
			return
		}
		h.reg.RemovePlayer(d.ID)

	case EvPlayerMoved:
		var d PlayerData
		if !h.decode(env, &d) || !h.requireID(env.Event, d.ID) {
			return
		}
		h.reg.MovePlayer(d)

	case EvPlayerStateChange:
		var d StateChangeData
		if !h.decode(env, &d) || !h.requireID(env.Event, d.ID) {
			return
		}
		h.reg.SetState(d.ID, d.State)

	case EvPlayerFaced:
		var d FaceData
		if !h.decode(env, &d) || !h.requireID(env.Event, d.ID) {
			return
		}
		h.reg.SetDirection(d.ID, d.Direction)

	case EvFishSpawned:
		var d FishData
		if !h.decode(env, &d) || !h.requireID(env.Event, d.ID) {
			return
		}
		h.reg.UpsertFish(d)

	case EvFishRemoved:
		var d IDData
		if !h.decode(env, &d) || !h.requireID(env.Event, d.ID) {
			return
		}
		h.reg.RemoveFish(d.ID)

	case EvLineCasted:
		var d LineCastedData
		if !h.decode(env, &d) || !h.requireID(env.Event, d.PlayerID) {
			return
		}
		h.reg.SetCastLine(d.PlayerID, d.StartPos, d.EndPos)

	case EvLineRemoved:
		var d LineRemovedData
		if !h.decode(env, &d) || !h.requireID(env.Event, d.PlayerID) {
			return
		}
		h.reg.ClearCastLine(d.PlayerID)
		if d.PlayerID == h.reg.LocalID() {
			h.meter.Hide()
			h.sink.HideMeter()
		}

	case EvCastFailed:
		var d CastFailedData
		if !h.decode(env, &d) {
			return
		}
		// 本地没有提交过乐观状态，无需回滚，仅提示
		h.sink.Notice("Cast failed: " + d.Reason)

	case EvFishHooked:
		// 无论此前是否有线，清线+藏条都安全
		var d FishHookedData
		_ = json.Unmarshal(env.Data, &d) // 载荷可选，解不出也照常清理
		if id := h.reg.LocalID(); id != "" {
			h.reg.ClearCastLine(id)
		}
		h.meter.Hide()
		h.sink.HideMeter()
		if d.Fish.Kind != "" {
			h.sink.Notice("Hooked a " + d.Fish.Kind + "!")
		}

	case EvHookAttempt:
		var d HookAttemptData
		if !h.decode(env, &d) {
			return
		}
		h.meter.Apply(d)

	case EvError, EvConnectError:
		var d ErrorData
		if !h.decode(env, &d) {
			return
		}
		Log.Warnw("server error", "message", d.Message)
		h.sink.Notice(d.Message)

	case EvDisconnect:
		// 网络真相过期：保留最后已知状态继续渲染，等重连后的快照纠正
		Log.Warnw("disconnected, local state is stale")
		h.sink.Notice("Disconnected from server")

	default:
		h.metrics.IncUnknown()
		Log.Debugw("unknown event ignored", "event", env.Event)
		return
	}
	h.metrics.IncHandled()
}

// requireID 校验必填 id；缺失按坏载荷丢弃
func (h *SyncHandler) requireID(event, id string) bool {
	if id != "" {
		return true
	}
	h.metrics.IncMalformed()
	Log.Warnw("payload missing id, dropped", "event", event)
	return false
}

// decode 解码载荷；失败时记数+记日志并返回 false
func (h *SyncHandler) decode(env Envelope, out any) bool {
	if err := json.Unmarshal(env.Data, out); err != nil {
		h.metrics.IncMalformed()
		Log.Warnw("malformed payload dropped", "event", env.Event, "err", err)
		return false
	}
	return true
}
