package client

// Registry 客户端对玩家/鱼/钓线的全部认知，单一事实来源
// 每种实体一张按 id 索引的表，杜绝多张并行 map 失步
// 只允许会话协程改动；每次改动都同步驱动一次 Sink 调用
type Registry struct {
	players map[string]*PlayerEntity
	fish    map[string]*FishEntity
	lines   map[string]*CastLine // key 为归属玩家 id

	localID string
	sink    Sink
}

// NewRegistry 创建空注册表
func NewRegistry(sink Sink) *Registry {
	if sink == nil {
		sink = NopSink{}
	}
	return &Registry{
		players: make(map[string]*PlayerEntity),
		fish:    make(map[string]*FishEntity),
		lines:   make(map[string]*CastLine),
		sink:    sink,
	}
}

// InitLocal 以 welcome 数据初始化本地玩家，丢弃任何旧的本地实体
func (r *Registry) InitLocal(data PlayerData) *PlayerEntity {
	if r.localID != "" && r.localID != data.ID {
		r.RemovePlayer(r.localID)
	}
	r.localID = data.ID
	return r.UpsertPlayer(data)
}

// LocalID 本地玩家 id，welcome 之前为空串
func (r *Registry) LocalID() string { return r.localID }

// Local 本地玩家实体；welcome 之前为 nil
func (r *Registry) Local() *PlayerEntity {
	if r.localID == "" {
		return nil
	}
	return r.players[r.localID]
}

// Player 按 id 查玩家，不存在返回 nil
func (r *Registry) Player(id string) *PlayerEntity { return r.players[id] }

// Fish 按 id 查鱼，不存在返回 nil
func (r *Registry) Fish(id string) *FishEntity { return r.fish[id] }

// Line 按玩家 id 查钓线，不存在返回 nil
func (r *Registry) Line(playerID string) *CastLine { return r.lines[playerID] }

// Counts 三张表的规模（调试与测试用）
func (r *Registry) Counts() (players, fish, lines int) {
	return len(r.players), len(r.fish), len(r.lines)
}

// UpsertPlayer 新建或原地更新玩家；已存在时不产生重复实体
func (r *Registry) UpsertPlayer(data PlayerData) *PlayerEntity {
	if data.ID == "" {
		Log.Warnw("upsert player without id, ignored")
		return nil
	}
	state := data.State
	if state == "" {
		state = StateIdle
	}
	dir := data.Direction
	if !dir.Valid() {
		dir = DirDown
	}
	p, ok := r.players[data.ID]
	if !ok {
		p = &PlayerEntity{ID: data.ID}
		r.players[data.ID] = p
	}
	p.Local = data.ID == r.localID
	p.Name = data.Name
	p.Pos = data.Position
	p.Dir = dir
	p.State = state
	r.sink.UpsertPlayer(*p, VisualFor(p.State, p.Dir, p.Local))
	return p
}

// RemovePlayer 移除玩家及其钓线；不存在则为 no-op
func (r *Registry) RemovePlayer(id string) {
	if _, ok := r.players[id]; !ok {
		return
	}
	r.ClearCastLine(id)
	delete(r.players, id)
	r.sink.RemovePlayer(id)
	if id == r.localID {
		r.localID = ""
	}
}

// MovePlayer 更新玩家位置；未知 id 时按新玩家补建（乱序容错）
func (r *Registry) MovePlayer(data PlayerData) {
	p, ok := r.players[data.ID]
	if !ok {
		r.UpsertPlayer(data)
		return
	}
	p.Pos = data.Position
	r.sink.MovePlayer(p.ID, p.Pos)
}

// SetState 覆写玩家状态并重新派生视觉；未知 id 为 no-op
func (r *Registry) SetState(id string, state State) {
	p, ok := r.players[id]
	if !ok {
		return
	}
	p.State = state
	r.sink.RestylePlayer(id, VisualFor(p.State, p.Dir, p.Local))
}

// SetDirection 覆写玩家朝向并重新派生视觉；未知 id 为 no-op
func (r *Registry) SetDirection(id string, dir Direction) {
	p, ok := r.players[id]
	if !ok {
		return
	}
	p.Dir = dir
	r.sink.RestylePlayer(id, VisualFor(p.State, p.Dir, p.Local))
}

// UpsertFish 新建或原地更新鱼
func (r *Registry) UpsertFish(data FishData) *FishEntity {
	if data.ID == "" {
		Log.Warnw("upsert fish without id, ignored")
		return nil
	}
	f, ok := r.fish[data.ID]
	if !ok {
		f = &FishEntity{ID: data.ID}
		r.fish[data.ID] = f
	}
	f.Pos = data.Position
	f.Kind = data.Kind
	f.Rarity = data.Rarity
	f.Size = data.Size
	r.sink.UpsertFish(*f)
	return f
}

// RemoveFish 移除鱼；不存在则为 no-op
func (r *Registry) RemoveFish(id string) {
	if _, ok := r.fish[id]; !ok {
		return
	}
	delete(r.fish, id)
	r.sink.RemoveFish(id)
}

// SetCastLine 为玩家(重)建钓线；同一玩家的旧线被隐式顶替
func (r *Registry) SetCastLine(playerID string, start, end Vec2) {
	r.lines[playerID] = &CastLine{Start: start, End: end}
	r.sink.SetLine(playerID, start, end)
}

// ClearCastLine 移除玩家的钓线；不存在则为 no-op
func (r *Registry) ClearCastLine(playerID string) {
	if _, ok := r.lines[playerID]; !ok {
		return
	}
	delete(r.lines, playerID)
	r.sink.ClearLine(playerID)
}

// ResetAll 全量重同步前的清场：销毁所有远端玩家、鱼与钓线的视觉，
// 但绝不动本地玩家实体（快照里即使有同 id 条目也由调用方跳过）
func (r *Registry) ResetAll() {
	for id := range r.lines {
		r.ClearCastLine(id)
	}
	for id := range r.players {
		if id == r.localID {
			continue
		}
		delete(r.players, id)
		r.sink.RemovePlayer(id)
	}
	for id := range r.fish {
		delete(r.fish, id)
		r.sink.RemoveFish(id)
	}
}
