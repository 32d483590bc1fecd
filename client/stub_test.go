package client

import (
	"encoding/json"
	"testing"
)

// recordSink 记录所有 Sink 调用的测试桩
type recordSink struct {
	playerUpserts  []string
	playerMoves    []string
	playerRestyles []string
	playerRemoves  []string
	fishUpserts    []string
	fishRemoves    []string
	lineSets       []string
	lineClears     []string
	charges        []float64
	chargeHidden   int
	meters         []MeterView
	meterHidden    int
	notices        []string

	lastVisual Visual
}

func (s *recordSink) UpsertPlayer(p PlayerEntity, v Visual) {
	s.playerUpserts = append(s.playerUpserts, p.ID)
	s.lastVisual = v
}
func (s *recordSink) MovePlayer(id string, pos Vec2) { s.playerMoves = append(s.playerMoves, id) }
func (s *recordSink) RestylePlayer(id string, v Visual) {
	s.playerRestyles = append(s.playerRestyles, id)
	s.lastVisual = v
}
func (s *recordSink) RemovePlayer(id string)             { s.playerRemoves = append(s.playerRemoves, id) }
func (s *recordSink) UpsertFish(f FishEntity)            { s.fishUpserts = append(s.fishUpserts, f.ID) }
func (s *recordSink) RemoveFish(id string)               { s.fishRemoves = append(s.fishRemoves, id) }
func (s *recordSink) SetLine(id string, start, end Vec2) { s.lineSets = append(s.lineSets, id) }
func (s *recordSink) ClearLine(id string)                { s.lineClears = append(s.lineClears, id) }
func (s *recordSink) ShowCharge(fill float64)            { s.charges = append(s.charges, fill) }
func (s *recordSink) HideCharge()                        { s.chargeHidden++ }
func (s *recordSink) UpdateMeter(m MeterView)            { s.meters = append(s.meters, m) }
func (s *recordSink) HideMeter()                         { s.meterHidden++ }
func (s *recordSink) Notice(text string)                 { s.notices = append(s.notices, text) }

// emitRec 一条被捕获的出站事件
type emitRec struct {
	event string
	data  any
}

type stubEmitter struct {
	sent []emitRec
}

func (e *stubEmitter) Emit(event string, data any) {
	e.sent = append(e.sent, emitRec{event: event, data: data})
}

// env 组装一条入站信封
func env(t *testing.T, event string, data any) Envelope {
	t.Helper()
	if data == nil {
		return Envelope{Event: event}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s payload: %v", event, err)
	}
	return Envelope{Event: event, Data: raw}
}

// localPlayer 常用的本地玩家记录
func localPlayer() PlayerData {
	return PlayerData{
		ID:        "p-local",
		Name:      "alice",
		Position:  Vec2{X: 400, Y: 300},
		State:     StateIdle,
		Direction: DirDown,
	}
}
