package client

import (
	"encoding/json"
	"testing"
)

func newTestSync() (*SyncHandler, *Registry, *HookMeter, *recordSink, *Metrics) {
	sink := &recordSink{}
	reg := NewRegistry(sink)
	meter := &HookMeter{}
	metrics := &Metrics{}
	return NewSyncHandler(reg, meter, sink, metrics), reg, meter, sink, metrics
}

func TestWelcomeInitializesLocal(t *testing.T) {
	h, reg, _, _, _ := newTestSync()
	h.Handle(env(t, EvWelcome, WelcomeData{Player: localPlayer()}))

	p := reg.Local()
	if p == nil || p.ID != "p-local" || !p.Local {
		t.Fatalf("local player not initialized: %+v", p)
	}
}

func TestWorldStateResyncSkipsLocal(t *testing.T) {
	h, reg, _, _, _ := newTestSync()
	h.Handle(env(t, EvWelcome, WelcomeData{Player: localPlayer()}))
	h.Handle(env(t, EvPlayerJoined, PlayerData{ID: "stale"}))
	h.Handle(env(t, EvFishSpawned, FishData{ID: "stale-fish"}))

	// 快照里混着一条与本地同 id 的过期条目，必须被跳过
	snap := WorldStateData{
		Players: []PlayerData{
			{ID: "p-local", Name: "imposter", Position: Vec2{X: 1, Y: 1}},
			{ID: "p2", Name: "carol"},
		},
		Fish: []FishData{{ID: "f1"}, {ID: "f2"}},
	}
	h.Handle(env(t, EvWorldState, snap))

	players, fish, _ := reg.Counts()
	if players != 2 || fish != 2 {
		t.Fatalf("counts = %d/%d, want 2 players (local+p2) and 2 fish", players, fish)
	}
	if reg.Player("stale") != nil || reg.Fish("stale-fish") != nil {
		t.Fatalf("stale entities survived resync")
	}
	if got := reg.Local().Name; got != "alice" {
		t.Fatalf("local overwritten by snapshot entry: name = %q", got)
	}
}

func TestPlayerLifecycleEvents(t *testing.T) {
	h, reg, _, _, _ := newTestSync()
	h.Handle(env(t, EvPlayerJoined, PlayerData{ID: "p2", Position: Vec2{X: 1, Y: 1}}))
	h.Handle(env(t, EvPlayerMoved, PlayerData{ID: "p2", Position: Vec2{X: 9, Y: 9}}))
	if got := reg.Player("p2").Pos; got != (Vec2{X: 9, Y: 9}) {
		t.Fatalf("pos = %+v, want {9 9}", got)
	}

	// 未知玩家的移动按补建处理
	h.Handle(env(t, EvPlayerMoved, PlayerData{ID: "p3", Position: Vec2{X: 2, Y: 2}}))
	if reg.Player("p3") == nil {
		t.Fatalf("move for unknown player did not create it")
	}

	h.Handle(env(t, EvPlayerLeft, IDData{ID: "p2"}))
	if reg.Player("p2") != nil {
		t.Fatalf("p2 survived player_left")
	}
}

func TestStateAndFaceOverwriteUnconditionally(t *testing.T) {
	h, reg, _, sink, _ := newTestSync()
	h.Handle(env(t, EvWelcome, WelcomeData{Player: localPlayer()}))

	// 本地乐观值被权威事件无条件覆盖，绝不合并
	reg.Local().Dir = DirLeft
	h.Handle(env(t, EvPlayerFaced, FaceData{ID: "p-local", Direction: DirRight}))
	if reg.Local().Dir != DirRight {
		t.Fatalf("dir = %q, want authoritative %q", reg.Local().Dir, DirRight)
	}

	h.Handle(env(t, EvPlayerStateChange, StateChangeData{ID: "p-local", State: StateFishing}))
	if reg.Local().State != StateFishing {
		t.Fatalf("state = %q, want fishing", reg.Local().State)
	}
	if len(sink.playerRestyles) == 0 {
		t.Fatalf("state change did not rederive visuals")
	}
	if sink.lastVisual.Label != "Fishing..." {
		t.Fatalf("label = %q, want %q", sink.lastVisual.Label, "Fishing...")
	}
}

func TestLineRemovedForLocalHidesMeter(t *testing.T) {
	h, reg, meter, sink, _ := newTestSync()
	h.Handle(env(t, EvWelcome, WelcomeData{Player: localPlayer()}))
	h.Handle(env(t, EvLineCasted, LineCastedData{PlayerID: "p-local", EndPos: Vec2{X: 5}}))
	h.Handle(env(t, EvHookAttempt, HookAttemptData{Threshold: 0.5, Roll: 0.1, AttemptsLeft: 5, Status: HookStatusChecking}))

	h.Handle(env(t, EvLineRemoved, LineRemovedData{PlayerID: "p-local"}))
	if reg.Line("p-local") != nil {
		t.Fatalf("line survived line_removed")
	}
	if meter.Visible() || sink.meterHidden == 0 {
		t.Fatalf("meter not hidden on local line removal")
	}
}

func TestLineRemovedForRemoteKeepsMeter(t *testing.T) {
	h, _, meter, _, _ := newTestSync()
	h.Handle(env(t, EvWelcome, WelcomeData{Player: localPlayer()}))
	h.Handle(env(t, EvHookAttempt, HookAttemptData{Threshold: 0.5, Roll: 0.1, AttemptsLeft: 5, Status: HookStatusChecking}))

	h.Handle(env(t, EvLineRemoved, LineRemovedData{PlayerID: "someone-else"}))
	if !meter.Visible() {
		t.Fatalf("remote line removal must not touch the local meter")
	}
}

func TestFishHookedClearsLineAndMeterSafely(t *testing.T) {
	h, reg, meter, sink, _ := newTestSync()
	h.Handle(env(t, EvWelcome, WelcomeData{Player: localPlayer()}))

	// 没有线也要安全
	h.Handle(env(t, EvFishHooked, nil))
	if sink.meterHidden != 1 {
		t.Fatalf("meter hidden %d times, want 1", sink.meterHidden)
	}

	h.Handle(env(t, EvLineCasted, LineCastedData{PlayerID: "p-local", EndPos: Vec2{X: 5}}))
	h.Handle(env(t, EvHookAttempt, HookAttemptData{Threshold: 0.9, Roll: 0.1, AttemptsLeft: 5, Status: HookStatusChecking}))
	h.Handle(env(t, EvFishHooked, FishHookedData{Fish: FishData{ID: "f1", Kind: "Bass"}}))

	if reg.Line("p-local") != nil {
		t.Fatalf("line survived fish_hooked")
	}
	if meter.Visible() {
		t.Fatalf("meter visible after fish_hooked")
	}
}

func TestLineCastedSupersedes(t *testing.T) {
	h, reg, _, _, _ := newTestSync()
	h.Handle(env(t, EvLineCasted, LineCastedData{PlayerID: "p9", EndPos: Vec2{X: 1}}))
	h.Handle(env(t, EvLineCasted, LineCastedData{PlayerID: "p9", EndPos: Vec2{X: 2}}))
	_, _, lines := reg.Counts()
	if lines != 1 {
		t.Fatalf("lines = %d, want 1", lines)
	}
	if reg.Line("p9").End != (Vec2{X: 2}) {
		t.Fatalf("end = %+v, want {2 0}", reg.Line("p9").End)
	}
}

func TestCastFailedSurfacesNotice(t *testing.T) {
	h, _, _, sink, _ := newTestSync()
	h.Handle(env(t, EvCastFailed, CastFailedData{Reason: "Fishing spot is occupied by carol."}))
	if len(sink.notices) != 1 {
		t.Fatalf("notices = %v, want one", sink.notices)
	}
}

func TestMalformedPayloadsAreCountedAndIgnored(t *testing.T) {
	h, reg, _, _, metrics := newTestSync()
	h.Handle(Envelope{Event: EvPlayerJoined, Data: json.RawMessage(`{"id": 42}`)}) // 类型错误
	h.Handle(Envelope{Event: EvPlayerLeft, Data: json.RawMessage(`{}`)})           // 缺 id
	h.Handle(Envelope{Event: EvFishRemoved, Data: json.RawMessage(`not json`)})

	if players, _, _ := reg.Counts(); players != 0 {
		t.Fatalf("malformed payload mutated the registry")
	}
	if got := metrics.Snapshot()["events_malformed"].(int64); got != 3 {
		t.Fatalf("events_malformed = %d, want 3", got)
	}
}

func TestUnknownEventIgnored(t *testing.T) {
	h, _, _, _, metrics := newTestSync()
	h.Handle(env(t, "solar_flare", map[string]any{"x": 1}))
	if got := metrics.Snapshot()["events_unknown"].(int64); got != 1 {
		t.Fatalf("events_unknown = %d, want 1", got)
	}
}

func TestDisconnectKeepsState(t *testing.T) {
	h, reg, _, sink, _ := newTestSync()
	h.Handle(env(t, EvWelcome, WelcomeData{Player: localPlayer()}))
	h.Handle(env(t, EvFishSpawned, FishData{ID: "f1"}))

	h.Handle(Envelope{Event: EvDisconnect})

	// 断线只提示，不清状态：继续渲染最后已知真相
	players, fish, _ := reg.Counts()
	if players != 1 || fish != 1 {
		t.Fatalf("counts = %d/%d after disconnect, want 1/1", players, fish)
	}
	if len(sink.notices) == 0 {
		t.Fatalf("disconnect was not surfaced to the user")
	}
}
