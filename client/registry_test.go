package client

import "testing"

func TestUpsertPlayerUpdatesInPlace(t *testing.T) {
	sink := &recordSink{}
	reg := NewRegistry(sink)

	reg.UpsertPlayer(PlayerData{ID: "p1", Name: "bob", Position: Vec2{X: 1, Y: 2}})
	reg.UpsertPlayer(PlayerData{ID: "p1", Name: "bob", Position: Vec2{X: 5, Y: 6}})

	players, _, _ := reg.Counts()
	if players != 1 {
		t.Fatalf("players = %d, want 1 (upsert must not duplicate)", players)
	}
	if got := reg.Player("p1").Pos; got != (Vec2{X: 5, Y: 6}) {
		t.Fatalf("pos = %+v, want {5 6}", got)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	sink := &recordSink{}
	reg := NewRegistry(sink)
	reg.UpsertPlayer(PlayerData{ID: "p1"})
	reg.UpsertFish(FishData{ID: "f1"})
	reg.SetCastLine("p1", Vec2{}, Vec2{X: 10})

	reg.RemoveFish("f1")
	reg.RemoveFish("f1")
	reg.ClearCastLine("p1")
	reg.ClearCastLine("p1")
	reg.RemovePlayer("p1")
	reg.RemovePlayer("p1")
	// 对不存在的 id 再来一轮
	reg.RemoveFish("ghost")
	reg.RemovePlayer("ghost")
	reg.ClearCastLine("ghost")

	players, fish, lines := reg.Counts()
	if players != 0 || fish != 0 || lines != 0 {
		t.Fatalf("counts = %d/%d/%d, want 0/0/0", players, fish, lines)
	}
	// 每个实体只应产生一次销毁视觉
	if len(sink.playerRemoves) != 1 || len(sink.fishRemoves) != 1 || len(sink.lineClears) != 1 {
		t.Fatalf("sink removes = %d/%d/%d, want 1/1/1",
			len(sink.playerRemoves), len(sink.fishRemoves), len(sink.lineClears))
	}
}

func TestRemovePlayerClearsOwnLine(t *testing.T) {
	reg := NewRegistry(&recordSink{})
	reg.UpsertPlayer(PlayerData{ID: "p1"})
	reg.SetCastLine("p1", Vec2{}, Vec2{X: 10})
	reg.RemovePlayer("p1")
	if reg.Line("p1") != nil {
		t.Fatalf("line survived its owner")
	}
}

func TestSetCastLineSupersedes(t *testing.T) {
	sink := &recordSink{}
	reg := NewRegistry(sink)
	reg.SetCastLine("p1", Vec2{}, Vec2{X: 10})
	reg.SetCastLine("p1", Vec2{}, Vec2{X: 99})

	_, _, lines := reg.Counts()
	if lines != 1 {
		t.Fatalf("lines = %d, want 1 (new line supersedes old)", lines)
	}
	if got := reg.Line("p1").End; got != (Vec2{X: 99}) {
		t.Fatalf("line end = %+v, want {99 0}", got)
	}
}

func TestResetAllKeepsLocalPlayer(t *testing.T) {
	sink := &recordSink{}
	reg := NewRegistry(sink)
	reg.InitLocal(localPlayer())
	reg.UpsertPlayer(PlayerData{ID: "p2"})
	reg.UpsertFish(FishData{ID: "f1"})
	reg.SetCastLine("p2", Vec2{}, Vec2{X: 1})

	reg.ResetAll()

	players, fish, lines := reg.Counts()
	if players != 1 || fish != 0 || lines != 0 {
		t.Fatalf("counts after reset = %d/%d/%d, want 1/0/0", players, fish, lines)
	}
	if reg.Local() == nil || reg.Local().ID != "p-local" {
		t.Fatalf("local player did not survive reset")
	}
	for _, id := range sink.playerRemoves {
		if id == "p-local" {
			t.Fatalf("reset destroyed the local player's visual")
		}
	}
}

func TestInitLocalDiscardsPrior(t *testing.T) {
	reg := NewRegistry(&recordSink{})
	reg.InitLocal(PlayerData{ID: "old", Name: "a"})
	reg.InitLocal(PlayerData{ID: "new", Name: "b"})

	if reg.Player("old") != nil {
		t.Fatalf("old local entity survived re-welcome")
	}
	if reg.LocalID() != "new" {
		t.Fatalf("localID = %q, want %q", reg.LocalID(), "new")
	}
	if !reg.Local().Local {
		t.Fatalf("new local entity not flagged Local")
	}
}

func TestUpsertPlayerDefaultsInvalidFields(t *testing.T) {
	reg := NewRegistry(&recordSink{})
	p := reg.UpsertPlayer(PlayerData{ID: "p1", State: "", Direction: "sideways"})
	if p.State != StateIdle {
		t.Fatalf("state = %q, want idle default", p.State)
	}
	if p.Dir != DirDown {
		t.Fatalf("dir = %q, want down default", p.Dir)
	}
}
