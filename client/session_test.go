package client

import "testing"

func newBareSession() (*Session, *recordSink, *stubEmitter) {
	sink := &recordSink{}
	reg := NewRegistry(sink)
	meter := &HookMeter{}
	out := &stubEmitter{}
	metrics := &Metrics{}
	return &Session{
		reg:     reg,
		ctrl:    NewController(reg, out, sink, meter),
		meter:   meter,
		sync:    NewSyncHandler(reg, meter, sink, metrics),
		sink:    sink,
		metrics: metrics,
		inputs:  make(chan Input, 8),
	}, sink, out
}

func TestHandleInputDispatch(t *testing.T) {
	s, _, out := newBareSession()
	s.reg.InitLocal(localPlayer())

	if quit := s.handleInput(Input{Kind: InputTurnLeft}); quit {
		t.Fatalf("turn input ended the session")
	}
	if len(out.sent) != 1 || out.sent[0].event != EvPlayerFace {
		t.Fatalf("sent = %+v, want one %s", out.sent, EvPlayerFace)
	}
	if quit := s.handleInput(Input{Kind: InputQuit}); !quit {
		t.Fatalf("quit input did not end the session")
	}
}

func TestFrameRedrawsChargeAndMeter(t *testing.T) {
	s, sink, _ := newBareSession()
	p := s.reg.InitLocal(localPlayer())

	// 无蓄力无判定条：帧不产生视觉调用
	base := len(sink.charges)
	s.frame(1000)
	if len(sink.charges) != base || len(sink.meters) != 0 {
		t.Fatalf("idle frame drove the sink")
	}

	s.ctrl.charge = &ChargeState{StartMs: 1000}
	s.frame(2000)
	if got := sink.charges[len(sink.charges)-1]; got != 0.5 {
		t.Fatalf("charge fill = %v, want 0.5", got)
	}

	s.meter.Apply(HookAttemptData{Threshold: 0.5, Roll: 0.2, AttemptsLeft: 4, Status: HookStatusChecking})
	p.Pos = Vec2{X: 111, Y: 222}
	s.frame(2100)
	m := sink.meters[len(sink.meters)-1]
	if m.Anchor != p.Pos {
		t.Fatalf("meter anchor = %+v, want player pos %+v", m.Anchor, p.Pos)
	}
}
