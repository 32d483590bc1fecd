package view

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"minifish/client"
)

// Terminal 基于 tcell 的呈现后端，实现 client.Sink
// 核心只下发视觉指令，这里负责把世界坐标映射到终端网格并重绘
// Sink 方法来自会话协程，按键轮询在自己的协程里，状态用互斥锁隔离
type Terminal struct {
	screen tcell.Screen

	mu      sync.Mutex
	players map[string]playerGlyph
	fish    map[string]client.FishEntity
	lines   map[string][2]client.Vec2

	chargeOn   bool
	chargeFill float64
	meterOn    bool
	meter      client.MeterView
	notice     string
	noticeAt   time.Time

	cursor client.Vec2 // 抛竿目标光标（世界坐标）
}

type playerGlyph struct {
	pos    client.Vec2
	name   string
	local  bool
	visual client.Visual
}

// New 初始化终端屏幕
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	return &Terminal{
		screen:  screen,
		players: make(map[string]playerGlyph),
		fish:    make(map[string]client.FishEntity),
		lines:   make(map[string][2]client.Vec2),
		cursor:  client.Vec2{X: client.WorldWidth / 2, Y: client.WorldHeight / 2},
	}, nil
}

// Fini 恢复终端状态
func (t *Terminal) Fini() { t.screen.Fini() }

// Run 按键轮询循环：把按键翻译成核心输入，阻塞直到退出键
// 操作：w/s 前进后退，a/d 转向，空格 按下开始蓄力、再按释放，
// 方向键移动抛竿光标，Esc 取消，q 退出
func (t *Terminal) Run(inputs chan<- client.Input) {
	ticker := time.NewTicker(time.Second / client.FramesPerSecond)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			t.draw()
		}
	}()

	charging := false
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape:
				charging = false
				inputs <- client.Input{Kind: client.InputCancel}
			case ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
				inputs <- client.Input{Kind: client.InputQuit}
				return
			case ev.Rune() == 'w':
				inputs <- client.Input{Kind: client.InputMoveForward}
			case ev.Rune() == 's':
				inputs <- client.Input{Kind: client.InputMoveBackward}
			case ev.Rune() == 'a':
				inputs <- client.Input{Kind: client.InputTurnLeft}
			case ev.Rune() == 'd':
				inputs <- client.Input{Kind: client.InputTurnRight}
			case ev.Rune() == ' ':
				// 终端收不到松键事件，用第二次空格代替指针松开
				if charging {
					charging = false
					inputs <- client.Input{Kind: client.InputPointerUp, Target: t.cursorPos()}
				} else {
					charging = true
					inputs <- client.Input{Kind: client.InputPointerDown}
				}
			case ev.Key() == tcell.KeyUp:
				t.moveCursor(0, -20)
			case ev.Key() == tcell.KeyDown:
				t.moveCursor(0, 20)
			case ev.Key() == tcell.KeyLeft:
				t.moveCursor(-20, 0)
			case ev.Key() == tcell.KeyRight:
				t.moveCursor(20, 0)
			}
		}
	}
}

func (t *Terminal) cursorPos() client.Vec2 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursor
}

func (t *Terminal) moveCursor(dx, dy float64) {
	t.mu.Lock()
	t.cursor = client.ClampToWorld(client.Vec2{X: t.cursor.X + dx, Y: t.cursor.Y + dy})
	t.mu.Unlock()
}

// ---- client.Sink 实现 ----

func (t *Terminal) UpsertPlayer(p client.PlayerEntity, v client.Visual) {
	t.mu.Lock()
	t.players[p.ID] = playerGlyph{pos: p.Pos, name: p.Name, local: p.Local, visual: v}
	t.mu.Unlock()
}

func (t *Terminal) MovePlayer(id string, pos client.Vec2) {
	t.mu.Lock()
	if g, ok := t.players[id]; ok {
		g.pos = pos
		t.players[id] = g
	}
	t.mu.Unlock()
}

func (t *Terminal) RestylePlayer(id string, v client.Visual) {
	t.mu.Lock()
	if g, ok := t.players[id]; ok {
		g.visual = v
		t.players[id] = g
	}
	t.mu.Unlock()
}

func (t *Terminal) RemovePlayer(id string) {
	t.mu.Lock()
	delete(t.players, id)
	t.mu.Unlock()
}

func (t *Terminal) UpsertFish(f client.FishEntity) {
	t.mu.Lock()
	t.fish[f.ID] = f
	t.mu.Unlock()
}

func (t *Terminal) RemoveFish(id string) {
	t.mu.Lock()
	delete(t.fish, id)
	t.mu.Unlock()
}

func (t *Terminal) SetLine(playerID string, start, end client.Vec2) {
	t.mu.Lock()
	t.lines[playerID] = [2]client.Vec2{start, end}
	t.mu.Unlock()
}

func (t *Terminal) ClearLine(playerID string) {
	t.mu.Lock()
	delete(t.lines, playerID)
	t.mu.Unlock()
}

func (t *Terminal) ShowCharge(fill float64) {
	t.mu.Lock()
	t.chargeOn = true
	t.chargeFill = fill
	t.mu.Unlock()
}

func (t *Terminal) HideCharge() {
	t.mu.Lock()
	t.chargeOn = false
	t.mu.Unlock()
}

func (t *Terminal) UpdateMeter(m client.MeterView) {
	t.mu.Lock()
	t.meterOn = true
	t.meter = m
	t.mu.Unlock()
}

func (t *Terminal) HideMeter() {
	t.mu.Lock()
	t.meterOn = false
	t.mu.Unlock()
}

func (t *Terminal) Notice(text string) {
	t.mu.Lock()
	t.notice = text
	t.noticeAt = time.Now()
	t.mu.Unlock()
}

// ---- 绘制 ----

func tintStyle(tint client.Tint) tcell.Style {
	st := tcell.StyleDefault
	switch tint {
	case client.TintLocalIdle:
		return st.Foreground(tcell.ColorGreen)
	case client.TintFishing:
		return st.Foreground(tcell.ColorYellow)
	case client.TintHooked:
		return st.Foreground(tcell.ColorRed)
	}
	return st.Foreground(tcell.ColorSilver)
}

// cell 世界坐标 → 屏幕网格
func (t *Terminal) cell(p client.Vec2) (int, int) {
	w, h := t.screen.Size()
	if h > 2 {
		h -= 2 // 顶部提示行 + 底部蓄力条
	}
	x := int(p.X / client.WorldWidth * float64(w-1))
	y := 1 + int(p.Y/client.WorldHeight*float64(h-1))
	return x, y
}

func (t *Terminal) draw() {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.screen
	s.Clear()
	w, h := s.Size()

	// 钓线：起止点间插值打点
	for _, ln := range t.lines {
		x0, y0 := t.cell(ln[0])
		x1, y1 := t.cell(ln[1])
		steps := max(abs(x1-x0), abs(y1-y0))
		for i := 0; i <= steps; i++ {
			f := 0.0
			if steps > 0 {
				f = float64(i) / float64(steps)
			}
			x := x0 + int(f*float64(x1-x0))
			y := y0 + int(f*float64(y1-y0))
			s.SetContent(x, y, '·', nil, tcell.StyleDefault.Foreground(tcell.ColorTeal))
		}
		s.SetContent(x1, y1, 'x', nil, tcell.StyleDefault.Foreground(tcell.ColorTeal))
	}

	for _, f := range t.fish {
		x, y := t.cell(f.Pos)
		s.SetContent(x, y, '~', nil, tcell.StyleDefault.Foreground(tcell.ColorBlue))
	}

	for _, g := range t.players {
		x, y := t.cell(g.pos)
		r := 'o'
		if g.local {
			r = '@'
		}
		st := tintStyle(g.visual.Tint)
		s.SetContent(x, y, r, nil, st)
		// 朝向标记
		mx, my := x+int(g.visual.Marker.X), y+int(g.visual.Marker.Y)
		s.SetContent(mx, my, markerRune(g.visual.Marker), nil, st)
		label := g.name
		if g.visual.Label != "" {
			label += " " + g.visual.Label
		}
		drawText(s, x-len(label)/2, y-1, label, st)
	}

	// 抛竿光标
	cx, cy := t.cell(t.cursor)
	s.SetContent(cx, cy, '+', nil, tcell.StyleDefault.Foreground(tcell.ColorFuchsia))

	// 顶部提示行（10 秒后自动消失）
	if t.notice != "" && time.Since(t.noticeAt) < 10*time.Second {
		drawText(s, 0, 0, t.notice, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}

	// 底部蓄力条
	if t.chargeOn {
		filled := int(t.chargeFill * float64(w))
		for x := 0; x < w; x++ {
			r := ' '
			if x < filled {
				r = '█'
			}
			s.SetContent(x, h-1, r, nil, tcell.StyleDefault.Foreground(tcell.ColorGreen))
		}
	}

	// 钩子判定条：跟随锚点，上方一行画标签
	if t.meterOn {
		const meterW = 20
		x, y := t.cell(t.meter.Anchor)
		x -= meterW / 2
		y -= 3
		st := tcell.StyleDefault.Foreground(tcell.ColorRed)
		if t.meter.Success {
			st = tcell.StyleDefault.Foreground(tcell.ColorGreen)
		}
		filled := int(t.meter.RollFill * meterW)
		for i := 0; i < meterW; i++ {
			r := '░'
			if i < filled {
				r = '█'
			}
			s.SetContent(x+i, y, r, nil, st)
		}
		if t.meter.ShowThreshold {
			ti := int(t.meter.Threshold * meterW)
			if ti >= meterW {
				ti = meterW - 1
			}
			s.SetContent(x+ti, y, '|', nil, tcell.StyleDefault.Foreground(tcell.ColorWhite))
		}
		drawText(s, x, y-1, t.meter.Label, tcell.StyleDefault)
	}

	s.Show()
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, st)
	}
}

func markerRune(m client.Vec2) rune {
	switch {
	case m.Y < 0:
		return '^'
	case m.X < 0:
		return '<'
	case m.X > 0:
		return '>'
	}
	return 'v'
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
