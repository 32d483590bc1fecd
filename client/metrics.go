package client

import (
	"sync/atomic"
)

// Metrics 记录会话运行期的关键指标（用于监控与调试）
type Metrics struct {
	FrameCount      int64 // 帧循环次数
	EventsHandled   int64 // 成功分发的入站事件数
	EventsMalformed int64 // 解码失败被丢弃的入站事件数
	EventsUnknown   int64 // 未识别事件名的入站事件数
	EventsSent      int64 // 出站事件数
	SendDiscarded   int64 // 发送队列满被丢弃的出站消息数
	TotalFrameNs    int64 // 帧处理累计耗时（纳秒）
}

func (m *Metrics) IncHandled()       { atomic.AddInt64(&m.EventsHandled, 1) }
func (m *Metrics) IncMalformed()     { atomic.AddInt64(&m.EventsMalformed, 1) }
func (m *Metrics) IncUnknown()       { atomic.AddInt64(&m.EventsUnknown, 1) }
func (m *Metrics) IncSent()          { atomic.AddInt64(&m.EventsSent, 1) }
func (m *Metrics) IncSendDiscarded() { atomic.AddInt64(&m.SendDiscarded, 1) }
func (m *Metrics) AddFrame(ns int64) {
	atomic.AddInt64(&m.FrameCount, 1)
	atomic.AddInt64(&m.TotalFrameNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *Metrics) Snapshot() map[string]any {
	frames := atomic.LoadInt64(&m.FrameCount)
	total := atomic.LoadInt64(&m.TotalFrameNs)
	var avgMs float64
	if frames > 0 {
		avgMs = float64(total) / float64(frames) / 1e6
	}
	return map[string]any{
		"frame_count":      frames,
		"events_handled":   atomic.LoadInt64(&m.EventsHandled),
		"events_malformed": atomic.LoadInt64(&m.EventsMalformed),
		"events_unknown":   atomic.LoadInt64(&m.EventsUnknown),
		"events_sent":      atomic.LoadInt64(&m.EventsSent),
		"send_discarded":   atomic.LoadInt64(&m.SendDiscarded),
		"avg_frame_ms":     avgMs,
	}
}
