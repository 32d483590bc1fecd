package client

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	readLimit  = 1 << 20 // 1MB
)

// ServerConn 到服务端的 WebSocket 连接（客户端侧）
// 写协程独占写，读协程把入站事件解码后投递到 Inbound 通道，
// 核心循环只消费通道，自身绝不触碰底层连接
type ServerConn struct {
	ws      *websocket.Conn
	send    chan []byte
	inbound chan Envelope
	done    chan struct{}
	metrics *Metrics
}

// Dial 连接服务端并启动读写协程
// addr 形如 ws://localhost:5000/game
func Dial(addr string, metrics *Metrics) (*ServerConn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, err
	}
	c := &ServerConn{
		ws:      ws,
		send:    make(chan []byte, 64),
		inbound: make(chan Envelope, 256), // 足够缓冲，避免网络读阻塞核心循环
		done:    make(chan struct{}),
		metrics: metrics,
	}
	go c.writePump()
	go c.readPump()
	return c, nil
}

// Inbound 入站事件通道；连接断开时被关闭
func (c *ServerConn) Inbound() <-chan Envelope { return c.inbound }

// Done 连接结束信号
func (c *ServerConn) Done() <-chan struct{} { return c.done }

// Emit 编码并入队一条出站事件（非阻塞，满则丢弃）
func (c *ServerConn) Emit(event string, data any) {
	b, err := EncodeEnvelope(event, data)
	if err != nil {
		Log.Errorw("encode outbound failed", "event", event, "err", err)
		return
	}
	select {
	case c.send <- b:
		if c.metrics != nil {
			c.metrics.IncSent()
		}
	default:
		// 为了实时性，丢弃而不是背压核心循环
		if c.metrics != nil {
			c.metrics.IncSendDiscarded()
		}
		Log.Warnw("send queue full, message discarded", "event", event)
	}
}

// Close 主动关闭连接
func (c *ServerConn) Close() {
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	_ = c.ws.Close()
}

// writePump 独立协程，负责从 send 队列写出到 WS，并周期性 ping
func (c *ServerConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 读取服务端事件，解码信封后投递给核心循环
// 退出即代表连接结束：合成一条 disconnect 事件并关闭通道
func (c *ServerConn) readPump() {
	defer func() {
		c.inbound <- Envelope{Event: EvDisconnect}
		close(c.inbound)
		close(c.done)
		_ = c.ws.Close()
	}()
	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			Log.Warnw("read closed", "err", err)
			return
		}
		var env Envelope
		if err := json.Unmarshal(payload, &env); err != nil || env.Event == "" {
			if c.metrics != nil {
				c.metrics.IncMalformed()
			}
			Log.Warnw("malformed frame dropped", "err", err)
			continue
		}
		c.inbound <- env
	}
}
