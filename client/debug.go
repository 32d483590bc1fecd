package client

import (
	"encoding/json"
	"net/http"
)

// 调试端点：仅监听 localhost，观察会话指标与热调少量参数

// HandleMetrics 输出会话运行指标
// GET /metrics
func HandleMetrics(s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, fish, lines := s.Registry().Counts()
		payload := map[string]any{
			"local_id": s.Registry().LocalID(),
			"players":  players,
			"fish":     fish,
			"lines":    lines,
			"metrics":  s.metrics.Snapshot(),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// HandleDebugConfig 读取与更新客户端参数
// GET /debug/config  返回当前配置
// POST /debug/config 以 JSON 载荷更新部分字段
func HandleDebugConfig(s *Session) http.HandlerFunc {
	type cfg struct {
		Step *float64 `json:"step,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			step := s.Controller().Step()
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(cfg{Step: &step})
		case http.MethodPost:
			var body cfg
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			if body.Step != nil {
				s.Controller().SetStep(*body.Step)
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
			Log.Infof("config updated: step=%.2f", s.Controller().Step())
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// StartDebugServer 启动 localhost 调试 HTTP 服务（addr 为空则不启动）
func StartDebugServer(addr string, s *Session) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", HandleMetrics(s))
	mux.HandleFunc("/debug/config", HandleDebugConfig(s))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			Log.Warnw("debug server stopped", "err", err)
		}
	}()
}
