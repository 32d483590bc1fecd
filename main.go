package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"minifish/client"
	"minifish/view"
)

// minifish 入口：连接钓鱼服务端，跑起单协程同步会话 + 终端视图
func main() {
	var (
		addr      = flag.String("addr", "ws://localhost:5000/game", "server websocket address")
		name      = flag.String("name", "angler", "player display name")
		logFile   = flag.String("log", "client.log", "log file path")
		debugAddr = flag.String("debug", "", "localhost debug listen address, e.g. 127.0.0.1:6060")
		headless  = flag.Bool("headless", false, "run without terminal UI (sink is a no-op)")
		verbose   = flag.Bool("v", false, "debug level logging")
	)
	flag.Parse()

	// 使用第三方 zap 日志库写入文件（带滚动）；终端留给 tcell
	if err := client.InitLogger(*logFile, *verbose); err != nil {
		panic(err)
	}
	defer client.SyncLogger()

	var sink client.Sink = client.NopSink{}
	var term *view.Terminal
	if !*headless {
		t, err := view.New()
		if err != nil {
			client.Log.Fatalf("terminal init: %v", err)
		}
		term = t
		sink = t
		defer term.Fini()
	}

	metrics := &client.Metrics{}
	conn, err := client.Dial(*addr, metrics)
	if err != nil {
		if term != nil {
			term.Fini()
		}
		client.Log.Fatalf("dial %s: %v", *addr, err)
	}
	defer conn.Close()
	client.Log.Infof("connected to %s as %q", *addr, *name)

	sess := client.NewSession(conn, sink, *name, metrics)
	client.StartDebugServer(*debugAddr, sess)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	if term != nil {
		go term.Run(sess.Inputs())
	}

	sess.Run(ctx)
	client.Log.Info("session ended")
}
