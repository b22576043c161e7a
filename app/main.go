package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/codecrafters-io/http-server-starter-go/internal/server"
)

func main() {
	// 示例：./your_program.sh --directory /tmp/data/...
	directory := flag.String("directory", "", "directory served by /files/")
	addr := flag.String("addr", server.DefaultAddr, "listen address")
	maxBody := flag.Int64("max-body", server.DefaultMaxBodySize, "largest accepted POST /files body in bytes")
	level := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		logger.Fatal().Err(err).Msg("无效的日志级别")
	}
	logger = logger.Level(lvl)

	srv := server.New(server.Config{Addr: *addr, Directory: *directory, MaxBodySize: *maxBody}, logger)

	// Ctrl-C 时关闭监听器，accept 循环随之退出
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		logger.Info().Str("signal", sig.String()).Msg("收到退出信号")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("关闭监听器时出错")
		}
	}()

	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("服务器启动失败")
	}
}
