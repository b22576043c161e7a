// Package server 实现单端口的 HTTP/1.1 服务：每个连接只处理一个请求。
package server

import (
	"bufio"
	"errors"
	"io"
	"net"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/codecrafters-io/http-server-starter-go/internal/message"
)

// DefaultAddr 默认只监听本地回环
const DefaultAddr = "127.0.0.1:4221"

// DefaultMaxBodySize POST /files 请求体的默认上限
const DefaultMaxBodySize int64 = 10 << 20

// Config 启动时确定，之后只读
type Config struct {
	Addr        string
	Directory   string // --directory 传入的目录，只给 /files 用
	MaxBodySize int64
}

// Server 每个连接一个 goroutine，一个连接只处理一个请求
type Server struct {
	cfg    Config
	files  fileStore
	logger zerolog.Logger

	mu       sync.Mutex
	listener net.Listener
	closed   bool
}

// New 用 cfg 创建服务，零值字段取默认值
func New(cfg Config, logger zerolog.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}
	return &Server{
		cfg:    cfg,
		files:  fileStore{dir: cfg.Directory},
		logger: logger,
	}
}

// ListenAndServe 绑定 cfg.Addr 并进入 accept 循环
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve 接受连接，每个连接一个 goroutine。监听器被 Close 后返回 nil
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		listener.Close()
		return nil
	}
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info().Str("addr", listener.Addr().String()).Str("directory", s.cfg.Directory).Msg("服务器已启动")
	var tempDelay time.Duration // accept 连续出错时的退避时间
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.logger.Info().Msg("监听器已关闭，停止接受新连接")
				return nil
			}
			if tempDelay == 0 {
				tempDelay = 5 * time.Millisecond
			} else {
				tempDelay *= 2
			}
			if tempDelay > time.Second {
				tempDelay = time.Second
			}
			s.logger.Error().Err(err).Dur("retry_in", tempDelay).Msg("接受连接时出错")
			time.Sleep(tempDelay)
			continue
		}
		tempDelay = 0
		go s.handleConnection(conn)
	}
}

// Close 关闭监听器，已经在处理的连接不受影响
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	log := s.logger.With().Str("remote", conn.RemoteAddr().String()).Logger()
	// 单个连接出问题只断开自己，不能带崩整个进程
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("处理连接时发生 panic")
		}
	}()
	reader := bufio.NewReader(conn)

	var resp *message.Response
	req, err := ReadRequest(reader)
	switch {
	case err == nil:
		resp, err = s.dispatch(req, reader)
		if err != nil {
			log.Warn().Err(err).Str("path", req.Path).Msg("处理请求失败")
		}
		log.Info().
			Str("method", req.RawMethod).
			Str("path", req.Path).
			Str("version", string(req.Version)).
			Bool("known_method", req.Method != "").
			Int("status", int(resp.Code)).
			Msg("请求完成")
	case errors.Is(err, ErrMalformedRequestLine), errors.Is(err, ErrMalformedHeader):
		log.Warn().Err(err).Msg("解析请求失败")
		resp = errorResponse(err)
	default:
		// 请求都没读完整，没法回复，直接断开
		if errors.Is(err, io.EOF) {
			log.Debug().Msg("客户端提前关闭连接")
		} else {
			log.Debug().Err(err).Msg("读取请求失败")
		}
		return
	}

	if _, err := resp.WriteTo(conn); err != nil {
		// 写失败一般意味着客户端断开
		log.Debug().Err(err).Msg("写响应失败")
	}
}
