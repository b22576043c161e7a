package server

import (
	"errors"
	"io"
	"strings"

	"github.com/codecrafters-io/http-server-starter-go/internal/message"
)

// dispatch 按 path 的第一个片段分发：
//
//	"/"           -> root
//	"/echo/xxx"   -> echo
//	"/user-agent" -> user-agent
//	"/files/xx"   -> files
//
// 其余一律 404。body 只有 POST /files 才会去读。
// 处理出错时返回对应的 400/500 响应，同时把错误带回去给调用方记日志。
func (s *Server) dispatch(req *Request, body io.Reader) (*message.Response, error) {
	var (
		resp *message.Response
		err  error
	)
	if !strings.HasPrefix(req.Path, "/") {
		return notFound(), nil
	}
	switch req.routeKey() {
	case "":
		resp = rootHandler()
	case "echo":
		resp, err = echoHandler(req)
	case "user-agent":
		resp, err = userAgentHandler(req)
	case "files":
		resp, err = s.filesHandler(req, body)
	default:
		resp = notFound()
	}
	if err != nil {
		return errorResponse(err), err
	}
	return resp, nil
}

// errorResponse 客户端的问题给 400（body 太大给 413），其余给 500
func errorResponse(err error) *message.Response {
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return message.New(message.PayloadTooLarge)
	case errors.Is(err, ErrMalformedRequestLine),
		errors.Is(err, ErrMalformedHeader),
		errors.Is(err, ErrMissingHeader),
		errors.Is(err, ErrInvalidContentLength),
		errors.Is(err, ErrShortBody),
		errors.Is(err, errOutsideDirectory):
		return message.New(message.BadRequest)
	default:
		return message.New(message.InternalServerError)
	}
}
