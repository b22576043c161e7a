package server

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/codecrafters-io/http-server-starter-go/internal/message"
)

var (
	ErrMalformedRequestLine = errors.New("invalid request line")
	ErrMalformedHeader      = errors.New("invalid header line")
	ErrMissingHeader        = errors.New("missing header")
	ErrInvalidContentLength = errors.New("invalid Content-Length")
	ErrShortBody            = errors.New("request body shorter than Content-Length")
	ErrBodyTooLarge         = errors.New("request body too large")
)

// Request 表示一个简单的 HTTP 请求（不依赖 net/http）
type Request struct {
	RawMethod string
	Method    message.Method // 解析失败时为空，分发只看 RawMethod
	Path      string
	Version   message.Version
	Headers   map[string]string
}

// ReadRequest 从 reader 中读取请求行和请求头，body 留在 reader 里
func ReadRequest(reader *bufio.Reader) (*Request, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		// 直接把错误返回给调用方（包括 EOF）
		return nil, err
	}
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequestLine, strings.TrimRight(line, message.CRLF))
	}
	req := &Request{
		RawMethod: parts[0],
		Path:      parts[1],
		Headers:   make(map[string]string),
	}
	// 方法和版本解析失败都不影响后续处理
	req.Method, _ = message.ParseMethod(parts[0])
	if len(parts) > 2 {
		req.Version, _ = message.ParseVersion(parts[2])
	}

	// 读取请求头
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("reading headers: %w", err)
		}
		// 读到尾
		if line == message.CRLF || line == "\n" {
			break
		}
		line = strings.TrimRight(line, message.CRLF)
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
		}
		req.Headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return req, nil
}

// ReadBody 按 Content-Length 读满请求体，不够就报错。
// limit > 0 时超过 limit 的长度直接拒绝，不会去读
func (r *Request) ReadBody(reader io.Reader, limit int64) ([]byte, error) {
	clStr, ok := r.Headers["Content-Length"]
	if !ok {
		return nil, fmt.Errorf("%w: Content-Length", ErrMissingHeader)
	}
	length, err := strconv.ParseInt(clStr, 10, 64)
	if err != nil || length < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentLength, clStr)
	}
	if limit > 0 && length > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrBodyTooLarge, length, limit)
	}
	// 边读边长，不按客户端给的长度预先分配
	var body bytes.Buffer
	if _, err := io.CopyN(&body, reader, length); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: got %d of %d bytes", ErrShortBody, body.Len(), length)
		}
		return nil, fmt.Errorf("error reading request body: %w", err)
	}
	return body.Bytes(), nil
}

// routeKey 取 path 的第一个片段，"/echo/abc" -> "echo"
func (r *Request) routeKey() string {
	splits := strings.Split(r.Path, "/")
	if len(splits) > 1 {
		return splits[1]
	}
	return ""
}
