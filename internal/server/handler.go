package server

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/codecrafters-io/http-server-starter-go/internal/message"
)

const (
	echoPrefix  = "/echo/"
	filesPrefix = "/files/"
)

var errOutsideDirectory = errors.New("file name escapes directory")

// 根路径 Handler：返回 200 OK，无 body
func rootHandler() *message.Response {
	return message.New(message.OK)
}

func notFound() *message.Response {
	return message.New(message.NotFound)
}

// textResponse 200 + Content-Type + Content-Length
func textResponse(contentType string, body []byte, extra ...string) *message.Response {
	resp := message.New(message.OK)
	resp.Headers = append([]string{"Content-Type: " + contentType}, extra...)
	resp.Headers = append(resp.Headers, "Content-Length: "+strconv.Itoa(len(body)))
	resp.Body = body
	return resp
}

// /echo/<text> Handler，不做 URL 解码
func echoHandler(req *Request) (*message.Response, error) {
	content := trimPrefix(req.Path, len(echoPrefix))
	if !acceptsGzip(req.Headers["Accept-Encoding"]) {
		return textResponse("text/plain", []byte(content)), nil
	}

	// gzip 压缩协商
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte(content)); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return textResponse("text/plain", buf.Bytes(), "Content-Encoding: gzip"), nil
}

func acceptsGzip(enc string) bool {
	for _, c := range strings.Split(enc, ",") {
		if strings.TrimSpace(c) == "gzip" {
			return true
		}
	}
	return false
}

// /user-agent Handler
func userAgentHandler(req *Request) (*message.Response, error) {
	userAgent, ok := req.Headers["User-Agent"]
	if !ok {
		return nil, fmt.Errorf("%w: User-Agent", ErrMissingHeader)
	}
	return textResponse("text/plain", []byte(userAgent)), nil
}

// /files/* Handler
func (s *Server) filesHandler(req *Request, body io.Reader) (*message.Response, error) {
	name := trimPrefix(req.Path, len(filesPrefix))
	switch req.RawMethod {
	case "GET":
		content, err := s.files.read(name)
		if err != nil {
			return notFound(), nil
		}
		return textResponse("application/octet-stream", content), nil
	case "POST":
		data, err := req.ReadBody(body, s.cfg.MaxBodySize)
		if err != nil {
			return nil, err
		}
		if err := s.files.write(name, data); err != nil {
			return nil, err
		}
		return message.New(message.Created), nil
	default:
		return message.New(message.BadRequest), nil
	}
}

// fileStore 平铺在一个目录下的文件，路径拼成 <dir>/<name>
type fileStore struct {
	dir string
}

func (f fileStore) path(name string) (string, error) {
	if !filepath.IsLocal(name) {
		return "", errOutsideDirectory
	}
	return f.dir + "/" + name, nil
}

// read 读不到或者不是合法文本都算失败
func (f fileStore) read(name string) ([]byte, error) {
	p, err := f.path(name)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(content) {
		return nil, errors.New("file is not valid UTF-8")
	}
	return content, nil
}

// write 创建或覆盖
func (f fileStore) write(name string, data []byte) error {
	p, err := f.path(name)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

func trimPrefix(path string, n int) string {
	if len(path) < n {
		return ""
	}
	return path[n:]
}
