package message

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMethod  = errors.New("unknown method")
	ErrUnknownVersion = errors.New("unknown version")
)

// Method 请求方法
type Method string

const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	DELETE Method = "DELETE"
	HEAD   Method = "HEAD"
	PATCH  Method = "PATCH"
)

// ParseMethod 大小写敏感的精确匹配
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case GET, POST, PUT, DELETE, HEAD, PATCH:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Version 协议版本。只做解析，响应永远使用 HTTP/1.1
type Version string

const (
	V1_0 Version = "HTTP/1.0"
	V1_1 Version = "HTTP/1.1"
	V2_0 Version = "HTTP/2.0"
)

// ParseVersion 只认 HTTP/1.0、HTTP/1.1、HTTP/2.0
func ParseVersion(s string) (Version, error) {
	switch v := Version(s); v {
	case V1_0, V1_1, V2_0:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVersion, s)
}
