package server

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
)

func ExpectEqual(t *testing.T, expect, actual string) {
	t.Helper()
	if expect != actual {
		t.Errorf("Got %q, want %q", actual, expect)
	}
}

func readRequest(s string) (*Request, *bufio.Reader, error) {
	reader := bufio.NewReader(strings.NewReader(s))
	req, err := ReadRequest(reader)
	return req, reader, err
}

func TestReadRequest(t *testing.T) {
	req, _, err := readRequest("GET /echo/abc HTTP/1.1\r\nHost: x\r\nUser-Agent:  curl/8.0 \r\n\r\n")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	ExpectEqual(t, "GET", req.RawMethod)
	ExpectEqual(t, "GET", string(req.Method))
	ExpectEqual(t, "/echo/abc", req.Path)
	ExpectEqual(t, "HTTP/1.1", string(req.Version))
	ExpectEqual(t, "x", req.Headers["Host"])
	ExpectEqual(t, "curl/8.0", req.Headers["User-Agent"])
}

func TestReadRequestKeepsUnknownMethodAndVersion(t *testing.T) {
	req, _, err := readRequest("FETCH / HTTP/9\r\n\r\n")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	ExpectEqual(t, "FETCH", req.RawMethod)
	ExpectEqual(t, "", string(req.Method))
	ExpectEqual(t, "", string(req.Version))
}

func TestReadRequestHeaderOverwrite(t *testing.T) {
	req, _, err := readRequest("GET / HTTP/1.1\r\nX-A: 1\r\nX-A: 2\r\nx-a: 3\r\nHost: a:b\r\n\r\n")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	ExpectEqual(t, "2", req.Headers["X-A"])
	ExpectEqual(t, "3", req.Headers["x-a"])
	ExpectEqual(t, "a:b", req.Headers["Host"])
}

func TestReadRequestLeavesBody(t *testing.T) {
	_, reader, err := readRequest("POST /files/a HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	rest, _ := io.ReadAll(reader)
	ExpectEqual(t, "hello", string(rest))
}

func TestReadRequestErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", io.EOF},
		{"one token", "GET\r\n\r\n", ErrMalformedRequestLine},
		{"no colon", "GET / HTTP/1.1\r\nHost x\r\n\r\n", ErrMalformedHeader},
		{"unterminated headers", "GET / HTTP/1.1\r\nHost: x\r\n", io.EOF},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, _, err := readRequest(c.input); !errors.Is(err, c.want) {
				t.Errorf("err = %v, want %v", err, c.want)
			}
		})
	}
}

func TestReadBody(t *testing.T) {
	req := &Request{Headers: map[string]string{"Content-Length": "5"}}
	body, err := req.ReadBody(strings.NewReader("hello world"), 0)
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	ExpectEqual(t, "hello", string(body))

	// 分多次到达也要读满
	body, err = req.ReadBody(io.MultiReader(strings.NewReader("he"), strings.NewReader("llo")), 0)
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	ExpectEqual(t, "hello", string(body))
}

func TestReadBodyErrors(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		body    string
		want    error
	}{
		{"missing", map[string]string{}, "abc", ErrMissingHeader},
		{"not a number", map[string]string{"Content-Length": "abc"}, "abc", ErrInvalidContentLength},
		{"negative", map[string]string{"Content-Length": "-1"}, "abc", ErrInvalidContentLength},
		{"short", map[string]string{"Content-Length": "10"}, "abc", ErrShortBody},
		{"empty stream", map[string]string{"Content-Length": "1"}, "", ErrShortBody},
		{"max int64", map[string]string{"Content-Length": "9223372036854775807"}, "abc", ErrBodyTooLarge},
		{"overflows int64", map[string]string{"Content-Length": "99999999999999999999"}, "abc", ErrInvalidContentLength},
		{"over limit", map[string]string{"Content-Length": "1025"}, "abc", ErrBodyTooLarge},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := &Request{Headers: c.headers}
			if _, err := req.ReadBody(strings.NewReader(c.body), 1024); !errors.Is(err, c.want) {
				t.Errorf("err = %v, want %v", err, c.want)
			}
		})
	}
}

func TestReadBodyHugeLengthWithoutLimit(t *testing.T) {
	// 不设上限时也不能按 Content-Length 预分配
	req := &Request{Headers: map[string]string{"Content-Length": "9223372036854775807"}}
	if _, err := req.ReadBody(strings.NewReader("abc"), 0); !errors.Is(err, ErrShortBody) {
		t.Errorf("err = %v, want ErrShortBody", err)
	}
}

func TestReadBodyEmpty(t *testing.T) {
	req := &Request{Headers: map[string]string{"Content-Length": "0"}}
	body, err := req.ReadBody(strings.NewReader("ignored"), 1024)
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	ExpectEqual(t, "", string(body))
}
