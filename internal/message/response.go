// Package message 定义响应报文以及方法、版本的解析。
package message

import (
	"bytes"
	"io"
)

// CRLF 回车换行
const CRLF = "\r\n"

// Response 一次性构造、序列化一次的响应。
// Headers 里每一项都是已经拼好的 "Name: value"，不带 CRLF；
// Content-Length 需要调用方自己给出。
type Response struct {
	Code    StatusCode
	Message string
	Headers []string
	Body    []byte
}

// New 用状态码默认的短语构造一个没有头部和 body 的响应
func New(code StatusCode) *Response {
	return &Response{Code: code, Message: code.Reason()}
}

// Format 拼出完整的原始响应报文
func (r *Response) Format() []byte {
	var b bytes.Buffer
	b.WriteString(string(V1_1) + " " + r.Code.String() + " " + r.Message + CRLF)
	for _, h := range r.Headers {
		b.WriteString(h)
		b.WriteString(CRLF)
	}
	b.WriteString(CRLF)
	b.Write(r.Body)
	return b.Bytes()
}

// WriteTo 把整个报文写到 w
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Format())
	return int64(n), err
}
