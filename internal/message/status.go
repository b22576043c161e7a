package message

import "strconv"

// StatusCode HTTP 状态码
type StatusCode int

const (
	OK                   StatusCode = 200
	Created              StatusCode = 201
	Accepted             StatusCode = 202
	NoContent            StatusCode = 204
	MovedPermanently     StatusCode = 301
	Found                StatusCode = 302
	NotModified          StatusCode = 304
	BadRequest           StatusCode = 400
	Unauthorized         StatusCode = 401
	Forbidden            StatusCode = 403
	NotFound             StatusCode = 404
	MethodNotAllowed     StatusCode = 405
	RequestTimeout       StatusCode = 408
	Conflict             StatusCode = 409
	Gone                 StatusCode = 410
	PreconditionFailed   StatusCode = 412
	PayloadTooLarge      StatusCode = 413
	URITooLong           StatusCode = 414
	UnsupportedMediaType StatusCode = 415
	InternalServerError  StatusCode = 500
)

var reasons = map[StatusCode]string{
	OK:                   "OK",
	Created:              "Created",
	Accepted:             "Accepted",
	NoContent:            "No Content",
	MovedPermanently:     "Moved Permanently",
	Found:                "Found",
	NotModified:          "Not Modified",
	BadRequest:           "Bad Request",
	Unauthorized:         "Unauthorized",
	Forbidden:            "Forbidden",
	NotFound:             "Not Found",
	MethodNotAllowed:     "Method Not Allowed",
	RequestTimeout:       "Request Timeout",
	Conflict:             "Conflict",
	Gone:                 "Gone",
	PreconditionFailed:   "Precondition Failed",
	PayloadTooLarge:      "Payload Too Large",
	URITooLong:           "URI Too Long",
	UnsupportedMediaType: "Unsupported Media Type",
	InternalServerError:  "Internal Server Error",
}

// Reason 返回状态码对应的短语，未知状态码返回空串
func (c StatusCode) Reason() string {
	return reasons[c]
}

func (c StatusCode) String() string {
	return strconv.Itoa(int(c))
}
