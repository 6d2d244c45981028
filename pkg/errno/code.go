package errno

import "errors"

// code=0 请求成功
// code=4xx 客户端请求错误
// code=5xx 服务器端错误
// code=2xxxx 业务处理错误码

type Errno struct {
	Code    int
	Message string
}

// Error 实现error接口
func (e *Errno) Error() string {
	return e.Message
}

var (
	OK = &Errno{Code: 200, Message: "Success"}

	ErrInvalidParam = &Errno{Code: 400, Message: "Invalid parameter"}
	ErrUnauthorized = &Errno{Code: 401, Message: "Unauthorized"}
	// ErrNotFound covers every miss the HLS endpoints can produce: unknown
	// quality label, path escaping the media root, absent file, absent record.
	// Callers must not be able to tell those cases apart.
	ErrNotFound = &Errno{Code: 404, Message: "Not found"}

	ErrInternalServer = &Errno{Code: 500, Message: "Internal server error"}
	ErrDatabase       = &Errno{Code: 501, Message: "Database error"}

	// 业务错误码
	ErrTitleRequired     = &Errno{Code: 20001, Message: "Title is required"}
	ErrVideoFileRequired = &Errno{Code: 20002, Message: "Video file is required"}
	ErrVideoNotFound     = &Errno{Code: 20003, Message: "Video not found"}
	ErrEncodingFailed    = &Errno{Code: 20004, Message: "Video encoding failed"}
	ErrQueueFull         = &Errno{Code: 20005, Message: "Job queue is full"}
	ErrEnqueueFailed     = &Errno{Code: 20006, Message: "Failed to enqueue transcode job"}
)

// BizError attaches an underlying cause to a coded error.
type BizError struct {
	Errno *Errno
	Cause error
}

func NewBizError(errno *Errno, cause error) *BizError {
	if errno == nil {
		errno = ErrInternalServer
	}
	return &BizError{Errno: errno, Cause: cause}
}

func (e *BizError) Error() string {
	if e.Cause != nil {
		return e.Errno.Message + ": " + e.Cause.Error()
	}
	return e.Errno.Message
}

func (e *BizError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Errno
}

// IsNotFound reports whether err resolves to the generic not-found code.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrVideoNotFound) {
		return true
	}
	var biz *BizError
	if errors.As(err, &biz) {
		return biz.Errno == ErrNotFound || biz.Errno == ErrVideoNotFound
	}
	return false
}
