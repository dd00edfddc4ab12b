package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// CustomizedError 携带调用链、i18n 消息 id 以及返回给客户端的 http 状态码
type CustomizedError struct {
	trace   []string
	message string
	err     error
	code    int
}

func New(trace, message string, err error) *CustomizedError {
	return &CustomizedError{
		trace:   []string{trace},
		message: message,
		err:     err,
		code:    http.StatusInternalServerError,
	}
}

// Trace 在已有错误上追加调用位置，非 CustomizedError 会被包装为内部错误
func Trace(trace string, err error) *CustomizedError {
	if err == nil {
		return nil
	}
	var ce *CustomizedError
	if errors.As(err, &ce) {
		ce.trace = append([]string{trace}, ce.trace...)
		return ce
	}
	return New(trace, "error.internal", err)
}

func (e *CustomizedError) Code(code int) *CustomizedError {
	e.code = code
	return e
}

func (e *CustomizedError) HttpCode() int {
	return e.code
}

func (e *CustomizedError) Message() string {
	return e.message
}

func (e *CustomizedError) Unwrap() error {
	return e.err
}

func (e *CustomizedError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%s: %s", strings.Join(e.trace, " -> "), e.message)
	}
	return fmt.Sprintf("%s: %s, %s", strings.Join(e.trace, " -> "), e.message, e.err.Error())
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
