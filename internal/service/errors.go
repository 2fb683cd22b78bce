package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput 请求级参数错误，在任何写操作之前返回
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
