package service

import "errors"

// ErrValidation 输入校验失败，在任何外部调用发生之前返回.
// handler 层据此映射为 400.
var ErrValidation = errors.New("validation failed")
