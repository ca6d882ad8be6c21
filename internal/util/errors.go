package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrInsightNotFound    = errors.New("industry insight not found")
	ErrNoActiveSession    = errors.New("no active practice session")
	ErrQuestionNotInSet   = errors.New("question not part of current session")
	ErrTransactionTimeout = errors.New("transaction exceeded its time bound")
	ErrSelectAfterReveal  = errors.New("answer is locked once revealed")
)

// ValidationError 请求参数不合法，不重试，原样返回给调用方
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// PersistenceError 存储层不可达或无法通过回读化解的约束冲突
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// GenerationError 合成的题目批次结构不合法，Index 标识出错的题目下标
type GenerationError struct {
	Index int
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("question %d failed generation: %v", e.Index, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
