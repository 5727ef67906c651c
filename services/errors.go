package services

import "errors"

// 结构化负向结果，控制器据此映射统一业务码。
// 提交结果（Solved / AlreadySolved / IncorrectFlag）不是错误，见 submission_service.go
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrUnauthenticated    = errors.New("login required")
)
