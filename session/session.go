package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound 表示会话不存在或已过期
var ErrNotFound = errors.New("session not found")

// UserFacet 普通用户登录态，Score 为缓存分数，解题成功后由提交引擎刷新
type UserFacet struct {
	ID       uint32 `json:"id"`
	Username string `json:"username"`
	Score    uint   `json:"score"`
}

// AdminFacet 管理员登录态
type AdminFacet struct {
	ID       uint32 `json:"id"`
	Username string `json:"username"`
}

// Session 一次逻辑会话的认证状态。两个 facet 相互独立：
// 同一会话可以只有用户、只有管理员、两者都有或都没有，
// 注销一方不得影响另一方。
type Session struct {
	ID    string      `json:"id"`
	User  *UserFacet  `json:"user,omitempty"`
	Admin *AdminFacet `json:"admin,omitempty"`
}

// New 生成带随机 ID 的空会话
func New() *Session {
	return &Session{ID: uuid.NewString()}
}

// Store 会话持久化接口，生产环境走 Redis，测试走内存实现
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
