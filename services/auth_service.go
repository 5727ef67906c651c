package services

import (
	"context"
	stderrors "errors"

	"github.com/Kamesh-the-hacker/CTF/models"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService 凭据存储上的操作：注册、登录、管理员登录、改密、用户管理
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register 创建分数为 0 的新用户。唯一性靠 username 上的唯一索引保证，
// 并发注册同名用户时由存储层冲突检测兜底，不做应用层加锁。
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	user := models.User{Username: username, Password: password}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, errors.Wrap(err, "register user")
	}
	log.WithField("username", username).Info("user registered")
	return &user, nil
}

// Login 用户名查找 + bcrypt 比对。用户不存在与密码错误返回同一个错误，不泄露差别
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "lookup user")
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// AdminLogin 管理员登录，与用户登录互不相干
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "lookup admin")
	}
	if !admin.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &admin, nil
}

// ChangeAdminPassword 先验当前密码再覆盖。旧密码不匹配时不产生任何写入
func (s *AuthService) ChangeAdminPassword(ctx context.Context, adminID uint32, oldPassword, newPassword string) error {
	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, adminID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		return errors.Wrap(err, "lookup admin")
	}
	if !admin.CheckPassword(oldPassword) {
		return ErrInvalidCredentials
	}
	// 这里显式哈希并用 UpdateColumn 绕过 Hook，避免 Updates 流程里二次哈希
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	if err := s.db.WithContext(ctx).Model(&admin).UpdateColumn("password", string(hashed)).Error; err != nil {
		return errors.Wrap(err, "update admin password")
	}
	log.WithField("admin", admin.Username).Info("admin password changed")
	return nil
}

// ListUsers 管理员查看用户列表（id、用户名、分数）
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Select("id", "username", "score").Order("id asc").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}

// DeleteUser 删除用户并在同一事务里清掉其解题台账
func (s *AuthService) DeleteUser(ctx context.Context, userID uint32) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return tx.Where("user_id = ?", userID).Delete(&models.Solve{}).Error
	})
	if err != nil {
		if stderrors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return errors.Wrap(err, "delete user")
	}
	return nil
}
