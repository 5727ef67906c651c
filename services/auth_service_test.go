package services

import (
	"context"
	"testing"

	"github.com/Kamesh-the-hacker/CTF/models"
)

func TestRegister_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "password1")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	if user.Score != 0 {
		t.Fatalf("initial score = %d, want 0", user.Score)
	}

	if _, err := svc.Register(ctx, "alice", "password2"); err != ErrUsernameTaken {
		t.Fatalf("second register err = %v, want ErrUsernameTaken", err)
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "bob", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Login(ctx, "bob", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "bob" {
		t.Fatalf("username = %q, want bob", user.Username)
	}

	// 用户不存在与密码错误必须返回同一个错误
	if _, err := svc.Login(ctx, "bob", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody", "hunter22"); err != ErrInvalidCredentials {
		t.Fatalf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}

func TestPasswordStoredHashed(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	if _, err := svc.Register(context.Background(), "carol", "plaintext"); err != nil {
		t.Fatalf("register: %v", err)
	}
	var stored models.User
	if err := db.Where("username = ?", "carol").First(&stored).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Password == "plaintext" {
		t.Fatal("password stored in cleartext")
	}
	if !stored.CheckPassword("plaintext") {
		t.Fatal("stored hash does not verify original password")
	}
}

func TestChangeAdminPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	admin := models.Admin{Username: "admin", Password: "admin123"}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	// 旧密码错误：失败且凭据保持不变
	if err := svc.ChangeAdminPassword(ctx, admin.ID, "wrong", "newpass"); err != ErrInvalidCredentials {
		t.Fatalf("wrong old password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.AdminLogin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("old credential should still work: %v", err)
	}

	// 旧密码正确：改密后旧密码失效、新密码生效
	if err := svc.ChangeAdminPassword(ctx, admin.ID, "admin123", "newpass"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := svc.AdminLogin(ctx, "admin", "admin123"); err != ErrInvalidCredentials {
		t.Fatalf("old credential after change err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.AdminLogin(ctx, "admin", "newpass"); err != nil {
		t.Fatalf("new credential login: %v", err)
	}
}

func TestDeleteUser_RemovesSolves(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	user := mustCreateUser(t, db, "dave")
	other := mustCreateUser(t, db, "erin")
	ch := mustCreateChallenge(t, db, "misc-10", "vhpctf{x}", 10)

	for _, uid := range []uint32{user.ID, other.ID} {
		if err := db.Create(&models.Solve{UserID: uid, ChallengeID: ch.ID}).Error; err != nil {
			t.Fatalf("seed solve: %v", err)
		}
	}

	if err := svc.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	var userCount int64
	db.Model(&models.User{}).Where("id = ?", user.ID).Count(&userCount)
	if userCount != 0 {
		t.Fatal("user row still present")
	}
	var solveCount int64
	db.Model(&models.Solve{}).Where("user_id = ?", user.ID).Count(&solveCount)
	if solveCount != 0 {
		t.Fatalf("deleted user's solve rows = %d, want 0", solveCount)
	}
	// 其他用户的台账不受影响
	db.Model(&models.Solve{}).Where("user_id = ?", other.ID).Count(&solveCount)
	if solveCount != 1 {
		t.Fatalf("other user's solve rows = %d, want 1", solveCount)
	}

	if err := svc.DeleteUser(ctx, 9999); err != ErrUserNotFound {
		t.Fatalf("delete unknown user err = %v, want ErrUserNotFound", err)
	}
}
