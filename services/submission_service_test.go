package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Kamesh-the-hacker/CTF/models"
	"github.com/Kamesh-the-hacker/CTF/session"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:submission_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Admin{}, &models.Challenge{}, &models.Solve{}); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, Password: "secret123"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func mustCreateChallenge(t *testing.T, db *gorm.DB, title, flag string, points uint) *models.Challenge {
	t.Helper()
	ch := models.Challenge{Title: title, Category: "web", Description: "d", Flag: flag, Points: points}
	if err := db.Create(&ch).Error; err != nil {
		t.Fatalf("create challenge: %v", err)
	}
	return &ch
}

func userSession(t *testing.T, store session.Store, user *models.User) *session.Session {
	t.Helper()
	sess := session.New()
	sess.User = &session.UserFacet{ID: user.ID, Username: user.Username, Score: user.Score}
	if err := store.Save(context.Background(), sess); err != nil {
		t.Fatalf("save session: %v", err)
	}
	return sess
}

func TestSubmit_CorrectFlagCreditsOnce(t *testing.T) {
	db := setupTestDB(t)
	store := session.NewMemoryStore()
	svc := NewSubmissionService(db, store)

	user := mustCreateUser(t, db, "alice")
	ch := mustCreateChallenge(t, db, "rev-100", "vhpctf{correct}", 100)
	sess := userSession(t, store, user)

	result, err := svc.Submit(context.Background(), sess, ch.ID, "vhpctf{correct}")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Status != StatusSolved {
		t.Fatalf("status = %q, want %q", result.Status, StatusSolved)
	}
	if result.NewScore != 100 {
		t.Fatalf("new score = %d, want 100", result.NewScore)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Score != 100 {
		t.Fatalf("stored score = %d, want 100", stored.Score)
	}

	var solveCount int64
	db.Model(&models.Solve{}).Where("user_id = ? AND challenge_id = ?", user.ID, ch.ID).Count(&solveCount)
	if solveCount != 1 {
		t.Fatalf("solve rows = %d, want 1", solveCount)
	}

	// 会话缓存的分数必须同步刷新
	if sess.User.Score != 100 {
		t.Fatalf("session score = %d, want 100", sess.User.Score)
	}
	reloaded, err := store.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if reloaded.User.Score != 100 {
		t.Fatalf("stored session score = %d, want 100", reloaded.User.Score)
	}
}

func TestSubmit_ResubmissionIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	store := session.NewMemoryStore()
	svc := NewSubmissionService(db, store)

	user := mustCreateUser(t, db, "bob")
	ch := mustCreateChallenge(t, db, "pwn-50", "vhpctf{once}", 50)
	sess := userSession(t, store, user)

	if _, err := svc.Submit(context.Background(), sess, ch.ID, "vhpctf{once}"); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	for i := 0; i < 5; i++ {
		result, err := svc.Submit(context.Background(), sess, ch.ID, "vhpctf{once}")
		if err != nil {
			t.Fatalf("resubmit %d: %v", i, err)
		}
		if result.Status != StatusAlreadySolved {
			t.Fatalf("resubmit %d status = %q, want %q", i, result.Status, StatusAlreadySolved)
		}
	}

	var stored models.User
	db.First(&stored, user.ID)
	if stored.Score != 50 {
		t.Fatalf("score after resubmissions = %d, want 50", stored.Score)
	}
}

func TestSubmit_IncorrectFlagIsExactMatch(t *testing.T) {
	db := setupTestDB(t)
	store := session.NewMemoryStore()
	svc := NewSubmissionService(db, store)

	user := mustCreateUser(t, db, "carol")
	ch := mustCreateChallenge(t, db, "web-75", "vhpctf{CaseSensitive}", 75)
	sess := userSession(t, store, user)

	// 大小写、前后空白都不做归一化
	for _, candidate := range []string{
		"vhpctf{casesensitive}",
		" vhpctf{CaseSensitive}",
		"vhpctf{CaseSensitive} ",
		"vhpctf{CaseSensitive",
		"",
	} {
		result, err := svc.Submit(context.Background(), sess, ch.ID, candidate)
		if err != nil {
			t.Fatalf("submit %q: %v", candidate, err)
		}
		if result.Status != StatusIncorrectFlag {
			t.Fatalf("submit %q status = %q, want %q", candidate, result.Status, StatusIncorrectFlag)
		}
	}

	var stored models.User
	db.First(&stored, user.ID)
	if stored.Score != 0 {
		t.Fatalf("score after wrong flags = %d, want 0", stored.Score)
	}
	var solveCount int64
	db.Model(&models.Solve{}).Where("user_id = ?", user.ID).Count(&solveCount)
	if solveCount != 0 {
		t.Fatalf("solve rows = %d, want 0", solveCount)
	}
}

func TestSubmit_UnknownChallenge(t *testing.T) {
	db := setupTestDB(t)
	store := session.NewMemoryStore()
	svc := NewSubmissionService(db, store)

	user := mustCreateUser(t, db, "dave")
	sess := userSession(t, store, user)

	_, err := svc.Submit(context.Background(), sess, 9999, "whatever")
	if err != ErrChallengeNotFound {
		t.Fatalf("err = %v, want ErrChallengeNotFound", err)
	}
}

func TestSubmit_RequiresUserSession(t *testing.T) {
	db := setupTestDB(t)
	store := session.NewMemoryStore()
	svc := NewSubmissionService(db, store)

	if _, err := svc.Submit(context.Background(), nil, 1, "f"); err != ErrUnauthenticated {
		t.Fatalf("nil session err = %v, want ErrUnauthenticated", err)
	}

	// 只有管理员登录态的会话同样不允许提交
	adminOnly := session.New()
	adminOnly.Admin = &session.AdminFacet{ID: 1, Username: "admin"}
	if _, err := svc.Submit(context.Background(), adminOnly, 1, "f"); err != ErrUnauthenticated {
		t.Fatalf("admin-only session err = %v, want ErrUnauthenticated", err)
	}
}

// 并发重复提交只允许记一次分：台账唯一索引是唯一的串行化点
func TestSubmit_ConcurrentDuplicateCreditsOnce(t *testing.T) {
	// 并发写需要文件型数据库，内存库的共享缓存锁粒度太粗
	dsn := filepath.Join(t.TempDir(), "race.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Challenge{}, &models.Solve{}); err != nil {
		t.Fatalf("migrate db: %v", err)
	}

	store := session.NewMemoryStore()
	svc := NewSubmissionService(db, store)

	user := mustCreateUser(t, db, "eve")
	ch := mustCreateChallenge(t, db, "crypto-200", "vhpctf{race}", 200)

	const workers = 4
	results := make([]SubmitStatus, workers)
	errs := make([]error, workers)

	// 每个并发提交者各拿一份独立会话，模拟多连接
	sessions := make([]*session.Session, workers)
	for i := range sessions {
		sessions[i] = userSession(t, store, user)
	}

	var start sync.WaitGroup
	var done sync.WaitGroup
	start.Add(1)
	for i := 0; i < workers; i++ {
		done.Add(1)
		go func(i int) {
			defer done.Done()
			start.Wait()
			result, err := svc.Submit(context.Background(), sessions[i], ch.ID, "vhpctf{race}")
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = result.Status
		}(i)
	}
	start.Done()
	done.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", i, err)
		}
	}

	solved := 0
	for _, status := range results {
		if status == StatusSolved {
			solved++
		} else if status != StatusAlreadySolved {
			t.Fatalf("unexpected status %q", status)
		}
	}
	if solved != 1 {
		t.Fatalf("solved outcomes = %d, want exactly 1", solved)
	}

	var stored models.User
	db.First(&stored, user.ID)
	if stored.Score != 200 {
		t.Fatalf("score after concurrent submissions = %d, want 200", stored.Score)
	}
	var solveCount int64
	db.Model(&models.Solve{}).Where("user_id = ?", user.ID).Count(&solveCount)
	if solveCount != 1 {
		t.Fatalf("solve rows = %d, want 1", solveCount)
	}
}
