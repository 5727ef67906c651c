package services

import (
	"context"
	"testing"

	"github.com/Kamesh-the-hacker/CTF/models"
)

func TestLeaderboardTop(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaderboardService(db, nil) // 无 Redis，直接走数据库

	scores := map[string]uint{"a": 50, "b": 30, "c": 30, "d": 10}
	for _, name := range []string{"a", "b", "c", "d"} {
		user := models.User{Username: name, Password: "pw"}
		if err := db.Create(&user).Error; err != nil {
			t.Fatalf("create user: %v", err)
		}
		db.Model(&user).UpdateColumn("score", scores[name])
	}

	entries, err := svc.Top(context.Background(), 3)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].Username != "a" || entries[0].Score != 50 {
		t.Fatalf("first entry = %+v, want a/50", entries[0])
	}
	// 同分并列时两人都要在榜上，顺序按注册先后
	if entries[1].Username != "b" || entries[2].Username != "c" {
		t.Fatalf("tie order = %s, %s, want b, c", entries[1].Username, entries[2].Username)
	}
}

func TestLeaderboardLimitDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaderboardService(db, nil)

	for i := 0; i < 15; i++ {
		user := models.User{Username: string(rune('a'+i)) + "-user", Password: "pw"}
		if err := db.Create(&user).Error; err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	// 非法 limit 回退到默认 10
	for _, limit := range []int{0, -5, 1000} {
		entries, err := svc.Top(context.Background(), limit)
		if err != nil {
			t.Fatalf("top(%d): %v", limit, err)
		}
		if len(entries) != 10 {
			t.Fatalf("top(%d) entries = %d, want 10", limit, len(entries))
		}
	}
}
