package activity

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/uzretail/storebot/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "activity.db")), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(domain.Tables...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(db)
}

func TestRegisterUserIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u1, err := svc.RegisterUser(ctx, 42, "Alisher Usmonov", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if u1.Role != domain.RoleUser {
		t.Errorf("default role should be user, got %s", u1.Role)
	}

	u2, err := svc.RegisterUser(ctx, 42, "Alisher U.", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if u2.ID != u1.ID {
		t.Errorf("re-registration must not create a second user")
	}
	if u2.FullName != "Alisher U." {
		t.Errorf("full name not refreshed: %s", u2.FullName)
	}

	n, err := svc.CountUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 user, got %d", n)
	}
}

func TestLogActivityValidatesAction(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.LogActivity(ctx, 42, "", "main", "wander"); err == nil {
		t.Error("expected error for invalid action")
	}
	if _, err := svc.LogActivity(ctx, 42, "", "main", domain.ActionEntry); err != nil {
		t.Errorf("entry should be accepted: %v", err)
	}
	if _, err := svc.LogActivity(ctx, 42, "", "main", domain.ActionExit); err != nil {
		t.Errorf("exit should be accepted: %v", err)
	}
}

func TestActivitiesFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.LogActivity(ctx, 1, "", "main", domain.ActionEntry); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.LogActivity(ctx, 2, "", "branch", domain.ActionExit); err != nil {
		t.Fatal(err)
	}

	all, err := svc.Activities(ctx, Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 records, got %d", len(all))
	}

	only1, err := svc.Activities(ctx, Filter{UserID: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(only1) != 3 {
		t.Errorf("expected 3 records for user 1, got %d", len(only1))
	}

	limited, err := svc.Activities(ctx, Filter{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 records with limit, got %d", len(limited))
	}

	future, err := svc.Activities(ctx, Filter{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	if len(future) != 0 {
		t.Errorf("expected no records in the future, got %d", len(future))
	}
}

func TestDayStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.LogActivity(ctx, 1, "", "main", domain.ActionEntry); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.LogActivity(ctx, 1, "", "main", domain.ActionExit); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.DayStats(ctx, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 3 || stats.Entries != 2 || stats.Exits != 1 {
		t.Errorf("expected 3/2/1, got %+v", stats)
	}
}

func TestParseSince(t *testing.T) {
	if ts, err := ParseSince(""); err != nil || !ts.IsZero() {
		t.Errorf("empty input should yield zero time, got %v, %v", ts, err)
	}
	ts, err := ParseSince("2024-05-01")
	if err != nil {
		t.Fatal(err)
	}
	if ts.Year() != 2024 || ts.Month() != time.May || ts.Day() != 1 {
		t.Errorf("unexpected date: %v", ts)
	}
	if ts.Hour() != 0 || ts.Minute() != 0 {
		t.Errorf("expected start of day, got %v", ts)
	}
	if _, err := ParseSince("not a date at all"); err == nil {
		t.Error("expected error for unparseable date")
	}
}
