// Package activity keeps the user roster and the append-only
// check-in/check-out history.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"github.com/uzretail/storebot/internal/domain"
	"github.com/uzretail/storebot/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter narrows activity queries. Zero values mean "no constraint".
type Filter struct {
	UserID int64
	From   time.Time
	To     time.Time
	Limit  int
}

// DayStats summarizes one day of activity.
type DayStats struct {
	Total   int64 `json:"total"`
	Entries int64 `json:"entries"`
	Exits   int64 `json:"exits"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RegisterUser records a chat user on first contact. Repeated registrations
// are harmless; the profile fields are refreshed when they change.
func (s *Service) RegisterUser(ctx context.Context, telegramID int64, fullName, phone, role string) (*domain.BotUser, error) {
	if role == "" {
		role = domain.RoleUser
	}
	now := time.Now()
	u := domain.BotUser{
		ID:         common.UUIDint64(),
		TelegramID: telegramID,
		Phone:      phone,
		FullName:   fullName,
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "telegram_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"full_name":  fullName,
			"updated_at": now,
		}),
	}).Create(&u).Error
	if err != nil {
		return nil, errors.Wrap(err, "register user")
	}

	var out domain.BotUser
	if err := s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&out).Error; err != nil {
		return nil, errors.Wrap(err, "reload user")
	}
	return &out, nil
}

func (s *Service) GetUser(ctx context.Context, telegramID int64) (*domain.BotUser, error) {
	var u domain.BotUser
	err := s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "query user")
	}
	return &u, nil
}

// ListUsers returns the roster, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]domain.BotUser, error) {
	var users []domain.BotUser
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}

func (s *Service) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.BotUser{}).Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "count users")
	}
	return n, nil
}

// LogActivity appends one presence record. Action must be entry or exit.
func (s *Service) LogActivity(ctx context.Context, userID int64, phone, storeKey, action string) (*domain.UserActivity, error) {
	if action != domain.ActionEntry && action != domain.ActionExit {
		return nil, fmt.Errorf("invalid activity action %q", action)
	}
	rec := domain.UserActivity{
		ID:        common.UUIDint64(),
		UserID:    userID,
		Phone:     phone,
		StoreKey:  storeKey,
		Action:    action,
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, errors.Wrap(err, "log activity")
	}
	zap.L().Info("activity recorded",
		zap.Int64("user_id", userID),
		zap.String("store", storeKey),
		zap.String("action", action))
	return &rec, nil
}

// Activities returns presence records matching the filter, newest first.
func (s *Service) Activities(ctx context.Context, f Filter) ([]domain.UserActivity, error) {
	q := s.db.WithContext(ctx).Model(&domain.UserActivity{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}
	q = q.Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var records []domain.UserActivity
	if err := q.Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "list activities")
	}
	return records, nil
}

func (s *Service) CountActivities(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.UserActivity{}).Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "count activities")
	}
	return n, nil
}

// DayStats summarizes entries and exits for the day containing t.
func (s *Service) DayStats(ctx context.Context, t time.Time) (DayStats, error) {
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	to := from.Add(24 * time.Hour)

	var stats DayStats
	if err := s.db.WithContext(ctx).Model(&domain.UserActivity{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&stats.Total).Error; err != nil {
		return DayStats{}, errors.Wrap(err, "count day activities")
	}
	if err := s.db.WithContext(ctx).Model(&domain.UserActivity{}).
		Where("created_at >= ? AND created_at < ? AND action = ?", from, to, domain.ActionEntry).
		Count(&stats.Entries).Error; err != nil {
		return DayStats{}, errors.Wrap(err, "count day entries")
	}
	stats.Exits = stats.Total - stats.Entries
	return stats, nil
}

// ParseSince turns a loosely formatted date string ("2024-05-01",
// "01.05.2024", "May 1 2024") into the start of that day. An empty string
// yields the zero time, i.e. no constraint.
func ParseSince(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q: %w", s, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
}
