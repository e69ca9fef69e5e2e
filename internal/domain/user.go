package domain

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Activity actions.
const (
	ActionEntry = "entry"
	ActionExit  = "exit"
)

// BotUser is a chat user known to the bot, registered on first contact.
type BotUser struct {
	ID         int64     `json:"id,string" form:"id"`
	TelegramID int64     `gorm:"uniqueIndex" json:"telegram_id" form:"telegram_id"`
	Phone      string    `gorm:"size:32" json:"phone" form:"phone"`
	FullName   string    `gorm:"size:200" json:"full_name" form:"full_name"`
	Role       string    `gorm:"size:16" json:"role" form:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName Specify table name
func (BotUser) TableName() string {
	return "bot_users"
}

// UserActivity records a declared presence change at a store. StoreKey
// references the configured store registry key, not the display name.
type UserActivity struct {
	ID        int64     `json:"id,string"`
	UserID    int64     `gorm:"index" json:"user_id"`
	Phone     string    `gorm:"size:32" json:"phone"`
	StoreKey  string    `gorm:"index;size:64" json:"store_key"`
	Action    string    `gorm:"size:16" json:"action"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName Specify table name
func (UserActivity) TableName() string {
	return "user_activities"
}
