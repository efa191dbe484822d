package models

import (
	"time"
)

type NotificationKind string

const (
	NotificationKindComment NotificationKind = "comment"
	NotificationKindSystem  NotificationKind = "system"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"userId"` // Receiver
	PostID    uint             `gorm:"index" json:"postId"`
	Kind      NotificationKind `gorm:"type:varchar(20);not null" json:"kind"`
	Message   string           `gorm:"type:text" json:"message"`
	Viewed    bool             `gorm:"default:false;index" json:"viewed"`
	CreatedAt time.Time        `json:"createdAt"`
}
