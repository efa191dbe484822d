package models

import (
	"time"
)

type Comment struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"not null;index" json:"postId"`
	UserID uint `gorm:"not null;index" json:"userId"`

	// Author snapshot at comment-creation time.
	StudentName    string `json:"studentname"`
	UserProfilePic Image  `gorm:"serializer:json" json:"userProfilePic"`
	IsAdmin        bool   `gorm:"default:false" json:"isAdmin"`

	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
