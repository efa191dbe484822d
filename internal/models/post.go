package models

import (
	"time"
)

const (
	CategoryPersonalItem = "personal item"
	CategoryDocument     = "document"

	ItemTypeLost  = "lost"
	ItemTypeFound = "found"

	StatusResolved   = "resolved"
	StatusUnresolved = "unresolved"
)

// MaxPostImages caps the image gallery per post.
const MaxPostImages = 3

type Post struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"userId"`

	// Author snapshot taken at creation time; profile edits do not
	// retroactively update it.
	StudentName    string `json:"studentname"`
	UserProfilePic Image  `gorm:"serializer:json" json:"userProfilePic"`

	Title       string   `gorm:"not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Category    string   `gorm:"size:30" json:"category"`
	ItemType    string   `gorm:"size:10" json:"itemType"`
	Status      string   `gorm:"size:10;index;default:'unresolved'" json:"status"`
	CollegeYear string   `gorm:"size:20" json:"college_year"`
	Department  string   `gorm:"size:100" json:"department"`
	Images      []Image  `gorm:"serializer:json" json:"images"`
	Tags        []string `gorm:"serializer:json" json:"tags"`

	Views        int `gorm:"default:0" json:"views"`
	CommentCount int `gorm:"default:0" json:"commentCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
