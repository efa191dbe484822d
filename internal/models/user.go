package models

import (
	"time"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
)

// Image is a hosted media object: the public URL plus the opaque
// identifier the media store needs to delete it later.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type User struct {
	ID                 uint               `gorm:"primaryKey" json:"id"`
	// Login resolves by student name, so it must be unique like the email.
	StudentName        string             `gorm:"uniqueIndex;not null" json:"studentname"`
	Email              string             `gorm:"uniqueIndex;not null" json:"email"`
	Password           string             `gorm:"not null" json:"-"` // Hash
	IsAdmin            bool               `gorm:"default:false" json:"isAdmin"`
	VerificationStatus VerificationStatus `gorm:"size:20;default:'pending'" json:"verificationStatus"`
	ProfilePic         Image              `gorm:"serializer:json" json:"profilePic"`
	CollegeYear        string             `gorm:"size:20" json:"college_year"`
	Department         string             `gorm:"size:100" json:"department"`

	// Denormalized counters, kept in lockstep with the post table by the
	// counter service. Never recomputed lazily.
	PostCount       int `gorm:"default:0" json:"postCount"`
	ResolvedCount   int `gorm:"default:0" json:"resolvedCount"`
	UnresolvedCount int `gorm:"default:0" json:"unresolvedCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// No DeletedAt for hard delete
}
