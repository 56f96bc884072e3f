// Package domain defines the persistence models for the studio website:
// users, FAQ entries, gallery photos, packages, reviews, and chatbot
// history. These types are mapped with GORM and shared across the
// repository, service, and HTTP layers.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Roles a User may hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Gallery categories accepted on upload.
const (
	CategoryWedding    = "wedding"
	CategoryPrewedding = "prewedding"
	CategoryOther      = "lainnya"
)

// ValidCategory reports whether c is a known gallery category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryWedding, CategoryPrewedding, CategoryOther:
		return true
	}
	return false
}

// User is a registered account. Email is stored lower-case and unique;
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Name      string    `json:"name"       gorm:"size:255;not null"`
	Email     string    `json:"email"      gorm:"size:255;not null;uniqueIndex:ux_users_email"`
	Password  string    `json:"-"          gorm:"size:255;not null"`
	Role      string    `json:"role"       gorm:"size:16;not null;default:user;check:role IN ('user','admin')"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// FAQItem is a question/answer pair shown on the FAQ page.
type FAQItem struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Question  string    `json:"question"   gorm:"type:text;not null"`
	Answer    string    `json:"answer"     gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for FAQItem.
func (FAQItem) TableName() string { return "faq" }

// GalleryItem is a portfolio photo. Image holds the public path of the
// stored file (e.g. "/uploads/gallery/gallery-1714000000000-ab12cd34ef.jpg").
type GalleryItem struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Title     string    `json:"title"      gorm:"size:255;not null"`
	Category  string    `json:"category"   gorm:"size:32;not null;index"`
	Image     string    `json:"image"      gorm:"size:512;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for GalleryItem.
func (GalleryItem) TableName() string { return "gallery" }

// Package is a priced photography offering. Price is display text
// ("Rp 3.500.000"), not a number. Features keep their order.
type Package struct {
	ID          uint                        `json:"id"          gorm:"primaryKey"`
	Name        string                      `json:"name"        gorm:"size:255;not null"`
	Price       string                      `json:"price"       gorm:"size:64;not null"`
	Description string                      `json:"description" gorm:"type:text"`
	Features    datatypes.JSONSlice[string] `json:"features"`
	Popular     bool                        `json:"popular"     gorm:"column:is_popular;not null;default:false"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// TableName returns the database table name for Package.
func (Package) TableName() string { return "packages" }

// Review is a customer testimonial with a 1-5 rating and an optional photo.
type Review struct {
	ID           uint      `json:"id"            gorm:"primaryKey"`
	CustomerName string    `json:"customer_name" gorm:"size:255;not null"`
	ServiceType  string    `json:"service_type"  gorm:"size:255"`
	Location     string    `json:"location"      gorm:"size:255"`
	Rating       int       `json:"rating"        gorm:"not null;default:5;check:rating BETWEEN 1 AND 5"`
	Comment      string    `json:"comment"       gorm:"type:text"`
	Image        *string   `json:"image"         gorm:"size:512"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"created_at"    gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for Review.
func (Review) TableName() string { return "reviews" }

// ChatHistoryEntry records one chatbot turn: what the visitor typed, what the
// bot answered, and the classified intent when the bot reported one.
type ChatHistoryEntry struct {
	ID          uint      `json:"id"           gorm:"primaryKey"`
	SessionID   string    `json:"session_id"   gorm:"size:128;not null;index"`
	UserMessage string    `json:"user_message" gorm:"type:text;not null"`
	BotResponse string    `json:"bot_response" gorm:"type:text;not null"`
	Intent      *string   `json:"intent"       gorm:"size:128"`
	Confidence  *float64  `json:"confidence"`
	UserIP      string    `json:"user_ip"      gorm:"size:64"`
	UserAgent   string    `json:"user_agent"   gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"   gorm:"index"`
}

// TableName returns the database table name for ChatHistoryEntry.
func (ChatHistoryEntry) TableName() string { return "chat_history" }
