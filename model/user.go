package model

import "time"

// User 用户模型
type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null;size:100" json:"name"`
	Email        string    `gorm:"unique;not null;size:255" json:"email"`
	Phone        string    `gorm:"size:20" json:"phone,omitempty"`
	Age          int       `json:"age,omitempty"`
	Region       string    `gorm:"size:100" json:"region,omitempty"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"` // 忽略JSON序列化
	CreatedAt    time.Time `json:"created_at"`
}
