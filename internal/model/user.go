package model

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name       string                      `gorm:"size:100;not null" json:"name"`
	Email      string                      `gorm:"size:100;unique;not null" json:"email"`
	Password   string                      `gorm:"size:100;not null" json:"-"`
	Role       UserRole                    `gorm:"size:20;default:'student'" json:"role"`
	Industry   string                      `gorm:"size:100;index" json:"industry"` // 关联 IndustryInsight.Industry
	Experience int                         `gorm:"default:0" json:"experience"`    // 工作经验（年）
	Bio        string                      `gorm:"type:text" json:"bio"`
	Skills     datatypes.JSONSlice[string] `gorm:"type:json" json:"skills"`
	Onboarded  bool                        `gorm:"default:false" json:"onboarded"`
	LastLogin  time.Time                   `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
