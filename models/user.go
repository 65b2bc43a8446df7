package models

import (
	"time"
)

// User 接口调用方账号
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
