package response

import "personalblog/model"

// User is the outward representation of an account. The password hash never
// appears here.
type User struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Age    int    `json:"age,omitempty"`
	Region string `json:"region,omitempty"`
}

// UserSummary 只暴露公开字段，用于登录响应和帖子作者
type UserSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUser(u *model.User) User {
	return User{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Phone:  u.Phone,
		Age:    u.Age,
		Region: u.Region,
	}
}

func NewUserSummary(u *model.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
