package models

import "time"

type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
}

type NewAccount struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	AvatarURL string `json:"avatar_url"`
}
