// Package identityv1 описывает API профилей пользователей (identity.v1.IdentityService).
package identityv1

import "time"

type User struct {
	Id           string    `json:"id"`
	TelegramId   int64     `json:"telegram_id"`
	DisplayName  string    `json:"display_name"`
	Username     string    `json:"username,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Blocked      bool      `json:"blocked"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterUserRequest struct {
	TelegramId   int64  `json:"telegram_id"`
	DisplayName  string `json:"display_name"`
	Username     string `json:"username,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

type RegisterUserResponse struct {
	User *User `json:"user"`
}

type UpdateContactsRequest struct {
	TelegramId   int64  `json:"telegram_id"`
	DisplayName  string `json:"display_name,omitempty"`
	Username     string `json:"username,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

type UpdateContactsResponse struct {
	User *User `json:"user"`
}

type SetBlockedRequest struct {
	TelegramId int64 `json:"telegram_id"`
	Blocked    bool  `json:"blocked"`
}

type SetBlockedResponse struct {
	User *User `json:"user"`
}

type GetProfileRequest struct {
	TelegramId int64 `json:"telegram_id"`
}

type GetProfileResponse struct {
	User *User `json:"user"`
}
