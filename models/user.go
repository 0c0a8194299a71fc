package models

import "time"

// User - зарегистрированный игрок. Ровно один пользователь помечен как основной
// (IsMainUser): его нельзя удалить, только переименовать.
type User struct {
	ID         int       `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	IsMainUser bool      `json:"is_main_user" db:"is_main_user"`
	IsArchived bool      `json:"is_archived" db:"is_archived"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
