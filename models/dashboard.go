package models

import "time"

// DashboardStats - сводка для главного экрана.
type DashboardStats struct {
	UsersTotal        int        `json:"users_total"`
	ArchivedUsers     int        `json:"archived_users"`
	SessionsTotal     int        `json:"sessions_total"`
	RoundsTotal       int        `json:"rounds_total"`
	SessionsThisMonth int        `json:"sessions_this_month"`
	LastSessionDate   *time.Time `json:"last_session_date,omitempty"`
	// Сумма сохранённых сводок основного пользователя
	MainUserPayout int `json:"main_user_payout"`
}
