package models

import "time"

const MaxMemoLength = 200

// PlayerResult - результат одного игрока в одном ханчане.
// Chips и ParlorFee относятся ко всей сессии; для удобства ввода они хранятся
// в строке игрока и при расчётах учитываются ровно один раз.
type PlayerResult struct {
	ID                int         `json:"id,omitempty" db:"id"`
	PlayerName        string      `json:"player_name" db:"player_name"`
	UserID            *int        `json:"user_id,omitempty" db:"user_id"`
	Score             *int        `json:"score,omitempty" db:"score"`
	BonusMarker       BonusMarker `json:"bonus_marker" db:"bonus_marker"`
	Chips             int         `json:"chips" db:"chips"`
	ParlorFee         int         `json:"parlor_fee" db:"parlor_fee"`
	IsSpectator       bool        `json:"is_spectator" db:"is_spectator"`
	BonusMarkerManual bool        `json:"bonus_marker_manual" db:"bonus_marker_manual"`
}

// Ranked сообщает, участвует ли запись в ранжировании ханчана.
func (p PlayerResult) Ranked() bool {
	return !p.IsSpectator && p.Score != nil
}

// Round - один ханчан внутри сессии.
type Round struct {
	ID             int            `json:"id,omitempty" db:"id"`
	SessionID      int            `json:"session_id,omitempty" db:"session_id"`
	RoundNumber    int            `json:"round_number" db:"round_number"`
	Players        []PlayerResult `json:"players" db:"-"`
	AutoCalculated bool           `json:"auto_calculated" db:"auto_calculated"`
}

// IsEmpty - в ханчане нет ни одного заполненного счёта у играющих.
func (r Round) IsEmpty() bool {
	for _, p := range r.Players {
		if p.Ranked() {
			return false
		}
	}
	return true
}

// Session - игровая сессия. Date редактируется пользователем,
// хронологический порядок задаёт CreatedAt.
type Session struct {
	ID         int             `json:"id" db:"id"`
	Date       time.Time       `json:"date" db:"date"`
	Mode       GameMode        `json:"mode" db:"mode"`
	PointRate  int             `json:"point_rate" db:"point_rate"`
	BonusValue int             `json:"bonus_value" db:"bonus_value"`
	ChipRate   int             `json:"chip_rate" db:"chip_rate"`
	BonusRule  BonusRule       `json:"bonus_rule" db:"bonus_rule"`
	Memo       *string         `json:"memo,omitempty" db:"memo"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
	Summary    *SessionSummary `json:"summary,omitempty" db:"summary"`

	Rounds []Round `json:"rounds" db:"-"`
}

// Settings возвращает параметры расчёта, зафиксированные в сессии.
func (s Session) Settings() Settings {
	return Settings{
		PointRate:  s.PointRate,
		BonusValue: s.BonusValue,
		ChipRate:   s.ChipRate,
		BonusRule:  s.BonusRule,
	}
}

// SlotOf возвращает индекс колонки игрока с данным userID, либо -1.
func (s Session) SlotOf(userID int) int {
	for _, r := range s.Rounds {
		for i, p := range r.Players {
			if p.UserID != nil && *p.UserID == userID {
				return i
			}
		}
	}
	return -1
}

// SessionSummary - кэшируемая сводка сессии для пользователя, от лица
// которого она сохранена. Пересчитывается целиком при каждом сохранении.
type SessionSummary struct {
	UserID      int     `json:"user_id"`
	RoundCount  int     `json:"round_count"`
	RankCounts  []int   `json:"rank_counts"`
	AverageRank float64 `json:"average_rank"`
	ScoreTotal  int     `json:"score_total"`
	TotalPayout int     `json:"total_payout"`
	TotalChips  int     `json:"total_chips"`
	OverallRank int     `json:"overall_rank"`
}

// PlayerTotals - итоги одной колонки игрока за сессию.
type PlayerTotals struct {
	ScoreTotal  int `json:"score_total"`
	BonusTotal  int `json:"bonus_total"`
	Subtotal    int `json:"subtotal"`
	Chips       int `json:"chips"`
	Payout      int `json:"payout"`
	ParlorFee   int `json:"parlor_fee"`
	FinalPayout int `json:"final_payout"`
}
