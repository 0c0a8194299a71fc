package models

import "time"

// Period - временной фильтр статистики: this-month, this-year, year-YYYY, all-time.
type Period string

const (
	PeriodThisMonth Period = "this-month"
	PeriodThisYear  Period = "this-year"
	PeriodAllTime   Period = "all-time"
)

type RankStatistics struct {
	TotalGames  int       `json:"total_games"`
	RankCounts  []int     `json:"rank_counts"`
	RankRates   []float64 `json:"rank_rates"`
	AverageRank float64   `json:"average_rank"`
}

// PlusMinus - сумма положительных и отрицательных значений отдельно и итог.
type PlusMinus struct {
	Plus  int `json:"plus"`
	Minus int `json:"minus"`
	Total int `json:"total"`
}

func (pm *PlusMinus) Add(v int) {
	if v > 0 {
		pm.Plus += v
	} else {
		pm.Minus += v
	}
	pm.Total += v
}

type BasicStatistics struct {
	TotalRounds    int     `json:"total_rounds"`
	TotalSessions  int     `json:"total_sessions"`
	AverageRank    float64 `json:"average_rank"`
	AverageScore   float64 `json:"average_score"`
	AverageRevenue float64 `json:"average_revenue"`
	AverageChips   float64 `json:"average_chips"`
}

type AllStatistics struct {
	Revenue PlusMinus       `json:"revenue"`
	Point   PlusMinus       `json:"point"`
	Chip    PlusMinus       `json:"chip"`
	Basic   BasicStatistics `json:"basic"`
}

// ValueRecord - рекордное значение и дата сессии, в которой оно получено.
type ValueRecord struct {
	Value     int       `json:"value"`
	Date      time.Time `json:"date"`
	SessionID int       `json:"session_id"`
}

type RecordStatistics struct {
	MaxRoundScore      *ValueRecord `json:"max_round_score,omitempty"`
	MinRoundScore      *ValueRecord `json:"min_round_score,omitempty"`
	MaxSessionRevenue  *ValueRecord `json:"max_session_revenue,omitempty"`
	MinSessionRevenue  *ValueRecord `json:"min_session_revenue,omitempty"`
	MaxSessionChips    *ValueRecord `json:"max_session_chips,omitempty"`
	MinSessionChips    *ValueRecord `json:"min_session_chips,omitempty"`
	MaxConsecutiveTop  int          `json:"max_consecutive_top"`
	MaxConsecutiveLast int          `json:"max_consecutive_last"`
	CurrentTopStreak   *int         `json:"current_top_streak,omitempty"`
	CurrentLastStreak  *int         `json:"current_last_streak,omitempty"`
}

// PlayerStatistics - полный набор статистики игрока за выбранный период.
type PlayerStatistics struct {
	UserID  int              `json:"user_id"`
	Period  Period           `json:"period"`
	Mode    ModeFilter       `json:"mode"`
	Rank    *RankStatistics  `json:"rank,omitempty"`
	All     AllStatistics    `json:"all"`
	Records RecordStatistics `json:"records"`
}

type RankingMetric string

const (
	MetricAverageRank       RankingMetric = "average-rank"
	MetricTopRate           RankingMetric = "top-rate"
	MetricRentaiRate        RankingMetric = "rentai-rate"
	MetricLastAvoidRate     RankingMetric = "last-avoid-rate"
	MetricTotalRevenue      RankingMetric = "total-revenue"
	MetricAverageRevenue    RankingMetric = "average-revenue"
	MetricMaxRoundScore     RankingMetric = "max-round-score"
	MetricMaxSessionRevenue RankingMetric = "max-session-revenue"
	MetricMaxSessionChips   RankingMetric = "max-session-chips"
	MetricMaxConsecutiveTop RankingMetric = "max-consecutive-top"
)

// SampleFilter ограничивает выборку последними N сессиями каждого игрока.
type SampleFilter string

const (
	SampleLast5  SampleFilter = "last-5"
	SampleLast10 SampleFilter = "last-10"
	SampleAll    SampleFilter = "all"
)

// Size возвращает N для фильтра либо 0 для SampleAll.
func (f SampleFilter) Size() int {
	switch f {
	case SampleLast5:
		return 5
	case SampleLast10:
		return 10
	default:
		return 0
	}
}

func (f SampleFilter) IsValid() bool {
	return f == SampleLast5 || f == SampleLast10 || f == SampleAll
}

type RankingEntry struct {
	UserID       int     `json:"user_id"`
	UserName     string  `json:"user_name"`
	Value        float64 `json:"value"`
	Rank         int     `json:"rank"`
	SessionCount int     `json:"session_count"`
	LowSample    bool    `json:"low_sample"`
}

type MetricRanking struct {
	Metric  RankingMetric  `json:"metric"`
	Entries []RankingEntry `json:"entries"`
}

type UserRanking struct {
	InsufficientUsers bool            `json:"insufficient_users"`
	Metrics           []MetricRanking `json:"metrics"`
}
