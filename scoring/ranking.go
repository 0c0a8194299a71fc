package scoring

import (
	"sort"

	"github.com/Dosada05/mahjong-scorebook/models"
)

// MinRankingUsers is the smallest number of users a ranking is built for.
const MinRankingUsers = 2

// RankingMetrics lists the metrics available for a mode filter, in display
// order. Rank based metrics are absent for ModeFilterAll and the rentai
// rate exists only for four-player games.
func RankingMetrics(mode models.ModeFilter) []models.RankingMetric {
	metrics := make([]models.RankingMetric, 0, 10)
	if mode != models.ModeFilterAll {
		metrics = append(metrics, models.MetricAverageRank, models.MetricTopRate)
		if mode == models.ModeFilterFourPlayer {
			metrics = append(metrics, models.MetricRentaiRate)
		}
		metrics = append(metrics, models.MetricLastAvoidRate)
	}
	return append(metrics,
		models.MetricTotalRevenue,
		models.MetricAverageRevenue,
		models.MetricMaxRoundScore,
		models.MetricMaxSessionRevenue,
		models.MetricMaxSessionChips,
		models.MetricMaxConsecutiveTop,
	)
}

// userSample is everything the ranking needs about a single user.
type userSample struct {
	user      models.User
	sessions  int
	lowSample bool
	rank      *models.RankStatistics
	all       models.AllStatistics
	records   models.RecordStatistics
}

func sampleUser(user models.User, chronological []models.Session, mode models.ModeFilter, filter models.SampleFilter) (userSample, bool) {
	played := make([]models.Session, 0)
	for _, s := range chronological {
		if _, _, ok := sessionRevenue(s, user.ID); ok {
			played = append(played, s)
		}
	}
	if len(played) == 0 {
		return userSample{}, false
	}

	us := userSample{user: user}
	if n := filter.Size(); n > 0 {
		if len(played) > n {
			played = played[len(played)-n:]
		}
		us.lowSample = len(played) < n
	}
	us.sessions = len(played)
	us.rank = CalculateRankStatistics(RoundsOf(played), user.ID, mode)
	us.all = CalculateAllStatistics(played, user.ID, us.rank)
	us.records = CalculateRecordStatistics(played, user.ID)
	return us, true
}

// metricValue extracts a metric; ok is false when the user has no value.
func metricValue(us userSample, metric models.RankingMetric) (float64, bool) {
	rs := us.rank
	hasGames := rs != nil && rs.TotalGames > 0
	switch metric {
	case models.MetricAverageRank:
		return rsValue(hasGames, func() float64 { return rs.AverageRank })
	case models.MetricTopRate:
		return rsValue(hasGames, func() float64 { return rs.RankRates[0] })
	case models.MetricRentaiRate:
		return rsValue(hasGames && len(rs.RankRates) == 4, func() float64 { return rs.RankRates[0] + rs.RankRates[1] })
	case models.MetricLastAvoidRate:
		return rsValue(hasGames, func() float64 { return 100 - rs.RankRates[len(rs.RankRates)-1] })
	case models.MetricTotalRevenue:
		return float64(us.all.Revenue.Total), true
	case models.MetricAverageRevenue:
		return us.all.Basic.AverageRevenue, true
	case models.MetricMaxRoundScore:
		return recordValue(us.records.MaxRoundScore)
	case models.MetricMaxSessionRevenue:
		return recordValue(us.records.MaxSessionRevenue)
	case models.MetricMaxSessionChips:
		return recordValue(us.records.MaxSessionChips)
	case models.MetricMaxConsecutiveTop:
		return float64(us.records.MaxConsecutiveTop), true
	}
	return 0, false
}

func rsValue(ok bool, get func() float64) (float64, bool) {
	if !ok {
		return 0, false
	}
	return get(), true
}

func recordValue(r *models.ValueRecord) (float64, bool) {
	if r == nil {
		return 0, false
	}
	return float64(r.Value), true
}

// CalculateUserRanking ranks users on every metric available for the mode.
// Entries are sorted best first (lowest first for average rank) and share a
// dense rank on equal values. Users without qualifying sessions are left out
// of the metrics. With fewer than MinRankingUsers users the result only
// carries InsufficientUsers.
func CalculateUserRanking(users []models.User, sessions []models.Session, mode models.ModeFilter, filter models.SampleFilter) models.UserRanking {
	if len(users) < MinRankingUsers {
		return models.UserRanking{InsufficientUsers: true, Metrics: []models.MetricRanking{}}
	}

	chronological := Chronological(sessions)
	samples := make([]userSample, 0, len(users))
	for _, u := range users {
		if us, ok := sampleUser(u, chronological, mode, filter); ok {
			samples = append(samples, us)
		}
	}

	metrics := RankingMetrics(mode)
	ranking := models.UserRanking{Metrics: make([]models.MetricRanking, 0, len(metrics))}
	for _, metric := range metrics {
		entries := make([]models.RankingEntry, 0, len(samples))
		for _, us := range samples {
			v, ok := metricValue(us, metric)
			if !ok {
				continue
			}
			entries = append(entries, models.RankingEntry{
				UserID:       us.user.ID,
				UserName:     us.user.Name,
				Value:        v,
				SessionCount: us.sessions,
				LowSample:    us.lowSample,
			})
		}
		ascending := metric == models.MetricAverageRank
		sort.SliceStable(entries, func(i, j int) bool {
			if ascending {
				return entries[i].Value < entries[j].Value
			}
			return entries[i].Value > entries[j].Value
		})
		for i := range entries {
			switch {
			case i == 0:
				entries[i].Rank = 1
			case entries[i].Value == entries[i-1].Value:
				entries[i].Rank = entries[i-1].Rank
			default:
				entries[i].Rank = entries[i-1].Rank + 1
			}
		}
		ranking.Metrics = append(ranking.Metrics, models.MetricRanking{Metric: metric, Entries: entries})
	}
	return ranking
}
