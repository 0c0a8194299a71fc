package scoring

import "github.com/Dosada05/mahjong-scorebook/models"

// userEntry returns the index of the user's ranked entry in a round, or -1.
func userEntry(players []models.PlayerResult, userID int) int {
	for i, p := range players {
		if p.UserID != nil && *p.UserID == userID && p.Ranked() {
			return i
		}
	}
	return -1
}

// roundPlacing returns the user's rank and the number of ranked players in
// the round. ok is false when the user did not play the round.
func roundPlacing(r models.Round, userID int) (rank, players int, ok bool) {
	idx := userEntry(r.Players, userID)
	if idx < 0 {
		return 0, 0, false
	}
	ranks := CalculateRanks(r.Players)
	return ranks[idx], len(ranks), true
}

// CalculateRankStatistics buckets the user's finishing positions. It returns
// nil for ModeFilterAll, where three- and four-player ranks cannot be mixed.
// Zero games is a valid result with zero rates and zero average rank.
func CalculateRankStatistics(rounds []models.Round, userID int, mode models.ModeFilter) *models.RankStatistics {
	n := models.GameMode(mode).PlayerCount()
	if n == 0 {
		return nil
	}

	stats := &models.RankStatistics{
		RankCounts: make([]int, n),
		RankRates:  make([]float64, n),
	}
	rankSum := 0
	for _, r := range rounds {
		rank, _, ok := roundPlacing(r, userID)
		if !ok || rank > n {
			continue
		}
		stats.TotalGames++
		stats.RankCounts[rank-1]++
		rankSum += rank
	}
	if stats.TotalGames == 0 {
		return stats
	}

	for i, c := range stats.RankCounts {
		stats.RankRates[i] = float64(c) / float64(stats.TotalGames) * 100
	}
	stats.AverageRank = float64(rankSum) / float64(stats.TotalGames)
	return stats
}

// CalculateAllStatistics accumulates revenue, point, chip and basic
// statistics in a single pass over the sessions.
//
// Revenue is summed per session: every hanchan contributes its payout and
// the session's chips and parlor fee are applied once. Points are summed per
// hanchan, chips per session.
func CalculateAllStatistics(sessions []models.Session, userID int, rankStats *models.RankStatistics) models.AllStatistics {
	var all models.AllStatistics
	for _, s := range sessions {
		slot := s.SlotOf(userID)
		if slot < 0 {
			continue
		}
		settings := s.Settings()

		played := 0
		revenue := 0
		for _, r := range s.Rounds {
			idx := userEntry(r.Players, userID)
			if idx < 0 {
				continue
			}
			p := r.Players[idx]
			played++
			all.Point.Add(*p.Score)
			revenue += roundRevenue(p, settings)
		}
		if played == 0 {
			continue
		}

		totals := CalculatePlayerTotals(slot, s.Rounds, settings)
		revenue += totals.Chips*settings.ChipRate - totals.ParlorFee

		all.Revenue.Add(revenue)
		all.Chip.Add(totals.Chips)
		all.Basic.TotalRounds += played
		all.Basic.TotalSessions++
	}

	if rankStats != nil {
		all.Basic.AverageRank = rankStats.AverageRank
	}
	if all.Basic.TotalRounds > 0 {
		all.Basic.AverageScore = float64(all.Point.Total) / float64(all.Basic.TotalRounds)
	}
	if all.Basic.TotalSessions > 0 {
		all.Basic.AverageRevenue = float64(all.Revenue.Total) / float64(all.Basic.TotalSessions)
		all.Basic.AverageChips = float64(all.Chip.Total) / float64(all.Basic.TotalSessions)
	}
	return all
}

// sessionRevenue is the user's final payout for a session and whether the
// user played in it.
func sessionRevenue(s models.Session, userID int) (revenue, chips int, ok bool) {
	slot := s.SlotOf(userID)
	if slot < 0 {
		return 0, 0, false
	}
	played := false
	for _, r := range s.Rounds {
		if userEntry(r.Players, userID) >= 0 {
			played = true
			break
		}
	}
	if !played {
		return 0, 0, false
	}
	totals := CalculatePlayerTotals(slot, s.Rounds, s.Settings())
	return totals.FinalPayout, totals.Chips, true
}
