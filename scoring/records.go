package scoring

import (
	"sort"

	"github.com/Dosada05/mahjong-scorebook/models"
)

// Chronological returns a copy of the sessions ordered by creation time.
// Sessions created at the same instant keep their input order.
func Chronological(sessions []models.Session) []models.Session {
	sorted := make([]models.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

func orderedRounds(rounds []models.Round) []models.Round {
	sorted := make([]models.Round, len(rounds))
	copy(sorted, rounds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RoundNumber < sorted[j].RoundNumber
	})
	return sorted
}

func trackMax(rec **models.ValueRecord, value int, s models.Session) {
	if *rec == nil || value > (*rec).Value {
		*rec = &models.ValueRecord{Value: value, Date: s.Date, SessionID: s.ID}
	}
}

func trackMin(rec **models.ValueRecord, value int, s models.Session) {
	if *rec == nil || value < (*rec).Value {
		*rec = &models.ValueRecord{Value: value, Date: s.Date, SessionID: s.ID}
	}
}

// streak counts consecutive hits and remembers the longest run.
type streak struct {
	current int
	best    int
}

func (s *streak) next(hit bool) {
	if !hit {
		s.current = 0
		return
	}
	s.current++
	if s.current > s.best {
		s.best = s.current
	}
}

func (s *streak) active() *int {
	if s.current == 0 {
		return nil
	}
	n := s.current
	return &n
}

// CalculateRecordStatistics computes best and worst values and top/last
// streaks over the user's hanchans in creation order. Last place is the
// worst rank among the players ranked in that hanchan, so three- and
// four-player lasts both count when modes are mixed. Current streaks are
// set only when the most recent hanchan continues them.
func CalculateRecordStatistics(sessions []models.Session, userID int) models.RecordStatistics {
	var rec models.RecordStatistics
	var top, last streak

	for _, s := range Chronological(sessions) {
		for _, r := range orderedRounds(s.Rounds) {
			rank, players, ok := roundPlacing(r, userID)
			if !ok {
				continue
			}
			score := *r.Players[userEntry(r.Players, userID)].Score
			trackMax(&rec.MaxRoundScore, score, s)
			trackMin(&rec.MinRoundScore, score, s)
			top.next(rank == 1)
			last.next(rank == players)
		}

		if revenue, chips, ok := sessionRevenue(s, userID); ok {
			trackMax(&rec.MaxSessionRevenue, revenue, s)
			trackMin(&rec.MinSessionRevenue, revenue, s)
			trackMax(&rec.MaxSessionChips, chips, s)
			trackMin(&rec.MinSessionChips, chips, s)
		}
	}

	rec.MaxConsecutiveTop = top.best
	rec.MaxConsecutiveLast = last.best
	rec.CurrentTopStreak = top.active()
	rec.CurrentLastStreak = last.active()
	return rec
}
