package scoring

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Dosada05/mahjong-scorebook/models"
)

// CompactRounds drops rounds without any playing score and renumbers the
// remaining ones 1..K in their original order.
func CompactRounds(rounds []models.Round) []models.Round {
	compacted := make([]models.Round, 0, len(rounds))
	for _, r := range rounds {
		if r.IsEmpty() {
			continue
		}
		r.RoundNumber = len(compacted) + 1
		compacted = append(compacted, r)
	}
	return compacted
}

// ValidateSession checks a session before it is saved. Fully empty rounds
// are dropped first, exactly as CompactRounds does on save, so only the
// rounds that would be persisted are validated. It returns the first
// violation found, wrapped around one of the package validation errors.
func ValidateSession(session models.Session) error {
	if !session.Mode.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, session.Mode)
	}
	if !session.BonusRule.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidBonusRule, session.BonusRule)
	}
	if session.Memo != nil && utf8.RuneCountInString(*session.Memo) > models.MaxMemoLength {
		return fmt.Errorf("%w: at most %d characters allowed", ErrMemoTooLong, models.MaxMemoLength)
	}

	rounds := CompactRounds(session.Rounds)
	if len(rounds) == 0 {
		return ErrNoScores
	}

	need := session.Mode.PlayerCount()
	// A user keeps one column for the whole session and a column keeps one user.
	slotOfUser := make(map[int]int)
	userOfSlot := make(map[int]int)
	for _, r := range rounds {
		if len(r.Players) < need {
			return fmt.Errorf("%w: round %d has %d players, %s needs %d", ErrPlayerCountMismatch, r.RoundNumber, len(r.Players), session.Mode, need)
		}

		playing := 0
		for slot, p := range r.Players {
			if strings.TrimSpace(p.PlayerName) == "" {
				return fmt.Errorf("%w: round %d", ErrEmptyPlayerName, r.RoundNumber)
			}
			if !p.BonusMarker.IsValid() {
				return fmt.Errorf("%w: %q", ErrInvalidBonusMarker, p.BonusMarker)
			}
			if p.UserID != nil {
				uid := *p.UserID
				if prev, ok := slotOfUser[uid]; ok && prev != slot {
					return fmt.Errorf("%w: user %d in columns %d and %d", ErrDuplicatePlayer, uid, prev+1, slot+1)
				}
				if prev, ok := userOfSlot[slot]; ok && prev != uid {
					return fmt.Errorf("%w: column %d holds users %d and %d", ErrDuplicatePlayer, slot+1, prev, uid)
				}
				slotOfUser[uid] = slot
				userOfSlot[slot] = uid
			}
			if !p.IsSpectator {
				playing++
			}
		}
		if playing > need {
			return fmt.Errorf("%w: round %d has %d playing, %s allows %d", ErrPlayerCountMismatch, r.RoundNumber, playing, session.Mode, need)
		}

		if sum, complete := ScoreSum(r.Players); complete && sum != 0 {
			return fmt.Errorf("%w: round %d sums to %d", ErrZeroSumViolation, r.RoundNumber, sum)
		}
	}
	return nil
}

// SummarizeSession builds the cached summary of a session for one user.
// The second result is false when the user did not take part.
func SummarizeSession(session models.Session, userID int) (models.SessionSummary, bool) {
	slot := session.SlotOf(userID)
	if slot < 0 {
		return models.SessionSummary{}, false
	}

	summary := models.SessionSummary{
		UserID:     userID,
		RankCounts: make([]int, session.Mode.PlayerCount()),
	}
	rankSum := 0
	for _, r := range session.Rounds {
		rank, ok := CalculateRanks(r.Players)[slot]
		if !ok {
			continue
		}
		summary.RoundCount++
		rankSum += rank
		if rank <= len(summary.RankCounts) {
			summary.RankCounts[rank-1]++
		}
	}
	if summary.RoundCount > 0 {
		summary.AverageRank = float64(rankSum) / float64(summary.RoundCount)
	}

	settings := session.Settings()
	own := CalculatePlayerTotals(slot, session.Rounds, settings)
	summary.ScoreTotal = own.ScoreTotal
	summary.TotalPayout = own.FinalPayout
	summary.TotalChips = own.Chips

	summary.OverallRank = 1
	for i := 0; i < slotCount(session.Rounds); i++ {
		if i == slot || !slotPlayed(i, session.Rounds) {
			continue
		}
		if CalculatePlayerTotals(i, session.Rounds, settings).FinalPayout > own.FinalPayout {
			summary.OverallRank++
		}
	}
	return summary, true
}

func slotPlayed(slot int, rounds []models.Round) bool {
	for _, r := range rounds {
		if slot < len(r.Players) && r.Players[slot].Ranked() {
			return true
		}
	}
	return false
}
