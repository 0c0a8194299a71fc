// Package scoring converts raw hanchan scores into ranks, bonus markers,
// payouts and aggregate statistics. Every function is pure: callers pass
// full snapshots and receive fresh results.
package scoring

import (
	"sort"

	"github.com/Dosada05/mahjong-scorebook/models"
)

// Marker tables indexed by rank position (0 = first place).
var (
	fourPlayerStandard = []models.BonusMarker{
		models.MarkerPlus2, models.MarkerPlus1, models.MarkerMinus1, models.MarkerMinus2,
	}
	fourPlayerSecondMinus = []models.BonusMarker{
		models.MarkerPlus3, models.MarkerNone, models.MarkerMinus1, models.MarkerMinus2,
	}
	threePlayerStandard = []models.BonusMarker{
		models.MarkerPlus2, models.MarkerPlus1, models.MarkerMinus3,
	}
	threePlayerSecondMinus = []models.BonusMarker{
		models.MarkerPlus3, models.MarkerMinus1, models.MarkerMinus2,
	}
)

// rankOrder returns the indexes of ranked players (non-spectator, scored)
// ordered from first to last place. Ties on score keep input order unless
// byMarker is set, in which case the higher bonus marker wins first.
func rankOrder(players []models.PlayerResult, byMarker bool) []int {
	order := make([]int, 0, len(players))
	for i, p := range players {
		if p.Ranked() {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := players[order[a]], players[order[b]]
		if *pa.Score != *pb.Score {
			return *pa.Score > *pb.Score
		}
		return byMarker && pa.BonusMarker.Value() > pb.BonusMarker.Value()
	})
	return order
}

// CalculateRanks maps player index to its 1-based rank in the hanchan.
// Spectators and players without a score are absent from the result.
func CalculateRanks(players []models.PlayerResult) map[int]int {
	order := rankOrder(players, true)
	ranks := make(map[int]int, len(order))
	for pos, idx := range order {
		ranks[idx] = pos + 1
	}
	return ranks
}

func markerTable(mode models.GameMode, rule models.BonusRule, secondScore int) []models.BonusMarker {
	secondMinus := rule == models.BonusRuleSecondPlaceMinus && secondScore < 0
	switch mode {
	case models.ModeFourPlayer:
		if secondMinus {
			return fourPlayerSecondMinus
		}
		return fourPlayerStandard
	case models.ModeThreePlayer:
		if secondMinus {
			return threePlayerSecondMinus
		}
		return threePlayerStandard
	}
	return nil
}

// AssignBonusMarkers returns a marker for every input position. Only a
// complete hanchan (exactly mode.PlayerCount() ranked players) receives
// markers; otherwise every position gets MarkerNone. Markers already on the
// rows are ignored: equal scores keep input order.
func AssignBonusMarkers(players []models.PlayerResult, mode models.GameMode, rule models.BonusRule) []models.BonusMarker {
	markers := make([]models.BonusMarker, len(players))
	order := rankOrder(players, false)
	if len(order) == 0 || len(order) != mode.PlayerCount() {
		return markers
	}

	table := markerTable(mode, rule, *players[order[1]].Score)
	for pos, idx := range order {
		markers[idx] = table[pos]
	}
	return markers
}

// ApplyBonusMarkers writes assigned markers into the round, leaving
// manually overridden markers untouched.
func ApplyBonusMarkers(round *models.Round, mode models.GameMode, rule models.BonusRule) {
	markers := AssignBonusMarkers(round.Players, mode, rule)
	for i := range round.Players {
		if round.Players[i].BonusMarkerManual {
			continue
		}
		round.Players[i].BonusMarker = markers[i]
	}
}

// CalculateAutoScore returns the score that makes the hanchan zero-sum when
// exactly one playing participant has no score yet.
func CalculateAutoScore(players []models.PlayerResult) (int, bool) {
	missing := 0
	sum := 0
	for _, p := range players {
		if p.IsSpectator {
			continue
		}
		if p.Score == nil {
			missing++
			continue
		}
		sum += *p.Score
	}
	if missing != 1 {
		return 0, false
	}
	return -sum, true
}

// AutoFillRound fills the single missing score once per round. It reports
// whether a score was written.
func AutoFillRound(round *models.Round) bool {
	if round.AutoCalculated {
		return false
	}
	score, ok := CalculateAutoScore(round.Players)
	if !ok {
		return false
	}
	for i := range round.Players {
		p := &round.Players[i]
		if !p.IsSpectator && p.Score == nil {
			p.Score = &score
			round.AutoCalculated = true
			return true
		}
	}
	return false
}

// ScoreSum returns the sum of filled scores and whether every playing
// participant has a score.
func ScoreSum(players []models.PlayerResult) (sum int, complete bool) {
	complete = true
	playing := 0
	for _, p := range players {
		if p.IsSpectator {
			continue
		}
		playing++
		if p.Score == nil {
			complete = false
			continue
		}
		sum += *p.Score
	}
	return sum, complete && playing > 0
}
