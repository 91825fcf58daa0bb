package history

import (
	"math"
	"sort"
)

// Trend classification thresholds on the rank-over-time regression slope.
// Rank 1 is best, so a negative slope means the player is climbing.
const (
	improvingSlope = -0.1
	decliningSlope = 0.1
)

// difficultyNeutral is reported when scores carry no usable signal.
const difficultyNeutral = 5.0

// difficultyScale maps the coefficient of variation onto the 0-10 band; a
// CV of 2 or more saturates the scale.
const difficultyScale = 5.0

// PlayerStats derives the per-player report from completed tournaments.
func (m *manager) PlayerStats(playerID string) *PlayerStats {
	completed, err := m.completed()
	if err != nil {
		return nil
	}
	// Chronological by completion so the trend regression runs over time.
	completed = Sort(completed, SortByEndDate, false)

	stats := &PlayerStats{
		PlayerID: playerID,
		PerGame:  make(map[string]GameBreakdown),
		Trend:    TrendInsufficient,
	}

	var rankSum, scoreSum float64
	var ranks []float64
	for _, t := range completed {
		for _, p := range t.Participants {
			if p.ID != playerID {
				continue
			}
			stats.Tournaments++
			stats.PlayerName = p.Name
			if p.Rank == 1 {
				stats.Wins++
			}
			if p.Rank >= 1 && p.Rank <= 3 {
				stats.Podiums++
			}
			rankSum += float64(p.Rank)
			scoreSum += p.TotalScore
			ranks = append(ranks, float64(p.Rank))
			if stats.BestRank == 0 || p.Rank < stats.BestRank {
				stats.BestRank = p.Rank
			}
			if p.Rank > stats.WorstRank {
				stats.WorstRank = p.Rank
			}
			for gameID, raw := range p.RawScores {
				b := stats.PerGame[gameID]
				b.Plays++
				if raw > b.BestScore {
					b.BestScore = raw
				}
				// AvgScore holds the running sum until the final pass.
				b.AvgScore += raw
				stats.PerGame[gameID] = b
			}
			break
		}
	}

	if stats.Tournaments == 0 {
		stats.InsufficientData = true
		return stats
	}

	stats.AverageRank = rankSum / float64(stats.Tournaments)
	stats.AverageScore = scoreSum / float64(stats.Tournaments)
	for gameID, b := range stats.PerGame {
		b.AvgScore /= float64(b.Plays)
		stats.PerGame[gameID] = b
	}

	if stats.Tournaments < 2 {
		// A single data point is not a trend.
		stats.InsufficientData = true
		return stats
	}

	slope := regressionSlope(ranks)
	stats.TrendSlope = slope
	switch {
	case slope < improvingSlope:
		stats.Trend = TrendImproving
	case slope > decliningSlope:
		stats.Trend = TrendDeclining
	default:
		stats.Trend = TrendStable
	}
	return stats
}

// GameAnalytics derives the per-game report from completed tournaments.
func (m *manager) GameAnalytics(gameID string) *GameAnalytics {
	completed, err := m.completed()
	if err != nil {
		return nil
	}

	out := &GameAnalytics{GameID: gameID, Difficulty: difficultyNeutral}
	var scores []float64
	winners := make(map[string]bool)
	for _, t := range completed {
		if !t.HasGame(gameID) {
			continue
		}
		out.TournamentCount++
		for _, p := range t.Participants {
			if raw, ok := p.RawScores[gameID]; ok {
				scores = append(scores, raw)
			}
		}
		if w, ok := t.Winner(); ok {
			winners[w.ID] = true
		}
	}

	out.ScoreCount = len(scores)
	if len(scores) > 0 {
		out.AverageScore = mean(scores)
		out.MedianScore = median(scores)
		out.Difficulty = difficulty(scores)
	}
	if out.TournamentCount > 0 {
		out.CompetitiveBalance = float64(len(winners)) / float64(out.TournamentCount)
	}
	return out
}

// ComparativeAnalytics builds the cross-game report over every game seen in
// completed tournaments.
func (m *manager) ComparativeAnalytics() *CrossGameReport {
	completed, err := m.completed()
	if err != nil {
		return nil
	}

	gameIDs := make(map[string]bool)
	for _, t := range completed {
		for _, g := range t.Games {
			gameIDs[g] = true
		}
	}

	report := &CrossGameReport{TotalTournaments: len(completed)}
	for gameID := range gameIDs {
		if ga := m.GameAnalytics(gameID); ga != nil {
			report.Games = append(report.Games, *ga)
		}
	}
	sort.Slice(report.Games, func(i, j int) bool { return report.Games[i].GameID < report.Games[j].GameID })

	for _, ga := range report.Games {
		if report.MostDifficult == "" {
			report.MostDifficult = ga.GameID
			report.LeastDifficult = ga.GameID
			report.MostBalanced = ga.GameID
			continue
		}
		if ga.Difficulty > findGame(report.Games, report.MostDifficult).Difficulty {
			report.MostDifficult = ga.GameID
		}
		if ga.Difficulty < findGame(report.Games, report.LeastDifficult).Difficulty {
			report.LeastDifficult = ga.GameID
		}
		if ga.CompetitiveBalance > findGame(report.Games, report.MostBalanced).CompetitiveBalance {
			report.MostBalanced = ga.GameID
		}
	}
	return report
}

// regressionSlope fits rank = a + b*i over completion order and returns b.
func regressionSlope(ranks []float64) float64 {
	n := float64(len(ranks))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ranks {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// difficulty maps score spread onto 0-10 via the coefficient of variation.
// A zero mean carries no signal and reports the neutral midpoint.
func difficulty(scores []float64) float64 {
	mu := mean(scores)
	if mu == 0 {
		return difficultyNeutral
	}
	cv := math.Sqrt(variance(scores, mu)) / math.Abs(mu)
	scaled := cv * difficultyScale
	if scaled > 10 {
		return 10
	}
	return scaled
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance(values []float64, mu float64) float64 {
	var sum float64
	for _, v := range values {
		d := v - mu
		sum += d * d
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func findGame(list []GameAnalytics, id string) GameAnalytics {
	for _, ga := range list {
		if ga.GameID == id {
			return ga
		}
	}
	return GameAnalytics{}
}
