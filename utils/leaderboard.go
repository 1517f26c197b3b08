package utils

import (
	"medmacs/models"
	"sort"
)

// Leaderboard sort orders
const (
	SortByScore    = "score"
	SortByUsername = "username"
)

// PodiumGroup is one rank bucket on the leaderboard podium. Every user tied
// at the same score shares the rank, so a group can hold multiple usernames.
type PodiumGroup struct {
	Rank      int      `json:"rank"`
	Score     int      `json:"score"`
	Usernames []string `json:"usernames"`
}

// BestAttemptPerUser reduces raw attempts to one attempt per distinct user:
// the attempt with the maximum score. Replacement uses strict greater-than,
// so on equal scores the first attempt encountered wins. Encounter order of
// users is preserved in the output.
func BestAttemptPerUser(attempts []models.TestAttempt) []models.TestAttempt {
	best := make(map[uint]int) // userID -> index into result
	result := make([]models.TestAttempt, 0, len(attempts))

	for _, attempt := range attempts {
		idx, seen := best[attempt.UserID]
		if !seen {
			best[attempt.UserID] = len(result)
			result = append(result, attempt)
			continue
		}
		if attempt.Score > result[idx].Score {
			result[idx] = attempt
		}
	}

	return result
}

// SortLeaderboard orders a deduplicated attempt list. Exactly one order is
// active at a time: descending by score (default), or ascending by username
// with case-sensitive comparison.
func SortLeaderboard(entries []models.TestAttempt, order string) {
	if order == SortByUsername {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Username < entries[j].Username
		})
		return
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}

// DenseRanks assigns dense "1224" competition ranks to a score-descending
// list: tied scores share a rank and the next distinct score takes the
// immediately following integer.
func DenseRanks(sorted []models.TestAttempt) []int {
	ranks := make([]int, len(sorted))
	currentRank := 0
	lastScore := 0

	for i, entry := range sorted {
		if i == 0 || entry.Score != lastScore {
			currentRank++
			lastScore = entry.Score
		}
		ranks[i] = currentRank
	}

	return ranks
}

// PodiumTop3 walks a score-descending list and returns the first three rank
// groups. Rank groups past the third distinct score are dropped.
func PodiumTop3(sorted []models.TestAttempt) []PodiumGroup {
	ranks := DenseRanks(sorted)
	groups := []PodiumGroup{}

	for i, entry := range sorted {
		rank := ranks[i]
		if len(groups) > 0 && groups[len(groups)-1].Rank == rank {
			last := &groups[len(groups)-1]
			last.Usernames = append(last.Usernames, entry.Username)
			continue
		}
		groups = append(groups, PodiumGroup{
			Rank:      rank,
			Score:     entry.Score,
			Usernames: []string{entry.Username},
		})
	}

	if len(groups) > 3 {
		groups = groups[:3]
	}
	return groups
}
