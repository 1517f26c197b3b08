package utils

import (
	"medmacs/models"
	"testing"
)

func attempt(userID uint, username string, score int) models.TestAttempt {
	return models.TestAttempt{UserID: userID, Username: username, Score: score}
}

func TestBestAttemptPerUser_OneEntryPerUser(t *testing.T) {
	attempts := []models.TestAttempt{
		attempt(1, "ali", 5),
		attempt(2, "sara", 3),
		attempt(1, "ali", 8),
		attempt(3, "omar", 1),
		attempt(2, "sara", 2),
	}

	result := BestAttemptPerUser(attempts)

	if len(result) != 3 {
		t.Fatalf("Expected 3 deduplicated entries, got %d", len(result))
	}
	seen := make(map[uint]bool)
	for _, entry := range result {
		if seen[entry.UserID] {
			t.Errorf("User %d appears more than once in deduplicated list", entry.UserID)
		}
		seen[entry.UserID] = true
	}
}

func TestBestAttemptPerUser_KeepsMaxScore(t *testing.T) {
	attempts := []models.TestAttempt{
		attempt(1, "ali", 5),
		attempt(1, "ali", 9),
		attempt(1, "ali", 7),
	}

	result := BestAttemptPerUser(attempts)

	if len(result) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(result))
	}
	if result[0].Score != 9 {
		t.Errorf("Expected retained score 9, got %d", result[0].Score)
	}
}

func TestBestAttemptPerUser_FirstWinsOnTie(t *testing.T) {
	first := attempt(1, "ali", 9)
	first.ID = 100
	second := attempt(1, "ali", 9)
	second.ID = 200

	result := BestAttemptPerUser([]models.TestAttempt{first, second})

	if len(result) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(result))
	}
	// Strict greater-than replacement: the first attempt encountered stays.
	if result[0].ID != 100 {
		t.Errorf("Expected first attempt (ID 100) to be retained, got ID %d", result[0].ID)
	}
}

func TestBestAttemptPerUser_EmptyInput(t *testing.T) {
	result := BestAttemptPerUser(nil)
	if len(result) != 0 {
		t.Errorf("Expected empty output for empty input, got %d entries", len(result))
	}

	podium := PodiumTop3(result)
	if len(podium) != 0 {
		t.Errorf("Expected empty podium for empty input, got %d groups", len(podium))
	}
}

func TestDenseRanks_TiesShareRankWithoutGaps(t *testing.T) {
	sorted := []models.TestAttempt{
		attempt(1, "a", 95),
		attempt(2, "b", 95),
		attempt(3, "c", 80),
		attempt(4, "d", 80),
		attempt(5, "e", 80),
		attempt(6, "f", 60),
	}

	ranks := DenseRanks(sorted)
	expected := []int{1, 1, 2, 2, 2, 3}

	for i, want := range expected {
		if ranks[i] != want {
			t.Errorf("Position %d: expected rank %d, got %d", i, want, ranks[i])
		}
	}
}

func TestPodiumTop3_DropsGroupsPastThird(t *testing.T) {
	sorted := []models.TestAttempt{
		attempt(1, "a", 95),
		attempt(2, "b", 95),
		attempt(3, "c", 80),
		attempt(4, "d", 80),
		attempt(5, "e", 80),
		attempt(6, "f", 60),
		attempt(7, "g", 40),
	}

	podium := PodiumTop3(sorted)

	if len(podium) != 3 {
		t.Fatalf("Expected 3 podium groups, got %d", len(podium))
	}
	if len(podium[0].Usernames) != 2 {
		t.Errorf("Expected 2 users tied at rank 1, got %d", len(podium[0].Usernames))
	}
	if len(podium[1].Usernames) != 3 {
		t.Errorf("Expected 3 users tied at rank 2, got %d", len(podium[1].Usernames))
	}
	if podium[2].Rank != 3 || podium[2].Score != 60 {
		t.Errorf("Expected rank 3 at score 60, got rank %d score %d", podium[2].Rank, podium[2].Score)
	}
	for _, group := range podium {
		if group.Rank > 3 {
			t.Errorf("Rank group %d leaked into podium output", group.Rank)
		}
	}
}

func TestSortLeaderboard_ScoreDescending(t *testing.T) {
	entries := []models.TestAttempt{
		attempt(1, "a", 40),
		attempt(2, "b", 90),
		attempt(3, "c", 70),
	}

	SortLeaderboard(entries, SortByScore)

	if entries[0].Score != 90 || entries[1].Score != 70 || entries[2].Score != 40 {
		t.Errorf("Scores not in descending order: %d %d %d", entries[0].Score, entries[1].Score, entries[2].Score)
	}
}

func TestSortLeaderboard_UsernameCaseSensitive(t *testing.T) {
	entries := []models.TestAttempt{
		attempt(1, "bilal", 10),
		attempt(2, "Zara", 20),
		attempt(3, "ahmed", 30),
	}

	SortLeaderboard(entries, SortByUsername)

	// Case-sensitive byte order puts uppercase before lowercase.
	if entries[0].Username != "Zara" || entries[1].Username != "ahmed" || entries[2].Username != "bilal" {
		t.Errorf("Unexpected username order: %s %s %s", entries[0].Username, entries[1].Username, entries[2].Username)
	}
}
