package utils

import (
	"medmacs/models"
	"testing"
)

func TestClassifyAnswer_ThreeWay(t *testing.T) {
	tests := []struct {
		name     string
		selected string
		correct  string
		want     string
	}{
		{"correct match", "Mitochondria", "Mitochondria", models.AnswerCorrect},
		{"wrong answer", "Ribosome", "Mitochondria", models.AnswerIncorrect},
		{"skipped question", "", "Mitochondria", models.AnswerUnattempted},
		{"skipped beats empty-correct equality", "", "", models.AnswerUnattempted},
	}

	for _, tc := range tests {
		got := ClassifyAnswer(tc.selected, tc.correct)
		if got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestStripOptionLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A) Mitochondria", "Mitochondria"},
		{"b) Ribosome", "Ribosome"},
		{"2) Golgi body", "Golgi body"},
		{"10) Glucose", "Glucose"},
		{"iv) Pepsin", "Pepsin"},
		{"Mitochondria", "Mitochondria"},
		{"", ""},
		{") leading paren", ") leading paren"},
		{"A)NoSpace", "NoSpace"},
		{"Water (H2O) is polar", "Water (H2O) is polar"},
		{"NADP) is not a label", "NADP) is not a label"},
	}

	for _, tc := range tests {
		got := StripOptionLabel(tc.in)
		if got != tc.want {
			t.Errorf("StripOptionLabel(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestClassifyAnswerNormalized_RelabeledOptions(t *testing.T) {
	// Generation labeled the option "A)", grading relabeled it "C)".
	got := ClassifyAnswerNormalized("C) Mitochondria", "A) Mitochondria")
	if got != models.AnswerCorrect {
		t.Errorf("Expected relabeled options to still match, got %s", got)
	}

	got = ClassifyAnswerNormalized("", "A) Mitochondria")
	if got != models.AnswerUnattempted {
		t.Errorf("Expected empty selection to stay unattempted, got %s", got)
	}
}

func TestPercentage_RoundHalfUp(t *testing.T) {
	tests := []struct {
		score int
		total int
		want  int
	}{
		{2, 3, 67}, // 66.67 rounds up
		{1, 3, 33}, // 33.33 rounds down
		{1, 2, 50},
		{3, 3, 100},
		{0, 10, 0},
		{0, 0, 0}, // no division by zero
	}

	for _, tc := range tests {
		got := Percentage(tc.score, tc.total)
		if got != tc.want {
			t.Errorf("Percentage(%d, %d): expected %d, got %d", tc.score, tc.total, tc.want, got)
		}
	}
}
