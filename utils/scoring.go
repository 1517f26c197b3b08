package utils

import (
	"medmacs/models"
	"strings"
)

// ClassifyAnswer does the three-way split for a single question: correct,
// incorrect, or unattempted. An empty selected answer is always unattempted,
// even when the stored correct answer happens to be empty too.
func ClassifyAnswer(selected, correct string) string {
	if selected == "" {
		return models.AnswerUnattempted
	}
	if selected == correct {
		return models.AnswerCorrect
	}
	return models.AnswerIncorrect
}

// StripOptionLabel removes a leading option-label prefix of the form
// "<label>) " (e.g. "A) Mitochondria", "10) Glucose"). AI-generated tests
// re-label options between generation and grading, so both sides must be
// stripped before comparing or matching answers fails spuriously. Labels are
// short alphanumeric runs; a ')' deeper into the text is answer content.
func StripOptionLabel(option string) string {
	const maxLabelLen = 3
	for i := 1; i <= maxLabelLen && i < len(option); i++ {
		if option[i] != ')' {
			continue
		}
		for j := 0; j < i; j++ {
			if !isLabelChar(option[j]) {
				return option
			}
		}
		return strings.TrimLeft(option[i+1:], " ")
	}
	return option
}

func isLabelChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// ClassifyAnswerNormalized classifies after stripping option labels from both
// sides. Used for AI-generated tests only; the unattempted check runs on the
// raw selected answer before any normalization.
func ClassifyAnswerNormalized(selected, correct string) string {
	if selected == "" {
		return models.AnswerUnattempted
	}
	return ClassifyAnswer(StripOptionLabel(selected), StripOptionLabel(correct))
}

// Percentage computes round-half-up(score/total*100). Defined as 0 when
// total is 0.
func Percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(score)/float64(total)*100.0 + 0.5)
}
