package utils

import (
	"regexp"
	"testing"
)

func TestGenerateOTP_SixDigits(t *testing.T) {
	re := regexp.MustCompile(`^[0-9]{6}$`)
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		otp := GenerateOTP()
		if !re.MatchString(otp) {
			t.Fatalf("Expected 6 digits, got %q", otp)
		}
		seen[otp] = true
	}
	// Back-to-back calls must not collapse onto one value.
	if len(seen) < 2 {
		t.Errorf("Expected varied OTPs across calls, got %d distinct value(s)", len(seen))
	}
}

func TestGenerateRedeemCode_Format(t *testing.T) {
	re := regexp.MustCompile(`^MED-[A-Z0-9]{4}-[A-Z0-9]{4}$`)
	code := GenerateRedeemCode()
	if !re.MatchString(code) {
		t.Errorf("Expected MED-XXXX-XXXX format, got %q", code)
	}
}
