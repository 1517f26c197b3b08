package utils

import (
	"crypto/rand"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
)

// GenerateOTP generates a 6-digit OTP from the system's secure random source
func GenerateOTP() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		log.Printf("Error reading random bytes: %v", err)
	}
	for i := range buf {
		buf[i] = '0' + buf[i]%10
	}
	return string(buf)
}

// GenerateRoomCode produces a short shareable battle room code
func GenerateRoomCode() string {
	id := uuid.New().String()
	return strings.ToUpper(strings.ReplaceAll(id, "-", "")[:6])
}

// GenerateInviteCode produces a classroom invite code
func GenerateInviteCode() string {
	id := uuid.New().String()
	return strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}

// GenerateRedeemCode produces a redeem code like MED-XXXX-XXXX
func GenerateRedeemCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("MED-%s-%s", raw[:4], raw[4:8])
}
