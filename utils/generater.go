package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

func GenerateOTP() string {
	// Generate a 4-digit OTP
	var number [1]byte
	rand.Read(number[:])
	return fmt.Sprintf("%04d", int(number[0])%10000)
}

func GenerateUUID() string {
	return uuid.NewString()
}
