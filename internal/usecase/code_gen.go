package usecase

import (
	"crypto/rand"
	"io"
)

// generateCode creates a secure, random activation code in the canonical
// ALN-XXXX-XXXX shape. The character set avoids ambiguous characters like
// O/0 and I/1 so codes survive being read over the phone.
func generateCode() (string, error) {
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	const codeLength = 8

	buffer := make([]byte, codeLength)
	if _, err := io.ReadFull(rand.Reader, buffer); err != nil {
		return "", err
	}

	for i := 0; i < codeLength; i++ {
		buffer[i] = chars[int(buffer[i])%len(chars)]
	}

	return "ALN-" + string(buffer[0:4]) + "-" + string(buffer[4:8]), nil
}
