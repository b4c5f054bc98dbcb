package security

import (
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgeci/corekit/logger"
)

// CreateValidationString derives a token from a shared secret. The
// token embeds a random salt, so two tokens for the same secret differ.
func CreateValidationString(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(hash), nil
}

// ValidateString reports whether token was created from secret.
// Malformed tokens validate as false.
func ValidateString(token, secret string) bool {
	hash, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		logger.WithComponent("security").Debug("bad validation string",
			logger.Fields("error", err.Error()))
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(secret)) == nil
}
