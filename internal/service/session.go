package service

import (
	"strings"

	apperrors "github.com/vrikshavalli/storefront/pkg/errors"
)

// MaxSessionIDLength bounds guest session identifiers.
const MaxSessionIDLength = 128

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return apperrors.InvalidInput("session id is required")
	}
	if len(sessionID) > MaxSessionIDLength {
		return apperrors.InvalidInput("session id is too long")
	}
	return nil
}
