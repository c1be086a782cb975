package app

import (
	"context"
	"log/slog"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/identity"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/secondary"
)

// IdentityServiceImpl implements the IdentityService interface.
type IdentityServiceImpl struct {
	state  *LocalState
	src    identity.Source
	logger *slog.Logger
}

// NewIdentityService creates a new IdentityService with injected dependencies.
func NewIdentityService(state *LocalState, src identity.Source, logger *slog.Logger) *IdentityServiceImpl {
	return &IdentityServiceImpl{
		state:  state,
		src:    src,
		logger: logger,
	}
}

// GetOrCreateUserID returns the persisted token, generating one on first use.
// A persisted value that is not a valid token is replaced.
func (s *IdentityServiceImpl) GetOrCreateUserID(ctx context.Context) (string, error) {
	if id := s.state.Snapshot(ctx).UserID; identity.IsValidUserID(id) {
		return id, nil
	}

	var userID string
	s.state.Update(ctx, func(st *secondary.LocalStateRecord) {
		// Re-check under the state lock so concurrent first calls agree on one token.
		if identity.IsValidUserID(st.UserID) {
			userID = st.UserID
			return
		}
		if st.UserID != "" {
			s.logger.Warn("replacing malformed user id", "user_id", st.UserID)
		}
		st.UserID = identity.GenerateUserID(s.src)
		userID = st.UserID
		s.logger.Info("generated user id", "user_id", userID)
	})
	return userID, nil
}

// Ensure IdentityServiceImpl implements the interface
var _ primary.IdentityService = (*IdentityServiceImpl)(nil)
