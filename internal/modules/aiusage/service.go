package aiusage

import "context"

// Service orchestrates LLM fallback quota logic.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// UseToken deducts one fallback classification from the session's daily allowance.
// If the session row does not exist yet it is initialised and the token is immediately consumed.
// Returns ErrInsufficientTokens when the quota for the current day is exhausted.
func (s *Service) UseToken(ctx context.Context, sessionID string) error {
	err := s.store.UseToken(ctx, sessionID)
	if err != ErrInsufficientTokens {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureSession(ctx, sessionID); initErr != nil {
		return initErr
	}
	return s.store.UseToken(ctx, sessionID)
}
