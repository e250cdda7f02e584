package account

import "context"

// Service contains the business logic for account operations
type Service struct {
	repo Repository
}

// NewService creates a new account service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new account scoped to the owner. The starting balance
// doubles as the initial balance recorded for later consistency checks.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}

// Get retrieves an account by ID, scoped to the owner.
func (s *Service) Get(ctx context.Context, id, userID int64) (*Account, error) {
	return s.repo.GetForUser(ctx, id, userID)
}

// List retrieves all accounts owned by the user.
func (s *Service) List(ctx context.Context, userID int64) ([]*Account, error) {
	return s.repo.ListByUser(ctx, userID)
}
