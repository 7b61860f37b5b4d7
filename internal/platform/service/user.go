package service

import (
	"context"
	"strings"

	"github.com/studyhall/studyhall/internal/platform/domain"
	"github.com/studyhall/studyhall/internal/platform/store"
)

// UserService covers profile reads and updates.
type UserService struct {
	Store store.Store
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// UpdateProfile changes the user's name. Empty fields keep their current
// value.
func (s *UserService) UpdateProfile(
	ctx context.Context,
	userID, firstName, lastName string,
) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		firstName = u.FirstName
	}
	if lastName == "" {
		lastName = u.LastName
	}

	if err := s.Store.Users().UpdateProfile(ctx, userID, firstName, lastName); err != nil {
		return domain.User{}, err
	}

	u.FirstName = firstName
	u.LastName = lastName
	return u, nil
}
