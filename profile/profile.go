// Package profile fetches and updates the authenticated user's profile
// through the remote API.
package profile

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/accountportal/go-account-portal/apiclient"
)

// UserProfile is the remote API's profile record.
type UserProfile struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	IsVerified bool   `json:"isVerified"`
	IsActive   bool   `json:"isActive"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// payload wraps the profile in the API's response shape.
type payload struct {
	User UserProfile `json:"user"`
}

// UpdateRequest is the body of OpUpdateProfile. Empty fields are omitted.
type UpdateRequest struct {
	Username string `json:"username,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Service reads and writes profiles. Profiles are fetched per page load,
// never cached beyond collapsing duplicate in-flight fetches for the same
// bearer token.
type Service struct {
	client *apiclient.Client
	group  singleflight.Group
}

// NewService creates a profile service on top of the dispatcher.
func NewService(client *apiclient.Client) *Service {
	return &Service{client: client}
}

// Get fetches the profile for the bearer token. Concurrent calls with the
// same token share one request.
func (s *Service) Get(ctx context.Context, accessToken string) (UserProfile, error) {
	v, err, _ := s.group.Do(accessToken, func() (any, error) {
		resp, err := apiclient.Call[payload](ctx, s.client, apiclient.OpGetProfile, apiclient.Options{
			Headers: apiclient.BearerHeader(accessToken),
		})
		if err != nil {
			return UserProfile{}, fmt.Errorf("[profile Get] %w", err)
		}
		return resp.User, nil
	})
	if err != nil {
		return UserProfile{}, err
	}
	return v.(UserProfile), nil
}

// Update applies the changes and returns the fresh profile reported by
// the server, superseding anything fetched earlier.
func (s *Service) Update(ctx context.Context, accessToken string, update UpdateRequest) (UserProfile, error) {
	resp, err := apiclient.Call[payload](ctx, s.client, apiclient.OpUpdateProfile, apiclient.Options{
		Headers: apiclient.BearerHeader(accessToken),
		Body:    update,
	})
	if err != nil {
		return UserProfile{}, fmt.Errorf("[profile Update] %w", err)
	}

	// Drop any collapsed fetch result for this token so the next Get
	// observes the update.
	s.group.Forget(accessToken)

	return resp.User, nil
}
