package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/xiaot623/gogo/chat/internal/adapter/cache"
	"github.com/xiaot623/gogo/chat/internal/auth"
	"github.com/xiaot623/gogo/chat/internal/domain"
	"github.com/xiaot623/gogo/chat/internal/repository"
)

func userCacheKey(userID string) string {
	return "user:" + userID
}

// Register creates a user and returns it with an access token.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidArgument)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidArgument)
	}

	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.StoreError("get user by email", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user already exists", domain.ErrInvalidArgument)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	pic := req.Pic
	if pic == "" {
		pic = s.config.DefaultPic
	}
	user := &domain.User{
		UserID:       "usr_" + uuid.New().String(),
		Name:         name,
		Email:        email,
		Pic:          pic,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user already exists", domain.ErrInvalidArgument)
		}
		return nil, domain.StoreError("create user", err)
	}

	s.logger.Info("user registered", "user_id", user.UserID)
	return s.authResponse(user)
}

// Login checks credentials and returns the user with a fresh access token.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidArgument)
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.StoreError("get user by email", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthenticated)
	}

	match, err := auth.ComparePassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}
	if !match {
		return nil, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthenticated)
	}

	return s.authResponse(user)
}

func (s *Service) authResponse(user *domain.User) (*domain.AuthResponse, error) {
	if s.issuer == nil {
		return nil, errors.New("token issuer not configured")
	}
	token, err := s.issuer.Issue(user.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{User: user.Public(), Token: token}, nil
}

// SearchUsers matches name or email, excluding actingUser.
func (s *Service) SearchUsers(ctx context.Context, actingUser, query string) ([]domain.PublicUser, error) {
	users, err := s.store.SearchUsers(ctx, strings.TrimSpace(query), actingUser, s.config.SearchLimit)
	if err != nil {
		return nil, domain.StoreError("search users", err)
	}
	return lo.Map(users, func(u domain.User, _ int) domain.PublicUser { return u.Public() }), nil
}

// GetUser returns the public view of a user.
func (s *Service) GetUser(ctx context.Context, userID string) (*domain.PublicUser, error) {
	users, err := s.getUsers(ctx, []string{userID})
	if err != nil {
		return nil, err
	}
	user, ok := users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}
	return &user, nil
}

// UserExists reports whether userID is a registered user.
func (s *Service) UserExists(ctx context.Context, userID string) (bool, error) {
	users, err := s.getUsers(ctx, []string{userID})
	if err != nil {
		return false, err
	}
	_, ok := users[userID]
	return ok, nil
}

// requireUsers fails with ErrNotFound naming the first unknown id.
func (s *Service) requireUsers(ctx context.Context, userIDs ...string) error {
	users, err := s.getUsers(ctx, userIDs)
	if err != nil {
		return err
	}
	for _, id := range userIDs {
		if _, ok := users[id]; !ok {
			return fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
		}
	}
	return nil
}

// getUsers loads public users by id, reading through the user cache.
// Unknown ids are absent from the result.
func (s *Service) getUsers(ctx context.Context, userIDs []string) (map[string]domain.PublicUser, error) {
	ids := lo.Uniq(lo.Compact(userIDs))
	users := make(map[string]domain.PublicUser, len(ids))

	var misses []string
	for _, id := range ids {
		raw, err := s.userCache.Get(ctx, userCacheKey(id))
		if err != nil {
			if !errors.Is(err, cache.ErrMiss) {
				s.logger.Warn("user cache read failed", "user_id", id, "error", err)
			}
			misses = append(misses, id)
			continue
		}
		var u domain.PublicUser
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			s.logger.Warn("user cache entry corrupt", "user_id", id, "error", err)
			misses = append(misses, id)
			continue
		}
		users[id] = u
	}
	if len(misses) == 0 {
		return users, nil
	}

	stored, err := s.store.GetUsers(ctx, misses)
	if err != nil {
		return nil, domain.StoreError("get users", err)
	}
	for _, u := range stored {
		public := u.Public()
		users[u.UserID] = public
		raw, err := json.Marshal(public)
		if err != nil {
			continue
		}
		if err := s.userCache.Set(ctx, userCacheKey(u.UserID), string(raw), s.config.UserCacheTTL); err != nil {
			s.logger.Warn("user cache write failed", "user_id", u.UserID, "error", err)
		}
	}
	return users, nil
}
