package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"github.com/vparmar-art/MarketplaceApp/config"
	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	"github.com/vparmar-art/MarketplaceApp/internal/repository"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/errs"
	"github.com/vparmar-art/MarketplaceApp/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	repository   repository.UserRepository
	publisher    EventPublisher
	config       config.AuthConfig
	passwordCost int
	now          func() time.Time
}

func CreateUserService(repository repository.UserRepository, publisher EventPublisher, config config.AuthConfig) UserService {
	return &UserServiceImpl{
		repository:   repository,
		publisher:    publisher,
		config:       config,
		passwordCost: bcrypt.DefaultCost,
		now:          time.Now,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (resp dto.UserResponse, err error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return resp, errs.ErrMissingRegistration
	}

	existing, err := s.repository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return resp, err
	}
	if existing.ID != 0 {
		return resp, errs.ErrUsernameAlreadyUsed
	}

	existing, err = s.repository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return resp, err
	}
	if existing.ID != 0 {
		return resp, errs.ErrEmailAlreadyUsed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.passwordCost)
	if err != nil {
		log.Error().Err(err).Str("component", "Register").Msg("")
		return resp, err
	}

	now := s.now().UnixMilli()
	user := domain.User{
		ExternalID:     ulid.Make().String(),
		Username:       req.Username,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		HashedPassword: string(hashedPassword),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.repository.HandleTrx(ctx, func(repo repository.UserRepository) error {
		id, err := repo.AddUser(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id

		_, err = repo.AddProfile(ctx, domain.UserProfile{
			UserID:    id,
			UserType:  domain.UserTypeBuyer,
			CreatedAt: now,
			UpdatedAt: now,
		})
		return err
	})
	if err != nil {
		return resp, err
	}

	publishEvent(ctx, s.publisher, user.ExternalID, dto.EventUserRegistered, dto.UserRegisteredEvent{
		UserID:     user.ID,
		ExternalID: user.ExternalID,
		Username:   user.Username,
		Email:      user.Email,
	})

	return toUserResponse(user), nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (resp dto.LoginResponse, err error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return resp, errs.ErrMissingCredentials
	}

	user, err := s.repository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return resp, err
	}
	if user.ID == 0 {
		return resp, errs.ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return resp, errs.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return resp, err
	}

	resp.Token = token.Key
	resp.ExpiresAt = toTime(token.ExpiresAt)
	resp.User = toUserResponse(user)

	return resp, nil
}

// issueToken returns the user's unexpired token, or replaces it with a fresh one.
// When a concurrent login stores its token first, that token is returned instead.
func (s *UserServiceImpl) issueToken(ctx context.Context, user domain.User) (token domain.AuthToken, err error) {
	now := s.now()

	token, err = s.repository.GetTokenByUserID(ctx, user.ID)
	if err != nil {
		return token, err
	}
	if token.Key != "" && !token.Expired(now) {
		return token, nil
	}

	key, expiresAt, err := utils.CreateJWTToken(user.ID, user.Username, user.ExternalID, s.config.JWTSecret, s.config.TokenTTL, now)
	if err != nil {
		log.Error().Err(err).Str("component", "issueToken").Msg("")
		return token, err
	}

	token = domain.AuthToken{
		Key:       key,
		UserID:    user.ID,
		CreatedAt: now.UnixMilli(),
		ExpiresAt: expiresAt.UnixMilli(),
	}

	err = s.repository.HandleTrx(ctx, func(repo repository.UserRepository) error {
		if err := repo.DeleteTokenByUserID(ctx, user.ID); err != nil {
			return err
		}
		return repo.AddToken(ctx, token)
	})
	if errors.Is(err, errs.ErrConflict) {
		token, err = s.repository.GetTokenByUserID(ctx, user.ID)
		if err == nil && token.Key == "" {
			err = errs.ErrInternalServer
		}
	}
	if err != nil {
		return domain.AuthToken{}, err
	}

	return token, nil
}

// Logout revokes the actor's token. Anonymous callers have nothing to revoke.
func (s *UserServiceImpl) Logout(ctx context.Context, actor domain.Actor) (err error) {
	if !actor.IsAuthenticated() {
		return nil
	}

	return s.repository.DeleteTokenByUserID(ctx, actor.UserID)
}

func (s *UserServiceImpl) Authenticate(ctx context.Context, token string) (actor domain.Actor, err error) {
	claims, err := utils.ParseJWTToken(token, s.config.JWTSecret)
	if err != nil {
		return actor, errs.ErrInvalidToken
	}

	stored, err := s.repository.GetTokenByKey(ctx, token)
	if err != nil {
		return actor, err
	}
	if stored.Key == "" || stored.UserID != claims.UserID || stored.Expired(s.now()) {
		return actor, errs.ErrInvalidToken
	}

	user, err := s.repository.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return actor, err
	}
	if user.ID == 0 {
		return actor, errs.ErrInvalidToken
	}

	return domain.Actor{
		UserID:     user.ID,
		Username:   user.Username,
		ExternalID: user.ExternalID,
		IsStaff:    user.IsStaff,
	}, nil
}

func (s *UserServiceImpl) Me(ctx context.Context, actor domain.Actor) (resp dto.UserResponse, err error) {
	if !actor.IsAuthenticated() {
		return resp, errs.ErrNotLoggedIn
	}

	user, err := s.repository.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return resp, err
	}
	if user.ID == 0 {
		return resp, errs.ErrAccountNotFound
	}

	return toUserResponse(user), nil
}

func (s *UserServiceImpl) GetUsers(ctx context.Context, actor domain.Actor, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error) {
	if !actor.IsStaff {
		return resp, errs.ErrForbidden
	}

	filter = filter.Normalize()

	users, err := s.repository.GetUsers(ctx, filter)
	if err != nil {
		return resp, err
	}

	count, err := s.repository.CountUsers(ctx, filter)
	if err != nil {
		return resp, err
	}

	records := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		records = append(records, toUserResponse(user))
	}

	return paginated(records, count, filter), nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, actor domain.Actor, id int64) (resp dto.UserResponse, err error) {
	if !actor.IsStaff {
		return resp, errs.ErrForbidden
	}

	user, err := s.repository.GetUserByID(ctx, id)
	if err != nil {
		return resp, err
	}
	if user.ID == 0 {
		return resp, errs.ErrAccountNotFound
	}

	return toUserResponse(user), nil
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, actor domain.Actor, req dto.UpdateUserRequest) (resp dto.UserResponse, err error) {
	if !actor.IsStaff {
		return resp, errs.ErrForbidden
	}

	user, err := s.repository.GetUserByID(ctx, req.ID)
	if err != nil {
		return resp, err
	}
	if user.ID == 0 {
		return resp, errs.ErrAccountNotFound
	}

	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	user.UpdatedAt = s.now().UnixMilli()

	if err = s.repository.UpdateUser(ctx, user); err != nil {
		return resp, err
	}

	return toUserResponse(user), nil
}

// PurgeExpiredTokens is run by the scheduler.
func (s *UserServiceImpl) PurgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.repository.DeleteExpiredTokens(ctx, s.now().UnixMilli())
	if err != nil {
		log.Error().Err(err).Str("component", "PurgeExpiredTokens").Msg("")
		return
	}

	log.Info().Str("component", "PurgeExpiredTokens").Int64("deleted", deleted).Msg("expired tokens purged")
}
