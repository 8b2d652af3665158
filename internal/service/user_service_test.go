package service

import (
	"errors"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/errs"
	"github.com/vparmar-art/MarketplaceApp/pkg/utils"
)

func (s *ServiceTestSuite) register(username string) dto.UserResponse {
	resp, err := s.userService.Register(s.ctx, dto.RegisterRequest{
		Username: username,
		Email:    username + "@corp.example",
		Password: "s3cret-pass",
	})
	s.Require().NoError(err)
	return resp
}

func (s *ServiceTestSuite) TestRegisterCreatesUserAndProfile() {
	resp := s.register("alice")

	s.NotZero(resp.ID)
	s.Len(resp.ExternalID, 26)
	s.Equal("alice", resp.Username)

	profile, err := (&fakeUserRepository{db: s.db}).GetProfileByUserID(s.ctx, resp.ID)
	s.NoError(err)
	s.Equal(domain.UserTypeBuyer, profile.UserType)
	s.False(profile.Verified)

	s.NotEqual("s3cret-pass", s.db.users[resp.ID].HashedPassword)
	s.publisher.AssertCalled(s.T(), "Publish", mock.Anything, resp.ExternalID, mock.MatchedBy(func(msg dto.KafkaMessage) bool {
		return msg.EventType == dto.EventUserRegistered
	}))
}

func (s *ServiceTestSuite) TestRegisterRejectsDuplicates() {
	s.register("alice")
	usersBefore := len(s.db.users)
	profilesBefore := len(s.db.profiles)

	_, err := s.userService.Register(s.ctx, dto.RegisterRequest{Username: "alice", Email: "new@corp.example", Password: "pw"})
	s.ErrorIs(err, errs.ErrUsernameAlreadyUsed)
	s.Equal(errs.ErrStatusConflict, errs.GetErrorStatusCode(err))

	_, err = s.userService.Register(s.ctx, dto.RegisterRequest{Username: "alice2", Email: "alice@corp.example", Password: "pw"})
	s.ErrorIs(err, errs.ErrEmailAlreadyUsed)

	s.Len(s.db.users, usersBefore)
	s.Len(s.db.profiles, profilesBefore)
}

func (s *ServiceTestSuite) TestRegisterRequiresFields() {
	_, err := s.userService.Register(s.ctx, dto.RegisterRequest{Username: " ", Email: "x@y.z", Password: "pw"})
	s.ErrorIs(err, errs.ErrMissingRegistration)
}

func (s *ServiceTestSuite) TestRegisterRollsBackUserWhenProfileFails() {
	s.db.failOn["AddProfile"] = errors.New("disk full")
	usersBefore := len(s.db.users)

	_, err := s.userService.Register(s.ctx, dto.RegisterRequest{Username: "bob", Email: "bob@corp.example", Password: "pw"})
	s.Error(err)
	s.Len(s.db.users, usersBefore)
}

func (s *ServiceTestSuite) TestLogin() {
	s.register("alice")

	type TestCase struct {
		Name     string
		Request  dto.LoginRequest
		Expected error
	}

	testCases := []TestCase{
		{Name: "missing password", Request: dto.LoginRequest{Username: "alice"}, Expected: errs.ErrMissingCredentials},
		{Name: "blank username", Request: dto.LoginRequest{Username: "  ", Password: "s3cret-pass"}, Expected: errs.ErrMissingCredentials},
		{Name: "unknown user", Request: dto.LoginRequest{Username: "nobody", Password: "x"}, Expected: errs.ErrInvalidCredentials},
		{Name: "wrong password", Request: dto.LoginRequest{Username: "alice", Password: "wrong"}, Expected: errs.ErrInvalidCredentials},
		{Name: "valid credentials", Request: dto.LoginRequest{Username: "alice", Password: "s3cret-pass"}, Expected: nil},
		{Name: "padded username", Request: dto.LoginRequest{Username: " alice ", Password: "s3cret-pass"}, Expected: nil},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			resp, err := s.userService.Login(s.ctx, tc.Request)
			if tc.Expected != nil {
				s.ErrorIs(err, tc.Expected)
				return
			}
			s.NoError(err)
			s.NotEmpty(resp.Token)
			s.Equal("alice", resp.User.Username)
		})
	}
}

func (s *ServiceTestSuite) TestLoginReusesUnexpiredToken() {
	s.register("alice")
	req := dto.LoginRequest{Username: "alice", Password: "s3cret-pass"}

	first, err := s.userService.Login(s.ctx, req)
	s.Require().NoError(err)

	s.clock = s.clock.Add(30 * time.Minute)
	second, err := s.userService.Login(s.ctx, req)
	s.Require().NoError(err)
	s.Equal(first.Token, second.Token)

	s.clock = s.clock.Add(2 * time.Hour)
	third, err := s.userService.Login(s.ctx, req)
	s.Require().NoError(err)
	s.NotEqual(first.Token, third.Token)
	s.Len(s.db.tokens, 1)
}

func (s *ServiceTestSuite) TestLoginFailsWhenTokenIsNotStored() {
	s.register("alice")
	s.db.failOn["AddToken"] = errs.ErrConflict

	_, err := s.userService.Login(s.ctx, dto.LoginRequest{Username: "alice", Password: "s3cret-pass"})
	s.ErrorIs(err, errs.ErrInternalServer)
	s.Empty(s.db.tokens)
}

func (s *ServiceTestSuite) TestAuthenticateAndLogout() {
	s.register("alice")
	login, err := s.userService.Login(s.ctx, dto.LoginRequest{Username: "alice", Password: "s3cret-pass"})
	s.Require().NoError(err)

	actor, err := s.userService.Authenticate(s.ctx, login.Token)
	s.Require().NoError(err)
	s.Equal(login.User.ID, actor.UserID)
	s.False(actor.IsStaff)

	s.NoError(s.userService.Logout(s.ctx, actor))
	_, err = s.userService.Authenticate(s.ctx, login.Token)
	s.ErrorIs(err, errs.ErrInvalidToken)

	s.NoError(s.userService.Logout(s.ctx, actor), "logout without a token is a no-op")
}

func (s *ServiceTestSuite) TestAuthenticateRejectsUnknownTokens() {
	forged, _, err := utils.CreateJWTToken(s.buyer.UserID, "buyer", "ext-buyer", "test-secret", time.Hour, s.clock)
	s.Require().NoError(err)

	_, err = s.userService.Authenticate(s.ctx, forged)
	s.ErrorIs(err, errs.ErrInvalidToken)

	_, err = s.userService.Authenticate(s.ctx, "garbage")
	s.ErrorIs(err, errs.ErrInvalidToken)
}

func (s *ServiceTestSuite) TestAnonymousLogoutIsNoop() {
	s.register("alice")
	_, err := s.userService.Login(s.ctx, dto.LoginRequest{Username: "alice", Password: "s3cret-pass"})
	s.Require().NoError(err)

	s.NoError(s.userService.Logout(s.ctx, domain.Actor{}))
	s.Len(s.db.tokens, 1)
}

func (s *ServiceTestSuite) TestUserAdministrationIsStaffOnly() {
	_, err := s.userService.GetUsers(s.ctx, s.buyer, pkgdto.Filter{})
	s.ErrorIs(err, errs.ErrForbidden)

	_, err = s.userService.UpdateUser(s.ctx, s.buyer, dto.UpdateUserRequest{ID: s.buyer.UserID, IsStaff: boolPtr(true)})
	s.ErrorIs(err, errs.ErrForbidden)
	s.False(s.db.users[s.buyer.UserID].IsStaff)

	resp, err := s.userService.GetUsers(s.ctx, s.staff, pkgdto.Filter{Search: "sell"})
	s.NoError(err)
	s.Equal(uint64(1), resp.Metadata.TotalCount)
	s.Equal(pkgdto.DefaultPageLimit, resp.Metadata.Limit)

	updated, err := s.userService.UpdateUser(s.ctx, s.staff, dto.UpdateUserRequest{ID: s.buyer.UserID, FirstName: strPtr("Bea")})
	s.NoError(err)
	s.Equal("Bea", updated.FirstName)

	_, err = s.userService.GetUser(s.ctx, s.staff, 9999)
	s.ErrorIs(err, errs.ErrAccountNotFound)
}

func (s *ServiceTestSuite) TestMe() {
	resp, err := s.userService.Me(s.ctx, s.seller)
	s.NoError(err)
	s.Equal("seller", resp.Username)

	_, err = s.userService.Me(s.ctx, domain.Actor{})
	s.ErrorIs(err, errs.ErrNotLoggedIn)
}

func (s *ServiceTestSuite) TestPurgeExpiredTokens() {
	s.db.tokens["expired"] = domain.AuthToken{Key: "expired", UserID: s.buyer.UserID, ExpiresAt: s.clock.Add(-time.Minute).UnixMilli()}
	s.db.tokens["live"] = domain.AuthToken{Key: "live", UserID: s.seller.UserID, ExpiresAt: s.clock.Add(time.Minute).UnixMilli()}

	s.userService.PurgeExpiredTokens()

	s.NotContains(s.db.tokens, "expired")
	s.Contains(s.db.tokens, "live")
}
