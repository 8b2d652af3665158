package service

import (
	"context"

	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/errs"
)

func (s *ServiceTestSuite) TestGetOrCreateProfileIsIdempotent() {
	first, err := s.profileService.GetOrCreateProfile(s.ctx, s.buyer)
	s.Require().NoError(err)
	s.Equal(domain.UserTypeBuyer, first.UserType)
	s.Equal("buyer", first.User.Username)

	second, err := s.profileService.GetOrCreateProfile(s.ctx, s.buyer)
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.Len(s.db.profiles, 1)
}

func (s *ServiceTestSuite) TestGetOrCreateProfileFallsBackOnInsertConflict() {
	existing := domain.UserProfile{ID: s.db.id(), UserID: s.buyer.UserID, UserType: domain.UserTypeExporter}
	s.db.failOn["AddProfile"] = errs.ErrConflict

	repo := &racingProfileRepository{fakeUserRepository: fakeUserRepository{db: s.db}, winner: existing}
	svc := &ProfileServiceImpl{repository: repo, now: s.now}

	resp, err := svc.GetOrCreateProfile(s.ctx, s.buyer)
	s.Require().NoError(err)
	s.Equal(existing.ID, resp.ID)
	s.Equal(domain.UserTypeExporter, resp.UserType)
}

// racingProfileRepository hides the profile on the first lookup and commits a
// competing insert before the service's own insert runs.
type racingProfileRepository struct {
	fakeUserRepository
	winner  domain.UserProfile
	lookups int
}

func (r *racingProfileRepository) GetProfileByUserID(ctx context.Context, userID int64) (domain.UserProfile, error) {
	r.lookups++
	if r.lookups == 1 {
		return domain.UserProfile{}, nil
	}
	return r.winner, nil
}

func (s *ServiceTestSuite) TestProfileVisibility() {
	own, err := s.profileService.GetOrCreateProfile(s.ctx, s.buyer)
	s.Require().NoError(err)
	_, err = s.profileService.GetOrCreateProfile(s.ctx, s.seller)
	s.Require().NoError(err)

	_, err = s.profileService.GetProfile(s.ctx, s.other, own.ID)
	s.ErrorIs(err, errs.ErrProfileNotFound)

	got, err := s.profileService.GetProfile(s.ctx, s.staff, own.ID)
	s.NoError(err)
	s.Equal(own.ID, got.ID)

	list, err := s.profileService.GetProfiles(s.ctx, s.buyer, pkgdto.Filter{})
	s.NoError(err)
	s.Equal(uint64(1), list.Metadata.TotalCount)

	all, err := s.profileService.GetProfiles(s.ctx, s.staff, pkgdto.Filter{})
	s.NoError(err)
	s.Equal(uint64(2), all.Metadata.TotalCount)
}

func (s *ServiceTestSuite) TestUpdateProfile() {
	own, err := s.profileService.GetOrCreateProfile(s.ctx, s.buyer)
	s.Require().NoError(err)

	type TestCase struct {
		Name     string
		Actor    domain.Actor
		Request  dto.ProfileRequest
		Expected error
	}

	testCases := []TestCase{
		{Name: "other user", Actor: s.other, Request: dto.ProfileRequest{ID: own.ID, CompanyName: strPtr("Acme")}, Expected: errs.ErrProfileNotFound},
		{Name: "owner cannot verify", Actor: s.buyer, Request: dto.ProfileRequest{ID: own.ID, Verified: boolPtr(true)}, Expected: errs.ErrVerifiedReadOnly},
		{Name: "invalid user type", Actor: s.buyer, Request: dto.ProfileRequest{ID: own.ID, UserType: strPtr("broker")}, Expected: errs.ErrInvalidUserType},
		{Name: "missing profile", Actor: s.staff, Request: dto.ProfileRequest{ID: 9999}, Expected: errs.ErrProfileNotFound},
		{Name: "owner edits company", Actor: s.buyer, Request: dto.ProfileRequest{ID: own.ID, CompanyName: strPtr("Acme"), UserType: strPtr(domain.UserTypeBoth)}},
		{Name: "staff verifies", Actor: s.staff, Request: dto.ProfileRequest{ID: own.ID, Verified: boolPtr(true)}},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			_, err := s.profileService.UpdateProfile(s.ctx, tc.Actor, tc.Request)
			if tc.Expected != nil {
				s.ErrorIs(err, tc.Expected)
				return
			}
			s.NoError(err)
		})
	}

	profile := s.db.profiles[own.ID]
	s.Equal("Acme", *profile.CompanyName)
	s.Equal(domain.UserTypeBoth, profile.UserType)
	s.True(profile.Verified)
}
