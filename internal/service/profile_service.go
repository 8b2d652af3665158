package service

import (
	"context"
	"errors"
	"time"

	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	"github.com/vparmar-art/MarketplaceApp/internal/repository"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/errs"
)

type ProfileServiceImpl struct {
	repository repository.UserRepository
	now        func() time.Time
}

func CreateProfileService(repository repository.UserRepository) ProfileService {
	return &ProfileServiceImpl{
		repository: repository,
		now:        time.Now,
	}
}

func toProfileResponse(profile domain.UserProfile, user domain.User) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:                         profile.ID,
		User:                       toUserResponse(user),
		CompanyName:                profile.CompanyName,
		CompanyWebsite:             profile.CompanyWebsite,
		UserType:                   profile.UserType,
		Country:                    profile.Country,
		PhoneNumber:                profile.PhoneNumber,
		Address:                    profile.Address,
		ProfilePicture:             profile.ProfilePicture,
		BusinessRegistrationNumber: profile.BusinessRegistrationNumber,
		TaxID:                      profile.TaxID,
		Industry:                   profile.Industry,
		Verified:                   profile.Verified,
		CreatedAt:                  toTime(profile.CreatedAt),
		UpdatedAt:                  toTime(profile.UpdatedAt),
	}
}

func (s *ProfileServiceImpl) withUser(ctx context.Context, profile domain.UserProfile) (resp dto.ProfileResponse, err error) {
	user, err := s.repository.GetUserByID(ctx, profile.UserID)
	if err != nil {
		return resp, err
	}

	return toProfileResponse(profile, user), nil
}

// GetOrCreateProfile returns the actor's profile, creating the default one on
// first access. Losing an insert race to another request reads the winner's row.
func (s *ProfileServiceImpl) GetOrCreateProfile(ctx context.Context, actor domain.Actor) (resp dto.ProfileResponse, err error) {
	if !actor.IsAuthenticated() {
		return resp, errs.ErrNotLoggedIn
	}

	profile, err := s.repository.GetProfileByUserID(ctx, actor.UserID)
	if err != nil {
		return resp, err
	}

	if profile.ID == 0 {
		now := s.now().UnixMilli()
		profile = domain.UserProfile{
			UserID:    actor.UserID,
			UserType:  domain.UserTypeBuyer,
			CreatedAt: now,
			UpdatedAt: now,
		}

		profile.ID, err = s.repository.AddProfile(ctx, profile)
		if errors.Is(err, errs.ErrConflict) {
			profile, err = s.repository.GetProfileByUserID(ctx, actor.UserID)
		}
		if err != nil {
			return resp, err
		}
	}

	return s.withUser(ctx, profile)
}

func (s *ProfileServiceImpl) GetProfiles(ctx context.Context, actor domain.Actor, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error) {
	if !actor.IsAuthenticated() {
		return resp, errs.ErrNotLoggedIn
	}

	ownerID := actor.UserID
	if actor.IsStaff {
		ownerID = 0
	}

	filter = filter.Normalize()

	profiles, err := s.repository.GetProfiles(ctx, filter, ownerID)
	if err != nil {
		return resp, err
	}

	count, err := s.repository.CountProfiles(ctx, ownerID)
	if err != nil {
		return resp, err
	}

	userIDs := make([]int64, 0, len(profiles))
	for _, profile := range profiles {
		userIDs = append(userIDs, profile.UserID)
	}

	users, err := s.repository.GetUsersByIDs(ctx, uniqueIDs(userIDs))
	if err != nil {
		return resp, err
	}
	userMap := usersByID(users)

	records := make([]dto.ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		records = append(records, toProfileResponse(profile, userMap[profile.UserID]))
	}

	return paginated(records, count, filter), nil
}

func (s *ProfileServiceImpl) GetProfile(ctx context.Context, actor domain.Actor, id int64) (resp dto.ProfileResponse, err error) {
	profile, err := s.repository.GetProfileByID(ctx, id)
	if err != nil {
		return resp, err
	}
	if profile.ID == 0 || !actor.CanManage(profile.UserID) {
		return resp, errs.ErrProfileNotFound
	}

	return s.withUser(ctx, profile)
}

func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, actor domain.Actor, req dto.ProfileRequest) (resp dto.ProfileResponse, err error) {
	profile, err := s.repository.GetProfileByID(ctx, req.ID)
	if err != nil {
		return resp, err
	}
	if profile.ID == 0 || !actor.CanManage(profile.UserID) {
		return resp, errs.ErrProfileNotFound
	}

	if req.Verified != nil && *req.Verified != profile.Verified {
		if !actor.IsStaff {
			return resp, errs.ErrVerifiedReadOnly
		}
		profile.Verified = *req.Verified
	}

	if req.UserType != nil {
		if !domain.IsValidUserType(*req.UserType) {
			return resp, errs.ErrInvalidUserType
		}
		profile.UserType = *req.UserType
	}

	assignOptional(&profile.CompanyName, req.CompanyName)
	assignOptional(&profile.CompanyWebsite, req.CompanyWebsite)
	assignOptional(&profile.Country, req.Country)
	assignOptional(&profile.PhoneNumber, req.PhoneNumber)
	assignOptional(&profile.Address, req.Address)
	assignOptional(&profile.ProfilePicture, req.ProfilePicture)
	assignOptional(&profile.BusinessRegistrationNumber, req.BusinessRegistrationNumber)
	assignOptional(&profile.TaxID, req.TaxID)
	assignOptional(&profile.Industry, req.Industry)
	profile.UpdatedAt = s.now().UnixMilli()

	if err = s.repository.UpdateProfile(ctx, profile); err != nil {
		return resp, err
	}

	return s.withUser(ctx, profile)
}

// assignOptional copies a supplied value; an empty string clears the field.
func assignOptional(field **string, value *string) {
	if value == nil {
		return
	}
	if *value == "" {
		*field = nil
		return
	}
	v := *value
	*field = &v
}
