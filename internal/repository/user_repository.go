package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/errs"
)

const (
	userColumns    = "id, external_id, username, email, first_name, last_name, hashed_password, is_staff, created_at, updated_at"
	profileColumns = "id, user_id, company_name, company_website, user_type, country, phone_number, address, profile_picture, business_registration_number, tax_id, industry, verified, created_at, updated_at"
	tokenColumns   = "key, user_id, created_at, expires_at"
)

type UserRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateUserRepository(db *sqlx.DB) UserRepository {
	return &UserRepositoryImpl{
		db: db,
	}
}

func (r *UserRepositoryImpl) conn() sqlx.ExtContext {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *UserRepositoryImpl) HandleTrx(ctx context.Context, fn func(repo UserRepository) error) error {
	if r.tx != nil {
		return fn(r)
	}

	return runInTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(&UserRepositoryImpl{db: r.db, tx: tx})
	})
}

func (r *UserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (id int64, err error) {
	id, err = insertReturningID(ctx, r.conn(), "INSERT INTO users(external_id, username, email, first_name, last_name, hashed_password, is_staff, created_at, updated_at) VALUES (:external_id, :username, :email, :first_name, :last_name, :hashed_password, :is_staff, :created_at, :updated_at) RETURNING id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddUser").Msg("")
		if constraint, ok := uniqueViolation(err); ok {
			switch constraint {
			case "users_username_key":
				return 0, errs.ErrUsernameAlreadyUsed
			case "users_email_key":
				return 0, errs.ErrEmailAlreadyUsed
			}
			return 0, errs.ErrConflict
		}
		return 0, err
	}

	return id, nil
}

func (r *UserRepositoryImpl) getUser(ctx context.Context, component, where string, arg interface{}) (data domain.User, err error) {
	err = sqlx.GetContext(ctx, r.conn(), &data, "SELECT "+userColumns+" FROM users WHERE "+where, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", component).Msg("")
		return data, err
	}

	return data, nil
}

func (r *UserRepositoryImpl) GetUserByID(ctx context.Context, id int64) (data domain.User, err error) {
	return r.getUser(ctx, "GetUserByID", "id = $1", id)
}

func (r *UserRepositoryImpl) GetUserByUsername(ctx context.Context, username string) (data domain.User, err error) {
	return r.getUser(ctx, "GetUserByUsername", "username = $1", username)
}

func (r *UserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (data domain.User, err error) {
	return r.getUser(ctx, "GetUserByEmail", "email = $1", email)
}

func (r *UserRepositoryImpl) GetUsersByIDs(ctx context.Context, ids []int64) (data []domain.User, err error) {
	err = selectIn(ctx, r.conn(), &data, "SELECT "+userColumns+" FROM users WHERE id IN (?)", ids)
	if err != nil {
		log.Error().Err(err).Str("component", "GetUsersByIDs").Msg("")
		return nil, err
	}

	return data, nil
}

func userSearchClause(args *queryArgs, filter pkgdto.Filter) string {
	if filter.Search == "" {
		return ""
	}
	pattern := args.add(containsPattern(filter.Search))
	return " WHERE (username ILIKE " + pattern + " OR email ILIKE " + pattern + ")"
}

func (r *UserRepositoryImpl) GetUsers(ctx context.Context, filter pkgdto.Filter) (data []domain.User, err error) {
	args := &queryArgs{}
	query := "SELECT " + userColumns + " FROM users" + userSearchClause(args, filter) + " ORDER BY id"
	query += args.paginate(filter)

	err = sqlx.SelectContext(ctx, r.conn(), &data, query, args.values...)
	if err != nil {
		log.Error().Err(err).Str("component", "GetUsers").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *UserRepositoryImpl) CountUsers(ctx context.Context, filter pkgdto.Filter) (count uint64, err error) {
	args := &queryArgs{}
	err = sqlx.GetContext(ctx, r.conn(), &count, "SELECT COUNT(*) FROM users"+userSearchClause(args, filter), args.values...)
	if err != nil {
		log.Error().Err(err).Str("component", "CountUsers").Msg("")
		return 0, err
	}

	return count, nil
}

func (r *UserRepositoryImpl) UpdateUser(ctx context.Context, data domain.User) (err error) {
	_, err = sqlx.NamedExecContext(ctx, r.conn(), "UPDATE users SET email = :email, first_name = :first_name, last_name = :last_name, is_staff = :is_staff, updated_at = :updated_at WHERE id = :id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateUser").Msg("")
		if _, ok := uniqueViolation(err); ok {
			return errs.ErrEmailAlreadyUsed
		}
		return err
	}

	return nil
}

func (r *UserRepositoryImpl) AddProfile(ctx context.Context, data domain.UserProfile) (id int64, err error) {
	id, err = insertReturningID(ctx, r.conn(), "INSERT INTO user_profiles(user_id, company_name, company_website, user_type, country, phone_number, address, profile_picture, business_registration_number, tax_id, industry, verified, created_at, updated_at) VALUES (:user_id, :company_name, :company_website, :user_type, :country, :phone_number, :address, :profile_picture, :business_registration_number, :tax_id, :industry, :verified, :created_at, :updated_at) RETURNING id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddProfile").Msg("")
		if _, ok := uniqueViolation(err); ok {
			return 0, errs.ErrConflict
		}
		return 0, err
	}

	return id, nil
}

func (r *UserRepositoryImpl) getProfile(ctx context.Context, component, where string, arg interface{}) (data domain.UserProfile, err error) {
	err = sqlx.GetContext(ctx, r.conn(), &data, "SELECT "+profileColumns+" FROM user_profiles WHERE "+where, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", component).Msg("")
		return data, err
	}

	return data, nil
}

func (r *UserRepositoryImpl) GetProfileByID(ctx context.Context, id int64) (data domain.UserProfile, err error) {
	return r.getProfile(ctx, "GetProfileByID", "id = $1", id)
}

func (r *UserRepositoryImpl) GetProfileByUserID(ctx context.Context, userID int64) (data domain.UserProfile, err error) {
	return r.getProfile(ctx, "GetProfileByUserID", "user_id = $1", userID)
}

func ownerClause(args *queryArgs, column string, userID int64) string {
	if userID == 0 {
		return ""
	}
	return " WHERE " + column + " = " + args.add(userID)
}

func (r *UserRepositoryImpl) GetProfiles(ctx context.Context, filter pkgdto.Filter, userID int64) (data []domain.UserProfile, err error) {
	args := &queryArgs{}
	query := "SELECT " + profileColumns + " FROM user_profiles" + ownerClause(args, "user_id", userID) + " ORDER BY id"
	query += args.paginate(filter)

	err = sqlx.SelectContext(ctx, r.conn(), &data, query, args.values...)
	if err != nil {
		log.Error().Err(err).Str("component", "GetProfiles").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *UserRepositoryImpl) CountProfiles(ctx context.Context, userID int64) (count uint64, err error) {
	args := &queryArgs{}
	err = sqlx.GetContext(ctx, r.conn(), &count, "SELECT COUNT(*) FROM user_profiles"+ownerClause(args, "user_id", userID), args.values...)
	if err != nil {
		log.Error().Err(err).Str("component", "CountProfiles").Msg("")
		return 0, err
	}

	return count, nil
}

func (r *UserRepositoryImpl) UpdateProfile(ctx context.Context, data domain.UserProfile) (err error) {
	_, err = sqlx.NamedExecContext(ctx, r.conn(), "UPDATE user_profiles SET company_name = :company_name, company_website = :company_website, user_type = :user_type, country = :country, phone_number = :phone_number, address = :address, profile_picture = :profile_picture, business_registration_number = :business_registration_number, tax_id = :tax_id, industry = :industry, verified = :verified, updated_at = :updated_at WHERE id = :id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateProfile").Msg("")
		return err
	}

	return nil
}

func (r *UserRepositoryImpl) AddToken(ctx context.Context, data domain.AuthToken) (err error) {
	_, err = sqlx.NamedExecContext(ctx, r.conn(), "INSERT INTO auth_tokens(key, user_id, created_at, expires_at) VALUES (:key, :user_id, :created_at, :expires_at)", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddToken").Msg("")
		if _, ok := uniqueViolation(err); ok {
			return errs.ErrConflict
		}
		return err
	}

	return nil
}

func (r *UserRepositoryImpl) getToken(ctx context.Context, component, where string, arg interface{}) (data domain.AuthToken, err error) {
	err = sqlx.GetContext(ctx, r.conn(), &data, "SELECT "+tokenColumns+" FROM auth_tokens WHERE "+where, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", component).Msg("")
		return data, err
	}

	return data, nil
}

func (r *UserRepositoryImpl) GetTokenByKey(ctx context.Context, key string) (data domain.AuthToken, err error) {
	return r.getToken(ctx, "GetTokenByKey", "key = $1", key)
}

func (r *UserRepositoryImpl) GetTokenByUserID(ctx context.Context, userID int64) (data domain.AuthToken, err error) {
	return r.getToken(ctx, "GetTokenByUserID", "user_id = $1", userID)
}

func (r *UserRepositoryImpl) DeleteTokenByUserID(ctx context.Context, userID int64) (err error) {
	_, err = r.conn().ExecContext(ctx, "DELETE FROM auth_tokens WHERE user_id = $1", userID)
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteTokenByUserID").Msg("")
		return err
	}

	return nil
}

func (r *UserRepositoryImpl) DeleteExpiredTokens(ctx context.Context, now int64) (deleted int64, err error) {
	result, err := r.conn().ExecContext(ctx, "DELETE FROM auth_tokens WHERE expires_at <= $1", now)
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteExpiredTokens").Msg("")
		return 0, err
	}

	return result.RowsAffected()
}
