package postgres

import (
	"context"
	"strings"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// secretColumns are never loaded for projections that leave the persistence layer unsanitized.
var secretColumns = []string{"password", "refresh_token"}

// accountRepository implements repository.AccountRepository using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// FindByID retrieves the full account row.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return repo.first(repo.db.WithContext(ctx).Where("id = ?", id), "failed to find account by id")
}

// FindPublicByID retrieves the account without its secret columns.
func (repo *accountRepository) FindPublicByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	query := repo.db.WithContext(ctx).Omit(secretColumns...).Where("id = ?", id)

	return repo.first(query, "failed to find account profile by id")
}

// FindByEmailOrMobile retrieves the account matching either identifier.
func (repo *accountRepository) FindByEmailOrMobile(ctx context.Context, email, mobileNo string) (*entity.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	mobileNo = strings.TrimSpace(mobileNo)

	query := repo.db.WithContext(ctx)
	switch {
	case email != "" && mobileNo != "":
		query = query.Where("email = ? OR mobile_no = ?", email, mobileNo)
	case email != "":
		query = query.Where("email = ?", email)
	case mobileNo != "":
		query = query.Where("mobile_no = ?", mobileNo)
	default:
		return nil, repository.ErrAccountNotFound
	}

	return repo.first(query, "failed to find account by email or mobile")
}

// FindByUsername retrieves the account with the given username, ignoring case.
func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	query := repo.db.WithContext(ctx).Omit(secretColumns...).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username)))

	return repo.first(query, "failed to find account by username")
}

// Create inserts a new account. Unique violations on username, email or mobile number map to a conflict.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)
	if accountM.ID == uuid.Nil {
		accountM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("unique constraint violated on insert")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCategoryNotFound.WrapMessage("invalid category reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// UpdateProfile overwrites the business profile fields and returns the updated row.
func (repo *accountRepository) UpdateProfile(ctx context.Context, id uuid.UUID, profile *entity.ProfileUpdate) (*entity.Account, error) {
	return repo.updateReturning(ctx, id, profileColumns(profile))
}

// profileColumns maps a profile update to columns. An empty alternate number keeps the stored one.
func profileColumns(profile *entity.ProfileUpdate) map[string]any {
	columns := map[string]any{
		"business_name": profile.BusinessName,
		"owner_name":    profile.OwnerName,
		"mobile_no":     profile.MobileNo,
		"category_id":   profile.CategoryID,
		"address":       profile.Address,
		"latitude":      profile.Location.Lat(),
		"longitude":     profile.Location.Lon(),
		"fcm_token":     profile.FCMToken,
	}
	if profile.AltMobileNo != "" {
		columns["alt_mobile_no"] = profile.AltMobileNo
	}

	return columns
}

// UpdatePasswordHash stores a new digest with a single-column update.
func (repo *accountRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := repo.db.WithContext(ctx).Model(&model.AccountModel{}).
		Where("id = ?", id).
		Update("password", passwordHash)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update password")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// UpdateAvatar stores a new avatar URL.
func (repo *accountRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, url string) (*entity.Account, error) {
	return repo.updateReturning(ctx, id, map[string]any{"avatar": url})
}

// UpdateCoverImage stores a new cover image URL.
func (repo *accountRepository) UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) (*entity.Account, error) {
	return repo.updateReturning(ctx, id, map[string]any{"cover_image": url})
}

// SetRefreshToken overwrites the stored refresh token.
func (repo *accountRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	result := repo.db.WithContext(ctx).Model(&model.AccountModel{}).
		Where("id = ?", id).
		UpdateColumn("refresh_token", token)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to store refresh token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// RotateRefreshToken swaps current for next in one conditional update.
func (repo *accountRepository) RotateRefreshToken(ctx context.Context, id uuid.UUID, current, next string) error {
	result := repo.db.WithContext(ctx).Model(&model.AccountModel{}).
		Where("id = ? AND refresh_token = ?", id, current).
		UpdateColumn("refresh_token", next)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to rotate refresh token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenMismatch
	}

	return nil
}

// ClearRefreshToken sets the stored refresh token to NULL.
func (repo *accountRepository) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).Model(&model.AccountModel{}).
		Where("id = ?", id).
		UpdateColumn("refresh_token", gorm.Expr("NULL")).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear refresh token")
	}

	return nil
}

func (repo *accountRepository) first(query *gorm.DB, msg string) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := query.First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, msg)
	}

	return toAccountDomain(&accountM), nil
}

// updateReturning applies columns and reads the updated row back with RETURNING.
func (repo *accountRepository) updateReturning(ctx context.Context, id uuid.UUID, columns map[string]any) (*entity.Account, error) {
	var accountM model.AccountModel
	result := repo.db.WithContext(ctx).Model(&accountM).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return nil, domainerrors.ErrAccountAlreadyExists.WrapMessage("unique constraint violated on update")
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return nil, domainerrors.ErrCategoryNotFound.WrapMessage("invalid category reference")
		}

		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrAccountNotFound
	}

	return toAccountDomain(&accountM).Sanitized(), nil
}

func toAccountDomain(data *model.AccountModel) *entity.Account {
	return &entity.Account{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		FullName:     data.FullName,
		PasswordHash: data.PasswordHash,
		RefreshToken: data.RefreshToken,
		MobileNo:     data.MobileNo,
		AltMobileNo:  data.AltMobileNo,
		BusinessName: data.BusinessName,
		OwnerName:    data.OwnerName,
		Address:      data.Address,
		Latitude:     data.Latitude,
		Longitude:    data.Longitude,
		FCMToken:     data.FCMToken,
		CategoryID:   data.CategoryID,
		Avatar:       data.Avatar,
		CoverImage:   data.CoverImage,
		Status:       data.Status,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromAccountDomain(data *entity.Account) *model.AccountModel {
	return &model.AccountModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		FullName:     data.FullName,
		PasswordHash: data.PasswordHash,
		RefreshToken: data.RefreshToken,
		MobileNo:     data.MobileNo,
		AltMobileNo:  data.AltMobileNo,
		BusinessName: data.BusinessName,
		OwnerName:    data.OwnerName,
		Address:      data.Address,
		Latitude:     data.Latitude,
		Longitude:    data.Longitude,
		FCMToken:     data.FCMToken,
		CategoryID:   data.CategoryID,
		Avatar:       data.Avatar,
		CoverImage:   data.CoverImage,
		Status:       data.Status,
	}
}
