package repository

import (
	"context"
	"strings"
	"time"

	"vidtube/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	Username         string    `gorm:"column:username;uniqueIndex"`
	Email            string    `gorm:"column:email;uniqueIndex"`
	FullName         string    `gorm:"column:full_name"`
	AvatarURL        string    `gorm:"column:avatar_url"`
	CoverImageURL    *string   `gorm:"column:cover_image_url"`
	PasswordHash     string    `gorm:"column:password_hash"`
	RefreshTokenHash *string   `gorm:"column:refresh_token_hash"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var cover string
	if m.CoverImageURL != nil {
		cover = *m.CoverImageURL
	}

	return &domain.User{
		ID:               m.ID,
		Username:         m.Username,
		Email:            m.Email,
		FullName:         m.FullName,
		AvatarURL:        m.AvatarURL,
		CoverImageURL:    cover,
		PasswordHash:     m.PasswordHash,
		RefreshTokenHash: m.RefreshTokenHash,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	var cover *string
	if u.CoverImageURL != "" {
		v := u.CoverImageURL
		cover = &v
	}

	return userModel{
		ID:               u.ID,
		Username:         strings.ToLower(strings.TrimSpace(u.Username)),
		Email:            strings.ToLower(strings.TrimSpace(u.Email)),
		FullName:         u.FullName,
		AvatarURL:        u.AvatarURL,
		CoverImageURL:    cover,
		PasswordHash:     u.PasswordHash,
		RefreshTokenHash: u.RefreshTokenHash,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

// GetByLogin matches either username or email, case-insensitively.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *UserRepository) GetManyByIDs(ctx context.Context, ids []int64) ([]*domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []userModel
	tx := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	users := make([]*domain.User, 0, len(models))
	for _, m := range models {
		users = append(users, toDomainUser(m))
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", u.ID).Updates(map[string]any{
		"full_name":       m.FullName,
		"email":           m.Email,
		"avatar_url":      m.AvatarURL,
		"cover_image_url": m.CoverImageURL,
	})
	return tx.Error
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).
		Update("password_hash", hash).Error
}

// SetRefreshTokenHash overwrites the stored refresh token hash
// unconditionally. Used by login (new session replaces any prior one) and
// logout (hash == nil).
func (r *UserRepository) SetRefreshTokenHash(ctx context.Context, id int64, hash *string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).
		Update("refresh_token_hash", hash).Error
}

// SwapRefreshTokenHash replaces the stored hash only if it still equals
// oldHash at write time. Returns false when the guard failed, which is how
// a concurrent rotation that lost the race is detected: of two requests
// presenting the same token, exactly one swap lands.
func (r *UserRepository) SwapRefreshTokenHash(ctx context.Context, id int64, oldHash, newHash string) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ? AND refresh_token_hash = ?", id, oldHash).
		Update("refresh_token_hash", newHash)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}
