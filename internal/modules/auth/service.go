package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"vidtube/internal/domain"
	"vidtube/internal/pkg/storage"
	"vidtube/internal/pkg/token"

	"gorm.io/gorm"
)

// Service contains all business logic for identity and session lifecycle.
//
// Session model: a user has at most one live refresh token. Login and
// rotation overwrite the stored hash; logout clears it. Rotation goes
// through a compare-and-swap so two concurrent rotations of the same token
// can never both succeed.
type Service struct {
	users    UserRepositoryInterface
	tokens   TokenIssuerInterface
	hasher   PasswordHasherInterface
	uploader storage.Uploader
}

func NewService(
	users UserRepositoryInterface,
	tokens TokenIssuerInterface,
	hasher PasswordHasherInterface,
	uploader storage.Uploader,
) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		uploader: uploader,
	}
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

type RefreshResult struct {
	AccessToken  string
	RefreshToken string
}

// Register creates a new identity. The avatar file is required and must be
// uploaded before anything is persisted; if that upload fails no user row
// is created. The cover image is best-effort, matching its optional status.
func (s *Service) Register(ctx context.Context, req RegisterRequest, avatarPath, coverPath string) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if avatarPath == "" {
		return nil, fmt.Errorf("%w: avatar file is required", ErrValidation)
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	avatarURL, err := s.uploader.Upload(ctx, avatarPath)
	if err != nil {
		return nil, err
	}

	var coverURL string
	if coverPath != "" {
		// Tolerated: the original record is valid without a cover image.
		coverURL, _ = s.uploader.Upload(ctx, coverPath)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
		PasswordHash:  passwordHash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	user.Sanitize()
	return user, nil
}

// Login verifies credentials and starts a fresh session, invalidating any
// previous refresh token for the user.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	login := strings.TrimSpace(req.Username)
	if login == "" {
		login = strings.TrimSpace(req.Email)
	}
	if login == "" {
		return nil, fmt.Errorf("%w: username or email is required", ErrValidation)
	}

	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	hash := hashToken(refreshToken)
	if err := s.users.SetRefreshTokenHash(ctx, user.ID, &hash); err != nil {
		return nil, err
	}

	user.Sanitize()
	return &LoginResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Rotate exchanges a valid refresh token for a new pair. Only the most
// recently issued refresh token is honored: the presented token must match
// the stored hash, and the swap to the new hash is guarded by the old one,
// so of two concurrent rotations exactly one wins.
func (s *Service) Rotate(ctx context.Context, presented string) (*RefreshResult, error) {
	if strings.TrimSpace(presented) == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.tokens.Verify(presented, token.KindRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	presentedHash := hashToken(presented)
	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != presentedHash {
		// Used, rotated away, or logged out.
		return nil, fmt.Errorf("%w: refresh token is used or expired", ErrUnauthorized)
	}

	accessToken, refreshToken, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	swapped, err := s.users.SwapRefreshTokenHash(ctx, user.ID, presentedHash, hashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if !swapped {
		// A concurrent rotation landed first.
		return nil, fmt.Errorf("%w: refresh token is used or expired", ErrUnauthorized)
	}

	return &RefreshResult{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout drops the stored refresh token. Logging out twice is not an error.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.users.SetRefreshTokenHash(ctx, userID, nil)
}

// ChangePassword re-hashes after verifying the old password. The active
// refresh token is deliberately kept: the single session slot belongs to
// the caller, who just proved the old password.
func (s *Service) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	ok, err := s.hasher.Verify(oldPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, userID, newHash)
}

func (s *Service) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.Sanitize()
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if v := strings.TrimSpace(req.FullName); v != "" {
		user.FullName = v
	}
	if v := strings.ToLower(strings.TrimSpace(req.Email)); v != "" && v != user.Email {
		taken, err := s.users.ExistsByUsernameOrEmail(ctx, "", v)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUserExists
		}
		user.Email = v
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	user.Sanitize()
	return user, nil
}

func (s *Service) UpdateAvatar(ctx context.Context, userID int64, localPath string) (*domain.User, error) {
	return s.updateImage(ctx, userID, localPath, func(u *domain.User, url string) {
		u.AvatarURL = url
	})
}

func (s *Service) UpdateCoverImage(ctx context.Context, userID int64, localPath string) (*domain.User, error) {
	return s.updateImage(ctx, userID, localPath, func(u *domain.User, url string) {
		u.CoverImageURL = url
	})
}

func (s *Service) updateImage(ctx context.Context, userID int64, localPath string, set func(*domain.User, string)) (*domain.User, error) {
	if localPath == "" {
		return nil, fmt.Errorf("%w: image file is required", ErrValidation)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	url, err := s.uploader.Upload(ctx, localPath)
	if err != nil {
		return nil, err
	}

	set(user, url)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	user.Sanitize()
	return user, nil
}

func (s *Service) issuePair(user *domain.User) (access string, refresh string, err error) {
	access, err = s.tokens.IssueAccess(user.ID, user.Email, user.FullName)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// hashToken is what gets persisted; the raw refresh token never touches
// the database.
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
