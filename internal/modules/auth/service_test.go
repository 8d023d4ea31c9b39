package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vidtube/internal/domain"
	"vidtube/internal/pkg/password"
	"vidtube/internal/pkg/storage"
	"vidtube/internal/pkg/token"
)

// Mock user repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *mockUserRepo) SetRefreshTokenHash(ctx context.Context, id int64, hash *string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *mockUserRepo) SwapRefreshTokenHash(ctx context.Context, id int64, oldHash, newHash string) (bool, error) {
	args := m.Called(ctx, id, oldHash, newHash)
	return args.Bool(0), args.Error(1)
}

// Stub uploader; set err to simulate blob store failure.
type stubUploader struct {
	url string
	err error
}

func (s *stubUploader) Upload(ctx context.Context, localPath string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func (s *stubUploader) Remove(ctx context.Context, url string) error { return nil }

func newTestService(users UserRepositoryInterface, uploader storage.Uploader) *Service {
	issuer := token.NewIssuer("test-access", "test-refresh", 15*time.Minute, 7*24*time.Hour)
	hasher := password.NewHasher(password.DefaultCost)
	return NewService(users, issuer, hasher, uploader)
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Username: "Ada",
		Email:    "Ada@X.io",
		FullName: "Ada Lovelace",
		Password: "Secr3t!",
	}
}

func TestService_Register_Success(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByUsernameOrEmail", mock.Anything, "ada", "ada@x.io").Return(false, nil)

	var persisted *domain.User
	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		u := args.Get(1).(*domain.User)
		persisted = &domain.User{}
		*persisted = *u
		u.ID = 1
	}).Return(nil)

	service := newTestService(users, &stubUploader{url: "/static/avatar.png"})

	user, err := service.Register(context.Background(), validRegisterRequest(), "/tmp/avatar.png", "")
	require.NoError(t, err)

	// Response view carries no credential material.
	assert.Empty(t, user.PasswordHash)
	assert.Nil(t, user.RefreshTokenHash)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, "ada@x.io", user.Email)
	assert.Equal(t, "/static/avatar.png", user.AvatarURL)

	// The persisted hash verifies against the plaintext and is not the plaintext.
	require.NotNil(t, persisted)
	assert.NotEqual(t, "Secr3t!", persisted.PasswordHash)
	hasher := password.NewHasher(password.DefaultCost)
	ok, err := hasher.Verify("Secr3t!", persisted.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	users.AssertExpectations(t)
}

func TestService_Register_Conflict(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByUsernameOrEmail", mock.Anything, "ada", "ada@x.io").Return(true, nil)

	service := newTestService(users, &stubUploader{url: "/static/avatar.png"})

	_, err := service.Register(context.Background(), validRegisterRequest(), "/tmp/avatar.png", "")
	assert.ErrorIs(t, err, ErrUserExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_MissingAvatar(t *testing.T) {
	users := new(mockUserRepo)
	service := newTestService(users, &stubUploader{url: "/static/avatar.png"})

	_, err := service.Register(context.Background(), validRegisterRequest(), "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Register_BlankFields(t *testing.T) {
	users := new(mockUserRepo)
	service := newTestService(users, &stubUploader{url: "/static/avatar.png"})

	req := validRegisterRequest()
	req.FullName = "   "

	_, err := service.Register(context.Background(), req, "/tmp/avatar.png", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Register_UploadFailureNothingPersisted(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByUsernameOrEmail", mock.Anything, "ada", "ada@x.io").Return(false, nil)

	service := newTestService(users, &stubUploader{err: storage.ErrUploadFailed})

	_, err := service.Register(context.Background(), validRegisterRequest(), "/tmp/avatar.png", "")
	assert.ErrorIs(t, err, storage.ErrUploadFailed)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func loginUser(t *testing.T, plain string) *domain.User {
	t.Helper()
	hasher := password.NewHasher(password.DefaultCost)
	hash, err := hasher.Hash(plain)
	require.NoError(t, err)
	return &domain.User{
		ID:           10,
		Username:     "ada",
		Email:        "ada@x.io",
		FullName:     "Ada Lovelace",
		PasswordHash: hash,
	}
}

func TestService_Login_Success(t *testing.T) {
	user := loginUser(t, "Secr3t!")

	users := new(mockUserRepo)
	users.On("GetByLogin", mock.Anything, "ada").Return(user, nil)

	var storedHash *string
	users.On("SetRefreshTokenHash", mock.Anything, int64(10), mock.Anything).Run(func(args mock.Arguments) {
		storedHash = args.Get(2).(*string)
	}).Return(nil)

	service := newTestService(users, &stubUploader{})

	result, err := service.Login(context.Background(), LoginRequest{Username: "ada", Password: "Secr3t!"})
	require.NoError(t, err)

	// Both tokens verify independently and carry the right identity.
	issuer := token.NewIssuer("test-access", "test-refresh", 15*time.Minute, 7*24*time.Hour)
	accessClaims, err := issuer.Verify(result.AccessToken, token.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(10), accessClaims.UserID)

	refreshClaims, err := issuer.Verify(result.RefreshToken, token.KindRefresh)
	require.NoError(t, err)
	assert.Equal(t, int64(10), refreshClaims.UserID)

	// The stored value is the hash of the refresh token, never the raw token.
	require.NotNil(t, storedHash)
	assert.Equal(t, hashToken(result.RefreshToken), *storedHash)
	assert.NotEqual(t, result.RefreshToken, *storedHash)

	assert.Empty(t, result.User.PasswordHash)
}

func TestService_Login_WrongPassword(t *testing.T) {
	user := loginUser(t, "Secr3t!")

	users := new(mockUserRepo)
	users.On("GetByLogin", mock.Anything, "ada").Return(user, nil)

	service := newTestService(users, &stubUploader{})

	_, err := service.Login(context.Background(), LoginRequest{Username: "ada", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	users.AssertNotCalled(t, "SetRefreshTokenHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Login_UnknownUser(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByLogin", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(users, &stubUploader{})

	_, err := service.Login(context.Background(), LoginRequest{Username: "nobody", Password: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_Login_NoIdentifier(t *testing.T) {
	users := new(mockUserRepo)
	service := newTestService(users, &stubUploader{})

	_, err := service.Login(context.Background(), LoginRequest{Password: "x"})
	assert.ErrorIs(t, err, ErrValidation)
}

func rotationFixture(t *testing.T) (*Service, *mockUserRepo, *domain.User, string) {
	t.Helper()
	users := new(mockUserRepo)
	service := newTestService(users, &stubUploader{})

	issuer := token.NewIssuer("test-access", "test-refresh", 15*time.Minute, 7*24*time.Hour)
	refresh, err := issuer.IssueRefresh(10)
	require.NoError(t, err)

	hash := hashToken(refresh)
	user := &domain.User{
		ID:               10,
		Username:         "ada",
		Email:            "ada@x.io",
		FullName:         "Ada Lovelace",
		PasswordHash:     "irrelevant",
		RefreshTokenHash: &hash,
	}
	return service, users, user, refresh
}

func TestService_Rotate_Success(t *testing.T) {
	service, users, user, refresh := rotationFixture(t)

	users.On("GetByID", mock.Anything, int64(10)).Return(user, nil)
	users.On("SwapRefreshTokenHash", mock.Anything, int64(10), hashToken(refresh), mock.Anything).Return(true, nil)

	result, err := service.Rotate(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	users.AssertExpectations(t)
}

func TestService_Rotate_StaleTokenRejected(t *testing.T) {
	service, users, user, refresh := rotationFixture(t)

	// Stored hash belongs to a newer token; the presented one was rotated away.
	newer := hashToken("some-newer-token")
	user.RefreshTokenHash = &newer
	users.On("GetByID", mock.Anything, int64(10)).Return(user, nil)

	_, err := service.Rotate(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrUnauthorized)
	users.AssertNotCalled(t, "SwapRefreshTokenHash", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Rotate_AfterLogoutRejected(t *testing.T) {
	service, users, user, refresh := rotationFixture(t)

	user.RefreshTokenHash = nil
	users.On("GetByID", mock.Anything, int64(10)).Return(user, nil)

	_, err := service.Rotate(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_Rotate_LostRaceRejected(t *testing.T) {
	service, users, user, refresh := rotationFixture(t)

	users.On("GetByID", mock.Anything, int64(10)).Return(user, nil)
	// The guarded write fails: a concurrent rotation landed first.
	users.On("SwapRefreshTokenHash", mock.Anything, int64(10), hashToken(refresh), mock.Anything).Return(false, nil)

	_, err := service.Rotate(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_Rotate_MissingToken(t *testing.T) {
	users := new(mockUserRepo)
	service := newTestService(users, &stubUploader{})

	_, err := service.Rotate(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_Rotate_GarbageToken(t *testing.T) {
	users := new(mockUserRepo)
	service := newTestService(users, &stubUploader{})

	_, err := service.Rotate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, token.ErrTokenInvalid)
}

func TestService_Rotate_ExpiredToken(t *testing.T) {
	users := new(mockUserRepo)
	expired := token.NewIssuer("test-access", "test-refresh", -time.Minute, -time.Minute)
	raw, err := expired.IssueRefresh(10)
	require.NoError(t, err)

	service := newTestService(users, &stubUploader{})

	_, err = service.Rotate(context.Background(), raw)
	assert.ErrorIs(t, err, token.ErrTokenExpired)
}

func TestService_Rotate_DeletedUser(t *testing.T) {
	service, users, _, refresh := rotationFixture(t)

	users.On("GetByID", mock.Anything, int64(10)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Rotate(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// fakeUserStore is a minimal real store for the concurrency check: the
// swap is atomic under a mutex the way the database guard is atomic.
type fakeUserStore struct {
	mu   sync.Mutex
	user domain.User
}

func (f *fakeUserStore) Create(ctx context.Context, u *domain.User) error { return nil }
func (f *fakeUserStore) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	return false, nil
}
func (f *fakeUserStore) Update(ctx context.Context, u *domain.User) error { return nil }
func (f *fakeUserStore) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.user
	if u.RefreshTokenHash != nil {
		h := *u.RefreshTokenHash
		u.RefreshTokenHash = &h
	}
	return &u, nil
}

func (f *fakeUserStore) SetRefreshTokenHash(ctx context.Context, id int64, hash *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user.RefreshTokenHash = hash
	return nil
}

func (f *fakeUserStore) SwapRefreshTokenHash(ctx context.Context, id int64, oldHash, newHash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.user.RefreshTokenHash == nil || *f.user.RefreshTokenHash != oldHash {
		return false, nil
	}
	f.user.RefreshTokenHash = &newHash
	return true, nil
}

func TestService_Rotate_ConcurrentSingleWinner(t *testing.T) {
	issuer := token.NewIssuer("test-access", "test-refresh", 15*time.Minute, 7*24*time.Hour)
	refresh, err := issuer.IssueRefresh(10)
	require.NoError(t, err)

	hash := hashToken(refresh)
	store := &fakeUserStore{user: domain.User{
		ID:               10,
		Username:         "ada",
		Email:            "ada@x.io",
		FullName:         "Ada Lovelace",
		PasswordHash:     "irrelevant",
		RefreshTokenHash: &hash,
	}}

	service := NewService(store, issuer, password.NewHasher(password.DefaultCost), &stubUploader{})

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Rotate(context.Background(), refresh)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrUnauthorized)
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent rotation may win")
}

func TestService_Logout_Idempotent(t *testing.T) {
	users := new(mockUserRepo)
	users.On("SetRefreshTokenHash", mock.Anything, int64(10), (*string)(nil)).Return(nil).Twice()

	service := newTestService(users, &stubUploader{})

	require.NoError(t, service.Logout(context.Background(), 10))
	require.NoError(t, service.Logout(context.Background(), 10))
	users.AssertExpectations(t)
}

func TestService_LogoutThenRotateRejected(t *testing.T) {
	issuer := token.NewIssuer("test-access", "test-refresh", 15*time.Minute, 7*24*time.Hour)
	refresh, err := issuer.IssueRefresh(10)
	require.NoError(t, err)

	hash := hashToken(refresh)
	store := &fakeUserStore{user: domain.User{ID: 10, RefreshTokenHash: &hash}}
	service := NewService(store, issuer, password.NewHasher(password.DefaultCost), &stubUploader{})

	require.NoError(t, service.Logout(context.Background(), 10))

	_, err = service.Rotate(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_ChangePassword_WrongOld(t *testing.T) {
	user := loginUser(t, "old-password")

	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(10)).Return(user, nil)

	service := newTestService(users, &stubUploader{})

	err := service.ChangePassword(context.Background(), 10, "guess", "new-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	users.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ChangePassword_Success(t *testing.T) {
	user := loginUser(t, "old-password")

	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(10)).Return(user, nil)

	var newHash string
	users.On("UpdatePasswordHash", mock.Anything, int64(10), mock.Anything).Run(func(args mock.Arguments) {
		newHash = args.Get(2).(string)
	}).Return(nil)

	service := newTestService(users, &stubUploader{})

	require.NoError(t, service.ChangePassword(context.Background(), 10, "old-password", "new-password"))

	hasher := password.NewHasher(password.DefaultCost)
	ok, err := hasher.Verify("new-password", newHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// The active session survives a password change.
	users.AssertNotCalled(t, "SetRefreshTokenHash", mock.Anything, mock.Anything, mock.Anything)
}
