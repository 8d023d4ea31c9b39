package auth

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"vidtube/internal/domain"
	"vidtube/internal/pkg/response"
	"vidtube/internal/pkg/storage"
	"vidtube/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// CookieConfig controls the transport-level token artifacts. Tokens go out
// both in the JSON body and as httpOnly cookies; the cookies are the copy
// client script can never read.
type CookieConfig struct {
	Secure        bool
	SameSite      http.SameSite
	Path          string
	AccessMaxAge  int
	RefreshMaxAge int
}

// Handler manages all HTTP interactions for identity and sessions.
type Handler struct {
	service *Service
	cookies CookieConfig
}

func NewHandler(service *Service, cookies CookieConfig) *Handler {
	return &Handler{service: service, cookies: cookies}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/change-password", h.ChangePassword)
	}
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
		userGroup.PATCH("/me", h.UpdateProfile)
		userGroup.PATCH("/me/avatar", h.UpdateAvatar)
		userGroup.PATCH("/me/cover", h.UpdateCoverImage)
	}
}

// Register creates an account from a multipart form: text fields plus a
// required avatar file and an optional coverImage file.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Avatar file is required")
		return
	}
	avatarPath, err := saveTempUpload(c, avatarFile)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to accept avatar file")
		return
	}

	var coverPath string
	if coverFile, err := c.FormFile("coverImage"); err == nil {
		if coverPath, err = saveTempUpload(c, coverFile); err != nil {
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to accept cover image")
			return
		}
	}

	user, err := h.service.Register(c.Request.Context(), req, avatarPath, coverPath)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrUserExists):
			response.Error(c, http.StatusConflict, "CONFLICT", "User with this username or email already exists")
		case errors.Is(err, storage.ErrUploadFailed):
			response.Error(c, http.StatusBadRequest, "UPLOAD_FAILED", "Avatar upload failed")
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": NewUserView(user)}, "User registered successfully")
}

// Login verifies credentials and returns a fresh token pair, duplicated
// into httpOnly cookies.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User does not exist")
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Password is incorrect")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	h.setTokenCookies(c, result.AccessToken, result.RefreshToken)
	response.Success(c, http.StatusOK, gin.H{
		"user":         NewUserView(result.User),
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	}, "Logged in successfully")
}

// Refresh rotates the refresh token. The token comes from the cookie when
// present, falling back to the JSON body.
func (h *Handler) Refresh(c *gin.Context) {
	presented, _ := c.Cookie(RefreshTokenCookie)
	if presented == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	result, err := h.service.Rotate(c.Request.Context(), presented)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrTokenExpired):
			response.Error(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Refresh token expired, please login again")
		case errors.Is(err, token.ErrTokenInvalid):
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Refresh token is invalid")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User does not exist")
		case errors.Is(err, ErrUnauthorized):
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Refresh token is used or expired")
		default:
			response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh session")
		}
		return
	}

	h.setTokenCookies(c, result.AccessToken, result.RefreshToken)
	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	}, "Session refreshed")
}

func (h *Handler) Logout(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
		return
	}

	h.clearTokenCookies(c)
	response.Success(c, http.StatusOK, nil, "Logged out successfully")
}

func (h *Handler) ChangePassword(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Old password is incorrect")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to change password")
		}
		return
	}

	response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User does not exist")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": NewUserView(user)}, "Current user")
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			response.Error(c, http.StatusConflict, "CONFLICT", "Email already in use")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update profile")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": NewUserView(user)}, "Profile updated")
}

func (h *Handler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.service.UpdateAvatar)
}

func (h *Handler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", h.service.UpdateCoverImage)
}

func (h *Handler) updateImage(c *gin.Context, field string, update func(ctx context.Context, userID int64, localPath string) (*domain.User, error)) {
	userID := c.GetInt64("user_id")

	file, err := c.FormFile(field)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Image file is required")
		return
	}
	localPath, err := saveTempUpload(c, file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to accept image file")
		return
	}

	user, err := update(c.Request.Context(), userID, localPath)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User does not exist")
		case errors.Is(err, storage.ErrUploadFailed):
			response.Error(c, http.StatusBadRequest, "UPLOAD_FAILED", "Image upload failed")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update image")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": NewUserView(user)}, "Image updated")
}

func (h *Handler) setTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(AccessTokenCookie, accessToken, h.cookies.AccessMaxAge, h.cookies.Path, "", h.cookies.Secure, true)
	c.SetCookie(RefreshTokenCookie, refreshToken, h.cookies.RefreshMaxAge, h.cookies.Path, "", h.cookies.Secure, true)
}

func (h *Handler) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(AccessTokenCookie, "", -1, h.cookies.Path, "", h.cookies.Secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, h.cookies.Path, "", h.cookies.Secure, true)
}

func saveTempUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	path := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}
