package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"thenest/internal/domain"
	"thenest/internal/pkg/jwt"
	"thenest/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by RequireUser and AdminAuth.
const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// TokenValidator is satisfied by *jwt.Service.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// UserLookup is satisfied by *repository.UserRepository.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// bearer extracts the token from the Authorization header or aborts with 401.
func bearer(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Chybí hlavička Authorization")
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Očekává se Bearer token")
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// approvedUser resolves a JWT to a user that is still approved.
func approvedUser(c *gin.Context, token string, tokens TokenValidator, users UserLookup) (*domain.User, bool) {
	claims, err := tokens.ValidateToken(token)
	if err != nil {
		response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Neplatný nebo expirovaný token")
		return nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Neplatný nebo expirovaný token")
		return nil, false
	}
	u, err := users.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Uživatel neexistuje")
		return nil, false
	}
	if u.Status != domain.UserApproved {
		response.Abort(c, http.StatusForbidden, "ACCOUNT_NOT_APPROVED", "Účet není schválen")
		return nil, false
	}
	return u, true
}

// RequireUser admits requests carrying a valid JWT of an approved user.
// Status is re-read on every request so a rejection takes effect immediately.
func RequireUser(tokens TokenValidator, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c)
		if !ok {
			return
		}
		u, ok := approvedUser(c, token, tokens, users)
		if !ok {
			return
		}
		c.Set(UserIDKey, u.ID)
		c.Set(RoleKey, string(u.Role))
		c.Next()
	}
}

// AdminAuth admits the shared admin password, or a JWT of an approved user
// holding the admin role.
func AdminAuth(password string, tokens TokenValidator, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c)
		if !ok {
			return
		}
		if password != "" && subtle.ConstantTimeCompare([]byte(token), []byte(password)) == 1 {
			c.Set(RoleKey, string(domain.RoleAdmin))
			c.Next()
			return
		}
		if strings.Count(token, ".") != 2 {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Neplatné heslo správce")
			return
		}
		u, ok := approvedUser(c, token, tokens, users)
		if !ok {
			return
		}
		if u.Role != domain.RoleAdmin {
			response.Abort(c, http.StatusForbidden, response.CodeForbidden, "Přístup jen pro správce")
			return
		}
		c.Set(UserIDKey, u.ID)
		c.Set(RoleKey, string(u.Role))
		c.Next()
	}
}

// UserID returns the authenticated user's id, if any.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
