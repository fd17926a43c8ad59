package middleware

import (
	"alvant-portal/internal/delivery/http/response"
	"alvant-portal/internal/domain"
	"alvant-portal/pkg/apperror"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware admits requests carrying a valid admin bearer token.
func AuthMiddleware(authUC domain.AdminAuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		claims, err := authUC.VerifyToken(c.Request.Context(), tokenString)
		if err != nil {
			code, msg := http.StatusUnauthorized, "Invalid token"
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				code, msg = appErr.Code, appErr.Message
			}
			response.Error(c, code, msg, nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyAdminEmail), claims.Email)
		c.Set(string(domain.KeyTokenID), claims.TokenID)
		c.Set(string(domain.KeyTokenExp), claims.ExpiresAt)

		ctx := context.WithValue(c.Request.Context(), domain.KeyAdminEmail, claims.Email)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ClaimsFromContext rebuilds the claims AuthMiddleware stored.
func ClaimsFromContext(c *gin.Context) (*domain.AdminClaims, bool) {
	email := c.GetString(string(domain.KeyAdminEmail))
	id := c.GetString(string(domain.KeyTokenID))
	if email == "" || id == "" {
		return nil, false
	}
	return &domain.AdminClaims{
		Email:     email,
		TokenID:   id,
		ExpiresAt: c.GetTime(string(domain.KeyTokenExp)),
	}, true
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
