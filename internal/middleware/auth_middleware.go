package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/app/models/dto"
	"github.com/yigit/scholars/internal/pkg/apperrors"
	"github.com/yigit/scholars/internal/pkg/auth"
	"github.com/yigit/scholars/internal/pkg/email"
)

// Context keys set by the auth middleware
const (
	ActorKey  = "actor"
	UserIDKey = "userID"
	EmailKey  = "email"
)

// AuthMiddleware for authentication
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// tokenSource returns the raw credential sent by the client. The query parameter is
// accepted for Swagger UI.
func tokenSource(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		return h
	}
	return c.Query("authorization")
}

func (m *AuthMiddleware) authenticate(c *gin.Context, raw string) bool {
	tokenString, err := auth.ExtractBearerToken(raw)
	if err == nil {
		var claims *auth.Claims
		claims, err = m.jwtService.ValidateAndExtractClaims(tokenString)
		if err == nil {
			c.Set(UserIDKey, claims.UserID)
			c.Set(EmailKey, claims.Email)
			setActor(c, models.UserActor(claims.UserID))
			return true
		}
	}

	errorCode := dto.ErrorCodeInvalidToken
	details := "Invalid token"
	switch {
	case errors.Is(err, apperrors.ErrTokenExpired):
		errorCode = dto.ErrorCodeExpiredToken
		details = "Token has expired"
	case errors.Is(err, apperrors.ErrInvalidFormat):
		details = "Invalid token format"
	}

	errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	return false
}

// JWTAuth requires a valid access token
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenSource(c)
		if raw == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if m.authenticate(c, raw) {
			c.Next()
		}
	}
}

// OptionalJWTAuth lets anonymous requests through as the anonymous actor. A token that is
// present but invalid is still rejected.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenSource(c)
		if raw == "" {
			setActor(c, models.AnonymousActor())
			c.Next()
			return
		}

		if m.authenticate(c, raw) {
			c.Next()
		}
	}
}

func setActor(c *gin.Context, actor models.Actor) {
	c.Set(ActorKey, actor)

	ctx := c.Request.Context()
	if info, ok := email.RequestInfoFrom(ctx); ok {
		info.ActorID = actor.Ref()
		c.Request = c.Request.WithContext(email.WithRequestInfo(ctx, info))
	}
}

// ActorFromContext returns the actor resolved by the auth middleware, or the anonymous actor
func ActorFromContext(c *gin.Context) models.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.AnonymousActor()
}
