package middleware

import (
	"net/http"
	"strings"
	"time"

	"marketplace/api/response"
	"marketplace/config"
	"marketplace/domain/shared"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ActorKey is the gin context key holding the authenticated actor.
const ActorKey = "actor"

// AuthMiddleware verifies a Bearer token when one is present and stores the
// actor in the gin context. Requests without a token pass through as
// anonymous; RequireAuth gates the endpoints that need an actor.
func AuthMiddleware(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthenticated(c, "Invalid authorization header format")
			return
		}

		actor, err := parseToken(parts[1], cfg.JWTSecret)
		if err != nil {
			abortUnauthenticated(c, "Invalid or expired token")
			return
		}

		c.Set(ActorKey, actor)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ActorFromContext(c).IsZero() {
			abortUnauthenticated(c, "Authentication required")
			return
		}
		c.Next()
	}
}

// ActorFromContext returns the authenticated actor, zero when anonymous.
func ActorFromContext(c *gin.Context) shared.Actor {
	if v, exists := c.Get(ActorKey); exists {
		if actor, ok := v.(shared.Actor); ok {
			return actor
		}
	}
	return shared.Actor{}
}

func parseToken(tokenString, secret string) (shared.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return shared.Actor{}, jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return shared.Actor{}, jwt.ErrTokenInvalidClaims
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return shared.Actor{}, jwt.ErrTokenInvalidClaims
	}

	role := shared.RoleUser
	if raw, ok := claims["role"].(string); ok {
		role = shared.ParseRole(raw)
	}

	return shared.Actor{ID: userID, Role: role}, nil
}

// GenerateToken issues an HS256 token for an actor. Used by tests and dev
// tooling; account management itself lives outside this service.
func GenerateToken(secret string, actor shared.Actor, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": actor.ID,
		"role":    string(actor.Role),
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func abortUnauthenticated(c *gin.Context, message string) {
	requestID, _ := c.Get(response.RequestIDKey)
	reqID, _ := requestID.(string)

	c.AbortWithStatusJSON(http.StatusUnauthorized, response.Response{
		Success:   false,
		Error:     "UNAUTHENTICATED",
		Message:   message,
		Code:      http.StatusUnauthorized,
		RequestID: reqID,
	})
}
