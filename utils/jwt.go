package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"kisanmandi_backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller. The auth middleware resolves it
// once per request; handlers take it as an explicit value instead of
// reading ambient session state.
type Identity struct {
	UserID uint
	Role   models.Role
}

const identityKey = "identity"

// DefaultJWTSecret is the insecure local-development signing key, used
// when no JWT_SECRET is configured. Production deployments must
// override it.
const DefaultJWTSecret = "dev-secret-key-change-in-production"

var (
	errNoIdentity = errors.New("no authenticated identity on request")

	signingSecret []byte
)

// SetJWTSecret installs the signing key from configuration. When never
// called, signing falls back to the environment and DefaultJWTSecret.
func SetJWTSecret(secret string) {
	if secret != "" {
		signingSecret = []byte(secret)
	}
}

func jwtSecret() []byte {
	if len(signingSecret) > 0 {
		return signingSecret
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = DefaultJWTSecret
	}
	return []byte(secret)
}

// GenerateToken issues a signed bearer token for the user.
func GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// AuthMiddleware verifies the bearer token and stores the caller's
// Identity on the request context.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "No Token Provided",
		})
	}

	var tokenString string
	fmt.Sscanf(authHeader, "Bearer %s", &tokenString)

	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Token format is invalid",
		})
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})

	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Token is invalid",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token claims",
		})
	}

	if exp, ok := claims["exp"].(float64); ok {
		if time.Now().Unix() > int64(exp) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token has expired",
			})
		}
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token claims",
		})
	}

	roleStr, _ := claims["role"].(string)
	role := models.Role(roleStr)
	if !role.Valid() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token claims",
		})
	}

	c.Locals(identityKey, Identity{
		UserID: uint(userIDFloat),
		Role:   role,
	})

	return c.Next()
}

// IdentityFromCtx returns the Identity stored by AuthMiddleware.
func IdentityFromCtx(c *fiber.Ctx) (Identity, error) {
	identity, ok := c.Locals(identityKey).(Identity)
	if !ok {
		return Identity{}, errNoIdentity
	}
	return identity, nil
}
