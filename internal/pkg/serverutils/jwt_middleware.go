package serverutils

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware authenticates a Bearer token and stores the subject as
// user_id in request locals.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token subject")
	}

	ctx.Locals("user_id", sub)
	if isAdmin, ok := claims["is_admin"].(bool); ok {
		ctx.Locals("is_admin", isAdmin)
	}
	return ctx.Next()
}

// AdminOnly rejects requests whose token does not carry the admin claim.
// Must run after JwtMiddleware.
func AdminOnly(ctx *fiber.Ctx) error {
	if isAdmin, ok := ctx.Locals("is_admin").(bool); !ok || !isAdmin {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}
	return ctx.Next()
}
