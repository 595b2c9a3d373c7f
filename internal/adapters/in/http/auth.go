package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/kernel"
)

const (
	actorIDKey   = "actorID"
	actorRoleKey = "actorRole"
)

// Claims is the JWT payload: subject is the user id, role the account role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and verifies the bearer tokens handed out at login.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer with the given signing secret and token
// lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the account.
func (i *TokenIssuer) Issue(user *account.User, now time.Time) (string, error) {
	claims := Claims{
		Role: user.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// parse verifies a token string and returns its claims.
func (i *TokenIssuer) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Authenticate rejects requests without a valid bearer token and stores the
// actor's identity on the request context.
func (i *TokenIssuer) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			return respond(ctx, http.StatusUnauthorized, "Missing bearer token")
		}

		claims, err := i.parse(tokenString)
		if err != nil {
			return respond(ctx, http.StatusUnauthorized, "Invalid or expired token")
		}

		actorID, err := kernel.UUIDFromString(claims.Subject)
		if err != nil {
			return respond(ctx, http.StatusUnauthorized, "Invalid or expired token")
		}
		role, err := account.ParseRole(claims.Role)
		if err != nil {
			return respond(ctx, http.StatusUnauthorized, "Invalid or expired token")
		}

		ctx.Set(actorIDKey, actorID)
		ctx.Set(actorRoleKey, role)
		return next(ctx)
	}
}

// RequireRole allows only the listed roles past it. It runs after
// Authenticate.
func RequireRole(roles ...account.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			role := actorRole(ctx)
			for _, allowed := range roles {
				if role == allowed {
					return next(ctx)
				}
			}
			return respond(ctx, http.StatusForbidden, "Insufficient permissions")
		}
	}
}

func actorID(ctx echo.Context) kernel.UUID {
	id, _ := ctx.Get(actorIDKey).(kernel.UUID)
	return id
}

func actorRole(ctx echo.Context) account.Role {
	role, _ := ctx.Get(actorRoleKey).(account.Role)
	return role
}
