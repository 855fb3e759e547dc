package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const staffIDKey = "staffID"

var ErrStaffNotAuthenticated = errors.New("request carries no authenticated staff member")

// RequireStaff authenticates mutating requests with an HS256 bearer token
// whose subject is the staff member's UUID. Safe methods pass through.
func RequireStaff(secret []byte) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			switch ctx.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(ctx)
			}

			raw, ok := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims := &jwt.RegisteredClaims{}
			_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
				return secret, nil
			})
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token").SetInternal(err)
			}

			staffID, err := kernel.UUIDFromString(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "token subject is not a staff id").SetInternal(err)
			}

			ctx.Set(staffIDKey, staffID)
			return next(ctx)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// StaffID returns the staff member authenticated by RequireStaff.
func StaffID(ctx echo.Context) (kernel.UUID, error) {
	staffID, ok := ctx.Get(staffIDKey).(kernel.UUID)
	if !ok {
		return kernel.UUID{}, ErrStaffNotAuthenticated
	}
	return staffID, nil
}

// SignStaffToken issues a token accepted by RequireStaff.
func SignStaffToken(secret []byte, staffID kernel.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   staffID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
