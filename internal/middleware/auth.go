package middleware

import (
	stderrors "errors"
	"strings"

	"finance-tracker/internal/config"
	"finance-tracker/internal/errors"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// UserIDContextKey holds the authenticated user's UUID
	UserIDContextKey = "user_id"
	// UserEmailContextKey holds the email claim of the token
	UserEmailContextKey = "user_email"

	accessTokenType = "access"
	bearerPrefix    = "Bearer "
)

var (
	errMalformedHeader = stderrors.New("authorization header must be a bearer token")
	errWrongTokenType  = stderrors.New("token is not an access token")
)

// RequireAuth verifies RS256 bearer tokens minted by the identity provider and
// rejects requests whose :userId path parameter names a different user.
func RequireAuth(cfg config.AuthConfig) echo.MiddlewareFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			tokenString, err := extractBearerToken(authHeader)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			claims := &models.CustomClaims{}
			_, err = parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
				return cfg.PublicKey, nil
			})
			if err != nil {
				if stderrors.Is(err, jwt.ErrTokenExpired) {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			if claims.TokenType != accessTokenType {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails(errWrongTokenType.Error()))
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails("Invalid user ID in token"))
			}

			if pathUser := c.Param(handlers.UserIDParam); pathUser != "" {
				if pathID, err := uuid.Parse(pathUser); err != nil || pathID != userID {
					return handlers.SendError(c, errors.AuthInsufficientPermission)
				}
			}

			c.Set(UserIDContextKey, userID)
			c.Set(UserEmailContextKey, claims.Email)

			return next(c)
		}
	}
}

func extractBearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", errMalformedHeader
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", errMalformedHeader
	}
	return token, nil
}
