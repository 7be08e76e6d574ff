package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/arif404/devconnector/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FirebaseAuthMiddleware verifies Firebase ID tokens directly, resolving
// the local user so handlers see the same "userID" key the JWT middleware
// sets. An alternative to JWTAuthMiddleware for clients that send Firebase
// tokens on every request instead of exchanging them for a local JWT.
func FirebaseAuthMiddleware(authClient *auth.Client, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			token, err := authClient.VerifyIDToken(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			user, err := userRepo.GetUserByFirebaseUID(token.UID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "No local account for this Firebase user")
			}

			c.Set("firebaseToken", token)
			c.Set("userID", strconv.FormatUint(uint64(user.ID), 10))

			return next(c)
		}
	}
}
