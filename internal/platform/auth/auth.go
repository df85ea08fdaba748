package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Service authenticates staff against the configured credential set and
// issues signed session tokens. Credentials are compared in plaintext, the
// way the registry has always been deployed; the operator-facing surface is a
// small trusted staff list, not a public signup flow.
type Service struct {
	users    map[string]string
	secret   []byte
	tokenTTL time.Duration
}

func NewService(users map[string]string, secret string, tokenTTL time.Duration) *Service {
	return &Service{users: users, secret: []byte(secret), tokenTTL: tokenTTL}
}

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Login verifies the username/password pair and returns a signed token.
func (s *Service) Login(username, password string) (string, error) {
	want, ok := s.users[username]
	if !ok || want != password {
		return "", fmt.Errorf("invalid username or password")
	}

	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Middleware enforces a Bearer token on every request and stores the
// authenticated username on the context.
func Middleware(svc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := svc.Verify(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set("username", claims.Username)
			return next(c)
		}
	}
}

// DevMiddleware grants every request an authenticated identity. Development
// only.
func DevMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("username", "dev")
			return next(c)
		}
	}
}

// LoginHandler handles POST /auth/login.
func LoginHandler(svc *Service) echo.HandlerFunc {
	type loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	return func(c echo.Context) error {
		var req loginRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		token, err := svc.Login(req.Username, req.Password)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		return c.JSON(http.StatusOK, map[string]string{"token": token})
	}
}
