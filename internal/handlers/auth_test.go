package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arif404/devconnector/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerSuite struct {
	suite.Suite

	e       *echo.Echo
	users   *fakeUserRepo
	handler *AuthHandler
}

func TestAuthHandler(t *testing.T) {
	suite.Run(t, &AuthHandlerSuite{})
}

func (s *AuthHandlerSuite) SetupTest() {
	s.e = echo.New()
	s.users = newFakeUserRepo()
	s.handler = NewAuthHandler(s.users, nil, "test-secret")
}

func (s *AuthHandlerSuite) postJSON(body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return s.e.NewContext(req, rec), rec
}

func (s *AuthHandlerSuite) TestSignup() {
	c, rec := s.postJSON(`{"name":"Alice","email":"alice@example.com","password":"hunter2hunter2"}`)
	s.Require().NoError(s.handler.Signup(c))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var resp map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.NotEmpty(resp["token"])

	// The issued token carries the new user's id
	claims := &models.JwtCustomClaims{}
	_, err := jwt.ParseWithClaims(resp["token"], claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	s.Require().NoError(err)
	s.Equal(uint(1), claims.UserID)

	user, err := s.users.GetUserByEmail("alice@example.com")
	s.Require().NoError(err)
	s.Equal("Alice", user.Name)
	s.Contains(user.Avatar, "gravatar.com/avatar/")
	s.NotEqual("hunter2hunter2", user.Password)
}

func (s *AuthHandlerSuite) TestSignupDuplicateEmail() {
	c, _ := s.postJSON(`{"name":"Alice","email":"alice@example.com","password":"hunter2hunter2"}`)
	s.Require().NoError(s.handler.Signup(c))

	c, _ = s.postJSON(`{"name":"Other Alice","email":"alice@example.com","password":"hunter2hunter2"}`)
	err := s.handler.Signup(c)
	he, ok := err.(*echo.HTTPError)
	s.Require().True(ok)
	s.Equal(http.StatusConflict, he.Code)
}

func (s *AuthHandlerSuite) TestSignupInvalidEmail() {
	c, _ := s.postJSON(`{"name":"Alice","email":"not-an-email","password":"hunter2hunter2"}`)
	err := s.handler.Signup(c)
	he, ok := err.(*echo.HTTPError)
	s.Require().True(ok)
	s.Equal(http.StatusBadRequest, he.Code)
}

func (s *AuthHandlerSuite) TestSignIn() {
	c, _ := s.postJSON(`{"name":"Alice","email":"alice@example.com","password":"hunter2hunter2"}`)
	s.Require().NoError(s.handler.Signup(c))

	c, rec := s.postJSON(`{"email":"alice@example.com","password":"hunter2hunter2"}`)
	s.Require().NoError(s.handler.SignIn(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.NotEmpty(resp["token"])
}

func (s *AuthHandlerSuite) TestSignInWrongPassword() {
	c, _ := s.postJSON(`{"name":"Alice","email":"alice@example.com","password":"hunter2hunter2"}`)
	s.Require().NoError(s.handler.Signup(c))

	c, _ = s.postJSON(`{"email":"alice@example.com","password":"wrong-password"}`)
	err := s.handler.SignIn(c)
	he, ok := err.(*echo.HTTPError)
	s.Require().True(ok)
	s.Equal(http.StatusUnauthorized, he.Code)
}

func (s *AuthHandlerSuite) TestSignInUnknownEmail() {
	c, _ := s.postJSON(`{"email":"nobody@example.com","password":"whatever1"}`)
	err := s.handler.SignIn(c)
	he, ok := err.(*echo.HTTPError)
	s.Require().True(ok)
	s.Equal(http.StatusUnauthorized, he.Code)
}

func TestGravatarURL(t *testing.T) {
	// Case and surrounding whitespace never change the derived avatar
	a := gravatarURL("Alice@Example.com ")
	b := gravatarURL("alice@example.com")
	if a != b {
		t.Fatalf("gravatar URL not normalized: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "https://www.gravatar.com/avatar/") {
		t.Fatalf("unexpected gravatar URL: %q", a)
	}
}
