package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-be/internal/apperr"
	"github.com/taskflow/taskflow-be/internal/auth"
	"github.com/taskflow/taskflow-be/internal/models"
)

type fakeUserService struct {
	registerFn func(email, username, password string) (int64, error)
	authFn     func(email, password string) (models.User, error)
	getFn      func(id int64) (models.User, error)
}

func (f *fakeUserService) Register(email, username, password string) (int64, error) {
	if f.registerFn != nil {
		return f.registerFn(email, username, password)
	}
	return 0, nil
}

func (f *fakeUserService) AuthenticateUser(email, password string) (models.User, error) {
	if f.authFn != nil {
		return f.authFn(email, password)
	}
	return models.User{}, apperr.ErrInvalidCredentials
}

func (f *fakeUserService) GetUserByID(id int64) (models.User, error) {
	if f.getFn != nil {
		return f.getFn(id)
	}
	return models.User{}, apperr.ErrNotFound
}

func TestRegister_Success(t *testing.T) {
	svc := &fakeUserService{
		registerFn: func(email, username, password string) (int64, error) { return 12, nil },
	}
	h := NewAuthHandler(svc)

	body := strings.NewReader(`{"email":"a@example.com","username":"alice","password":"secret123"}`)
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 12, resp["userId"])
}

func TestRegister_ValidationAndConflict(t *testing.T) {
	svc := &fakeUserService{
		registerFn: func(email, username, password string) (int64, error) {
			if len(password) < 6 {
				return 0, apperr.Validation("Password must be at least 6 characters")
			}
			return 0, apperr.ErrConflict
		},
	}
	h := NewAuthHandler(svc)

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"a@example.com","username":"alice","password":"12345"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 6 characters")

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"a@example.com","username":"alice","password":"secret123"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestRegister_BadBody(t *testing.T) {
	h := NewAuthHandler(&fakeUserService{})

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{notjson`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&fakeUserService{})

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"ghost@example.com","password":"nope"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// One message regardless of whether the email or the password failed.
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	auth.Init("test-secret")
	svc := &fakeUserService{
		authFn: func(email, password string) (models.User, error) {
			return models.User{ID: 3, Email: email, Username: "alice"}, nil
		},
	}
	h := NewAuthHandler(svc)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"a@example.com","password":"secret123"}`)))

	require.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "expected a token cookie")
	assert.True(t, cookie.HttpOnly)

	claims, err := auth.ValidateJWT(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
}

func TestLogout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&fakeUserService{})

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}
