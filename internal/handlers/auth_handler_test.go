package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "goldbook/internal/errors"
	"goldbook/internal/identity"
	"goldbook/internal/models"
)

type mockUserService struct {
	createUserFn     func(email, password, fullName string) (*models.User, error)
	getUserByEmailFn func(email string) (*models.User, error)
	getUserByIDFn    func(id string) (*models.User, error)
	verifyPasswordFn func(user *models.User, password string) bool
	attemptLoginFn   func(email, password string) (*models.User, error)
}

func (m *mockUserService) CreateUser(email, password, fullName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, fullName)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{}, nil
}

var testIssuer = identity.NewIssuer("handler-test-secret", time.Hour)

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.GET("/profile", injectUserID("user-1"), handler.GetProfile)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(email, _, fullName string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: "user-1"}, Email: email, FullName: fullName}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupAuthRouter(NewAuthHandler(userSvc, audit, testIssuer))

		rec := doRequest(r, "POST", "/auth/register",
			`{"email":"test@example.com","password":"password123","full_name":"Jane Doe"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		token, _ := result["token"].(string)
		claims, err := testIssuer.Validate(token)
		if err != nil {
			t.Fatalf("expected a valid token, got %v", err)
		}
		if claims.UserID != "user-1" {
			t.Errorf("expected token for user-1, got %q", claims.UserID)
		}
		user := result["user"].(map[string]interface{})
		if user["email"] != "test@example.com" || user["full_name"] != "Jane Doe" {
			t.Errorf("unexpected user %v", user)
		}
		if len(audit.calls) != 1 || audit.calls[0].Action != "REGISTER" {
			t.Errorf("expected one REGISTER audit entry, got %+v", audit.calls)
		}
	})

	t.Run("returns 400 on missing email", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, &mockAuditService{}, testIssuer))

		rec := doRequest(r, "POST", "/auth/register", `{"password":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "VALIDATION_ERROR")
		assertErrorField(t, result, "email")
	})

	t.Run("returns 400 on short password", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, &mockAuditService{}, testIssuer))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"test@example.com","password":"short"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorField(t, parseJSON(t, rec), "password")
	})

	t.Run("returns 400 on malformed json", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, &mockAuditService{}, testIssuer))

		rec := doRequest(r, "POST", "/auth/register", `{"email":`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(_, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, &mockAuditService{}, testIssuer))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"dup@example.com","password":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(email, _ string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: "user-1"}, Email: email}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupAuthRouter(NewAuthHandler(userSvc, audit, testIssuer))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] == nil || result["token"] == "" {
			t.Error("expected non-empty token")
		}
		if len(audit.calls) != 1 || audit.calls[0].Action != "LOGIN" {
			t.Errorf("expected one LOGIN audit entry, got %+v", audit.calls)
		}
	})

	t.Run("returns 401 on invalid credentials", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, &mockAuditService{}, testIssuer))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"test@example.com","password":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 400 on missing fields", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, &mockAuditService{}, testIssuer))

		rec := doRequest(r, "POST", "/auth/login", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_GetProfile(t *testing.T) {
	t.Run("returns 200 with user profile", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(id string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: id}, Email: "test@example.com", FullName: "Jane Doe"}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, &mockAuditService{}, testIssuer))

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		user := parseJSON(t, rec)["user"].(map[string]interface{})
		if user["id"] != "user-1" || user["full_name"] != "Jane Doe" {
			t.Errorf("unexpected profile %v", user)
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockAuditService{}, testIssuer)
		r := gin.New()
		r.GET("/profile", handler.GetProfile)

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when user not found", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(_ string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, &mockAuditService{}, testIssuer))

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
