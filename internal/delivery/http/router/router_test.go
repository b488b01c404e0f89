package router

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"minibank/config"
	"minibank/internal/delivery/http/middleware"
	"minibank/internal/delivery/http/response"
	"minibank/internal/delivery/http/router/handler"
	"minibank/internal/delivery/http/validator"
	"minibank/internal/domain/entity"
	domainerrors "minibank/internal/domain/errors"
	"minibank/internal/domain/service"
	"minibank/internal/infra/auth"
	mockusecase "minibank/internal/mocks/usecase"
	"minibank/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newTestServer wires the routes exactly as the HTTP server does: real
// validator, real token service, real auth and error middleware, mocked
// usecase underneath.
func newTestServer(t *testing.T) (*echo.Echo, *mockusecase.MockUserUsecase, service.TokenService) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.SecretKey.Access = "router-test-secret"
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	userUC := mockusecase.NewMockUserUsecase(t)
	userHandler := handler.NewUserHandler(handler.UserHandlerParams{
		UserUC: userUC,
		Logger: logger,
	})

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := NewRouter(RouterParams{
		UserHandler:    userHandler,
		AuthMiddleware: middleware.NewAuthMiddleware(tokenSvc),
	})
	r.RegisterRoutes(e)

	return e, userUC, tokenSvc
}

func doRequest(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp.Error
}

func storedUser(id uuid.UUID) *entity.User {
	now := time.Now().UTC().Truncate(time.Second)

	return &entity.User{
		ID:             id,
		Email:          "alice@example.com",
		FirstName:      "Alice",
		LastName:       "Lidell",
		PasswordHash:   "$2a$12$abcdefghijklmnopqrstuv",
		HasBankAccount: false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestRoutes_HealthIsPublic(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestRoutes_RegisterIsPublic(t *testing.T) {
	e, userUC, _ := newTestServer(t)
	userID := uuid.New()

	userUC.EXPECT().RegisterUser(mock.Anything, mock.Anything).
		Return(&usecase.AuthOutput{User: storedUser(userID), Token: "signed.jwt.token"}, nil)

	body := `{"email": "alice@example.com", "password": "correct horse battery", "firstName": "Alice", "lastName": "Lidell"}`
	rec := doRequest(e, http.MethodPost, "/api/v1/users", "", body)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.token", resp.Token)
}

func TestRoutes_LoginIsPublic(t *testing.T) {
	e, userUC, _ := newTestServer(t)
	userID := uuid.New()

	userUC.EXPECT().Login(mock.Anything, mock.Anything).
		Return(&usecase.AuthOutput{User: storedUser(userID), Token: "signed.jwt.token"}, nil)

	body := `{"email": "alice@example.com", "password": "correct horse battery"}`
	rec := doRequest(e, http.MethodPost, "/api/v1/auth/login", "", body)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_ProtectedWithoutToken(t *testing.T) {
	e, _, _ := newTestServer(t)
	target := "/api/v1/users/" + uuid.New().String()

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		rec := doRequest(e, method, target, "", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code, method)
		assert.Equal(t, "Authorization token required", decodeError(t, rec), method)
	}
}

func TestRoutes_ProtectedWithInvalidToken(t *testing.T) {
	e, _, _ := newTestServer(t)
	target := "/api/v1/users/" + uuid.New().String()

	rec := doRequest(e, http.MethodGet, target, "definitely.not.valid", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", decodeError(t, rec))
}

func TestRoutes_ForeignUserIsForbidden(t *testing.T) {
	// A valid token for one user never reaches the handler for another
	// user's path, whether or not that other user exists.
	e, _, tokenSvc := newTestServer(t)

	token, err := tokenSvc.GenerateToken(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		rec := doRequest(e, method, "/api/v1/users/"+uuid.New().String(), token, "")

		assert.Equal(t, http.StatusForbidden, rec.Code, method)
		assert.Equal(t, "Forbidden: You can only access your own data", decodeError(t, rec), method)
	}
}

func TestRoutes_MalformedUserIDIsForbidden(t *testing.T) {
	// Ownership is a raw string comparison, so a malformed ID answers 403
	// rather than a parse error.
	e, _, tokenSvc := newTestServer(t)

	token, err := tokenSvc.GenerateToken(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	rec := doRequest(e, http.MethodGet, "/api/v1/users/not-a-uuid", token, "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden: You can only access your own data", decodeError(t, rec))
}

func TestRoutes_GetOwnProfile(t *testing.T) {
	e, userUC, tokenSvc := newTestServer(t)
	userID := uuid.New()

	token, err := tokenSvc.GenerateToken(userID, "alice@example.com")
	require.NoError(t, err)

	userUC.EXPECT().GetUser(mock.Anything, userID).Return(storedUser(userID), nil)

	rec := doRequest(e, http.MethodGet, "/api/v1/users/"+userID.String(), token, "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp response.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, userID.String(), resp.User.ID)
}

func TestRoutes_GetOwnProfileAfterDeletion(t *testing.T) {
	// The token outlives the row: authentication and ownership pass, the
	// lookup then reports the account gone.
	e, userUC, tokenSvc := newTestServer(t)
	userID := uuid.New()

	token, err := tokenSvc.GenerateToken(userID, "alice@example.com")
	require.NoError(t, err)

	userUC.EXPECT().GetUser(mock.Anything, userID).
		Return(nil, errors.Wrap(domainerrors.ErrUserNotFound, "get user failed"))

	rec := doRequest(e, http.MethodGet, "/api/v1/users/"+userID.String(), token, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeError(t, rec))
}

func TestRoutes_EmptyPatchIsNoOp(t *testing.T) {
	e, userUC, tokenSvc := newTestServer(t)
	userID := uuid.New()

	token, err := tokenSvc.GenerateToken(userID, "alice@example.com")
	require.NoError(t, err)

	userUC.EXPECT().UpdateUser(mock.Anything, userID, mock.Anything).
		Return(storedUser(userID), nil)

	rec := doRequest(e, http.MethodPatch, "/api/v1/users/"+userID.String(), token, "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp response.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "Alice", resp.User.FirstName)
}

func TestRoutes_DeleteOwnAccount(t *testing.T) {
	e, userUC, tokenSvc := newTestServer(t)
	userID := uuid.New()

	token, err := tokenSvc.GenerateToken(userID, "alice@example.com")
	require.NoError(t, err)

	userUC.EXPECT().DeleteUser(mock.Anything, userID).Return(nil)

	rec := doRequest(e, http.MethodDelete, "/api/v1/users/"+userID.String(), token, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "User deleted successfully"}`, rec.Body.String())
}

func TestRoutes_UnexpectedErrorRendersGeneric(t *testing.T) {
	e, userUC, tokenSvc := newTestServer(t)
	userID := uuid.New()

	token, err := tokenSvc.GenerateToken(userID, "alice@example.com")
	require.NoError(t, err)

	userUC.EXPECT().GetUser(mock.Anything, userID).
		Return(nil, errors.New("unexpected infrastructure failure"))

	rec := doRequest(e, http.MethodGet, "/api/v1/users/"+userID.String(), token, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeError(t, rec))
}

func TestRoutes_UnknownPathIsNotFound(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/api/v1/unknown", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", decodeError(t, rec))
}
