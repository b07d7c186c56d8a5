package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AnkitNITA23/SketchVerse/domain"
)

type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Generate(id string, now time.Time) (string, error) {
	args := m.Called(id, now)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func setupIdentityRouter(tokens TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(tokens), time.Hour)
	router := gin.New()
	router.POST("/identity", h.CreateIdentityHandler)
	router.GET("/whoami", h.RequireIdentityMiddleware(), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, ctx.GetString("id"))
	})
	return router
}

func TestCreateIdentityHandler_IssuesTokenCookie(t *testing.T) {
	t.Parallel()

	tokens := &MockTokenManager{}
	tokens.On("Generate", mock.Anything, mock.Anything).Return("signed-token", nil).Once()
	router := setupIdentityRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/identity", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "id")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)

	tokens.AssertExpectations(t)
}

func TestCreateIdentityHandler_KeepsValidExistingToken(t *testing.T) {
	t.Parallel()

	tokens := &MockTokenManager{}
	tokens.On("Verify", "still-good").Return("player-1", nil).Once()
	router := setupIdentityRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/identity", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "still-good"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"player-1"}`, w.Body.String())
	assert.Empty(t, w.Result().Cookies())

	tokens.AssertExpectations(t)
}

func TestCreateIdentityHandler_IssueFailure(t *testing.T) {
	t.Parallel()

	tokens := &MockTokenManager{}
	tokens.On("Generate", mock.Anything, mock.Anything).Return("", assert.AnError).Once()
	router := setupIdentityRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/identity", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, ErrTokenNotIssuedStr, w.Body.String())
}

func TestRequireIdentityMiddleware(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc         string
		cookie       string
		verifyErr    error
		expectedCode int
		expectedBody string
	}{
		{
			desc:         "missing cookie",
			expectedCode: http.StatusUnauthorized,
			expectedBody: ErrMissingTokenStr,
		},
		{
			desc:         "expired token",
			cookie:       "expired",
			verifyErr:    domain.ErrExpiredToken,
			expectedCode: http.StatusUnauthorized,
			expectedBody: ErrExpiredTokenStr,
		},
		{
			desc:         "bad signature",
			cookie:       "forged",
			verifyErr:    domain.ErrInvalidTokenSignature,
			expectedCode: http.StatusUnauthorized,
			expectedBody: ErrInvalidTokenStr,
		},
		{
			desc:         "unexpected verification failure",
			cookie:       "weird",
			verifyErr:    assert.AnError,
			expectedCode: http.StatusInternalServerError,
			expectedBody: ErrUnknownStr,
		},
		{
			desc:         "valid token reaches the handler",
			cookie:       "good",
			expectedCode: http.StatusOK,
			expectedBody: "player-7",
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			t.Parallel()

			tokens := &MockTokenManager{}
			if tC.cookie != "" {
				tokens.On("Verify", tC.cookie).Return("player-7", tC.verifyErr).Once()
			}
			router := setupIdentityRouter(tokens)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tC.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tC.cookie})
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tC.expectedCode, w.Code)
			assert.Equal(t, tC.expectedBody, w.Body.String())
			tokens.AssertExpectations(t)
		})
	}
}
