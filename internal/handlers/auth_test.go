package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kw-muji/team-match-api/internal/auth"
	"github.com/kw-muji/team-match-api/internal/constants"
	"github.com/kw-muji/team-match-api/internal/middleware"
	"github.com/kw-muji/team-match-api/internal/otp"
	"github.com/kw-muji/team-match-api/internal/repository"
	"github.com/kw-muji/team-match-api/internal/services"
)

// recordingSender captures outgoing verification mails.
type recordingSender struct {
	mu    sync.Mutex
	sends []struct{ To, Code string }
}

func (r *recordingSender) SendAuthCode(_ context.Context, to, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sends = append(r.sends, struct{ To, Code string }{to, code})
	return nil
}

type authTestEnv struct {
	db      *gorm.DB
	mr      *miniredis.Miniredis
	store   *otp.Store
	sender  *recordingSender
	tokens  *auth.Manager
	handler *AuthHandler
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db := setupTestDB(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store := otp.NewStore(rdb, constants.AuthCodeTTL)
	sender := &recordingSender{}
	tokens := auth.NewManager("team-match-test", "test-secret", constants.AccessTokenTTL)

	userRepo := repository.NewUserRepository(db)
	service := services.NewAuthService(userRepo, store, sender, tokens, zap.NewNop())
	handler := NewAuthHandler(service)

	return authTestEnv{
		db:      db,
		mr:      mr,
		store:   store,
		sender:  sender,
		tokens:  tokens,
		handler: handler,
	}
}

func authRouter(env authTestEnv) *gin.Engine {
	r := gin.New()
	group := r.Group("/auth")
	{
		group.POST("/mailSend", env.handler.MailSend)
		group.POST("/authCheck", env.handler.AuthCheck)
		group.POST("/login", env.handler.Login)
		group.POST("/resetPW", env.handler.ResetPW)
	}
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_MailSendAndAuthCheck(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	w := postJSON(t, r, "/auth/mailSend", gin.H{"email": "new@kw.ac.kr"})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Code    int    `json:"code"`
		AuthNum string `json:"authNum"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.AuthNum, constants.AuthCodeLength)

	// The same code went out by mail.
	require.Len(t, env.sender.sends, 1)
	require.Equal(t, "new@kw.ac.kr", env.sender.sends[0].To)
	require.Equal(t, res.AuthNum, env.sender.sends[0].Code)

	// A wrong code is rejected without consuming the pending one.
	w = postJSON(t, r, "/auth/authCheck", gin.H{"email": "new@kw.ac.kr", "authNum": "000000"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/auth/authCheck", gin.H{"email": "new@kw.ac.kr", "authNum": res.AuthNum})
	require.Equal(t, http.StatusOK, w.Code)

	var check struct {
		Code      int  `json:"code"`
		AuthCheck bool `json:"authCheck"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))
	require.True(t, check.AuthCheck)

	// A successful match consumes the code.
	w = postJSON(t, r, "/auth/authCheck", gin.H{"email": "new@kw.ac.kr", "authNum": res.AuthNum})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_MailSend_RegisteredEmailRejected(t *testing.T) {
	env := setupAuthTestEnv(t)
	createTestUser(t, env.db, "taken@kw.ac.kr", "Taken")
	r := authRouter(env)

	w := postJSON(t, r, "/auth/mailSend", gin.H{"email": "taken@kw.ac.kr"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, env.sender.sends)
}

func TestAuthHandler_MailSend_LatestCodeWins(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	w := postJSON(t, r, "/auth/mailSend", gin.H{"email": "new@kw.ac.kr"})
	require.Equal(t, http.StatusOK, w.Code)
	var first struct {
		AuthNum string `json:"authNum"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	w = postJSON(t, r, "/auth/mailSend", gin.H{"email": "new@kw.ac.kr"})
	require.Equal(t, http.StatusOK, w.Code)
	var second struct {
		AuthNum string `json:"authNum"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	// Only the most recent code verifies.
	if first.AuthNum != second.AuthNum {
		w = postJSON(t, r, "/auth/authCheck", gin.H{"email": "new@kw.ac.kr", "authNum": first.AuthNum})
		require.Equal(t, http.StatusBadRequest, w.Code)
	}
	w = postJSON(t, r, "/auth/authCheck", gin.H{"email": "new@kw.ac.kr", "authNum": second.AuthNum})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_AuthCheck_ExpiredCodeRejected(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	w := postJSON(t, r, "/auth/mailSend", gin.H{"email": "new@kw.ac.kr"})
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		AuthNum string `json:"authNum"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))

	env.mr.FastForward(constants.AuthCodeTTL + time.Second)

	w = postJSON(t, r, "/auth/authCheck", gin.H{"email": "new@kw.ac.kr", "authNum": res.AuthNum})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := createTestUser(t, env.db, "member@kw.ac.kr", "Member")
	r := authRouter(env)

	w := postJSON(t, r, "/auth/login", gin.H{"email": "member@kw.ac.kr", "password": "secret1!"})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Code int `json:"code"`
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.Data.Token)

	claims, err := env.tokens.Parse(res.Data.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.Email, claims.Email)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	createTestUser(t, env.db, "member@kw.ac.kr", "Member")
	r := authRouter(env)

	w := postJSON(t, r, "/auth/login", gin.H{"email": "member@kw.ac.kr", "password": "wrong1!"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_ResetPW(t *testing.T) {
	env := setupAuthTestEnv(t)
	createTestUser(t, env.db, "member@kw.ac.kr", "Member")
	r := authRouter(env)

	tests := []struct {
		name       string
		password   string
		confirm    string
		wantStatus int
	}{
		{"valid", "abc12!", "abc12!", http.StatusOK},
		{"too short", "a1!", "a1!", http.StatusBadRequest},
		{"too long", "abcdefgh123!", "abcdefgh123!", http.StatusBadRequest},
		{"missing digit", "abcde!", "abcde!", http.StatusBadRequest},
		{"missing special", "abc123", "abc123", http.StatusBadRequest},
		{"confirm mismatch", "abc12!", "abc13!", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, r, "/auth/resetPW", gin.H{
				"email":           "member@kw.ac.kr",
				"password":        tt.password,
				"confirmPassword": tt.confirm,
			})
			require.Equal(t, tt.wantStatus, w.Code)
		})
	}

	// The new password works for login.
	w := postJSON(t, r, "/auth/login", gin.H{"email": "member@kw.ac.kr", "password": "abc12!"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := createTestUser(t, env.db, "member@kw.ac.kr", "Member")

	token, err := env.tokens.Generate(user.ID, user.Email)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", middleware.RequireAuth(env.tokens), func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	// No token.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Malformed token.
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token.
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		UserID uint64 `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, user.ID, res.UserID)
}
