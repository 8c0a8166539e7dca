package handlers

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kw-muji/team-match-api/internal/constants"
	"github.com/kw-muji/team-match-api/internal/database"
	"github.com/kw-muji/team-match-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Participation{},
		&models.Resume{},
		&models.UserEventLink{},
		&models.Survey{},
		&models.SurveyQuestion{},
		&models.SurveyOption{},
		&models.SurveyResponse{},
		&models.SurveyAnswer{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret1!"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
		StuNum:       2020123456,
		Major:        "Computer Science",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// authAs injects the identity the auth middleware would have set.
func authAs(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUserEmail, user.Email)
		c.Next()
	}
}

// fakeUploader records uploads and deletes in memory.
type fakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	failing bool
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: map[string][]byte{}}
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	if f.failing {
		return "", fmt.Errorf("upload refused")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return key, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeUploader) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return "https://bucket.example.com/" + (&url.URL{Path: key}).EscapedPath()
}
