package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"ripple/internal/config"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

var testDBSeq atomic.Uint64

// newTestServer wires a Server over a fresh in-memory database and returns it
// together with a Fiber app carrying the API routes. The prometheus middleware
// is left out so repeated test runs don't fight over collector registration.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:servertest%d?mode=memory&cache=shared&_fk=1", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Chat{},
		&models.Message{},
		&models.Notification{},
	))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	s := &Server{
		config: &config.Config{
			JWTSecret: "test_secret",
			Env:       "test",
			StaticDir: t.TempDir(),
		},
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		followRepo:       repository.NewFollowRepository(db),
		postRepo:         repository.NewPostRepository(db),
		chatRepo:         repository.NewChatRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}
	s.authService = service.NewAuthService(s.userRepo)
	s.socialService = service.NewSocialService(s.userRepo, s.followRepo, s.notificationRepo)
	s.postService = service.NewPostService(s.postRepo, s.userRepo, s.followRepo, s.notificationRepo)
	s.chatService = service.NewChatService(s.chatRepo, s.userRepo, s.notificationRepo)
	s.notificationService = service.NewNotificationService(s.notificationRepo, s.userRepo)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	s.SetupRoutes(app)
	return s, app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func itoa(v uint) string {
	return fmt.Sprintf("%d", v)
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "$2a$04$notarealhashbutitsfine1234567890123456789012345",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
