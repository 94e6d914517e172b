package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tkmani91/khs-server/internal/api"
	"github.com/tkmani91/khs-server/internal/config"
	"github.com/tkmani91/khs-server/internal/github"
	"github.com/tkmani91/khs-server/internal/localstore"
	"github.com/tkmani91/khs-server/internal/models"
	"github.com/tkmani91/khs-server/internal/service"
	"github.com/tkmani91/khs-server/internal/store"
)

// AdminPassword is the seeded admin credential used in tests
const AdminPassword = "adminpass123"

// TestContext holds all dependencies for tests
type TestContext struct {
	Router    *gin.Engine
	Store     *store.Store
	Service   service.Service
	JWTSecret []byte
	AdminJWT  string
	ViewerJWT string
}

// SetupTestContext creates a new test context backed by a temporary data
// directory and an unconfigured remote adapter (local mode).
func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	local := localstore.New(t.TempDir(), logger)

	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.MinCost)
	require.NoError(t, err, "Failed to hash admin password")

	seed := models.User{
		ID:        "1",
		Username:  "admin",
		Password:  string(hash),
		Role:      models.RoleAdmin,
		Name:      "অ্যাডমিন",
		CreatedAt: time.Now().UTC(),
	}

	// No token: the remote adapter stays unconfigured
	remote := github.NewClient(config.GitHubConfig{
		Owner:    "someone",
		Repo:     "khs-data",
		Branch:   "main",
		DataFile: "database.json",
		APIBase:  "http://127.0.0.1:1",
	}, seed, local, logger)

	st := store.New(local, remote, seed, config.SyncConfig{
		Debounce:     10 * time.Millisecond,
		AutoInterval: 0,
	}, logger)
	st.Load(context.Background())
	t.Cleanup(st.Close)

	jwtSecret := "test-secret-key"
	svc := service.NewDefaultService(st, remote, jwtSecret)
	handler := api.NewHandler(svc)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(jwtSecret))
		c.Next()
	})

	handler.SetupRoutes(router)

	return &TestContext{
		Router:    router,
		Store:     st,
		Service:   svc,
		JWTSecret: []byte(jwtSecret),
		AdminJWT:  generateToken(t, jwtSecret, "admin", models.RoleAdmin),
		ViewerJWT: generateToken(t, jwtSecret, "viewer", models.RoleViewer),
	}
}

func generateToken(t *testing.T, secret, username string, role models.Role) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  username,
		"role": string(role),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	require.NoError(t, err, "Failed to generate JWT token")
	return tokenString
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
