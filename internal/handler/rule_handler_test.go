package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tradedeck-server/internal/config"
	"github.com/tradedeck-server/internal/handler"
	"github.com/tradedeck-server/internal/middleware"
	"github.com/tradedeck-server/internal/models"
	"github.com/tradedeck-server/internal/repository"
	"github.com/tradedeck-server/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testAESKey = "0123456789abcdef0123456789abcdef"

// newTestRouter wires the whole API over an in-memory database, the same
// way main does over postgres.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.BrokerConnection{},
		&models.TradingRule{},
		&models.Trade{},
		&models.PerformanceMetrics{},
	))

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	brokerRepo := repository.NewBrokerRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	metricsRepo := repository.NewMetricsRepository(db)

	jwtCfg := config.JWTConfig{Secret: "test-secret", ExpireHours: 1}
	authService := service.NewAuthService(userRepo, profileRepo, service.NewMemoryTokenStore(), jwtCfg)
	profileService := service.NewProfileService(profileRepo)
	brokerService := service.NewBrokerService(brokerRepo, config.EncryptionConfig{AESKey: testAESKey})
	ruleService := service.NewRuleService(ruleRepo)
	overviewService := service.NewOverviewService(tradeRepo, metricsRepo)

	authMW := middleware.AuthMiddleware(authService)

	router := gin.New()
	api := router.Group("/api/v1")
	handler.NewAuthHandler(authService, profileService).RegisterRoutes(api, authMW)
	handler.NewProfileHandler(profileService).RegisterRoutes(api, authMW)
	handler.NewBrokerHandler(brokerService).RegisterRoutes(api, authMW)
	handler.NewRuleHandler(ruleService).RegisterRoutes(api, authMW)
	handler.NewTradeHandler(tradeRepo).RegisterRoutes(api, authMW)
	handler.NewOverviewHandler(overviewService).RegisterRoutes(api, authMW, handler.NewChartHandler())

	return router, db
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func signUpAndLogin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "",
		gin.H{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
		gin.H{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)

	var token struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &token))
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func validRuleBody() gin.H {
	return gin.H{
		"name":             "RSI Oversold Strategy",
		"symbol":           "NIFTY",
		"timeframe":        "5m",
		"indicators":       `[{"name": "RSI", "period": 14}]`,
		"entry_conditions": `{"RSI": {"operator": "<", "value": 30}}`,
		"exit_conditions":  `{"RSI": {"operator": ">", "value": 70}}`,
		"risk_settings":    `{"stopLoss": 1, "takeProfit": 2}`,
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/v1/rules", "/api/v1/brokers", "/api/v1/trades", "/api/v1/overview"} {
		w, _ := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRuleLifecycleOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signUpAndLogin(t, router, "trader@example.com")

	// Zero state: an empty list, not an error
	w, env := doJSON(t, router, http.MethodGet, "/api/v1/rules", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(env.Data))

	// Create
	w, env = doJSON(t, router, http.MethodPost, "/api/v1/rules", token, validRuleBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.TradingRule
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.False(t, created.IsActive)
	assert.JSONEq(t, `[{"name": "RSI", "period": 14}]`, string(created.Indicators))

	// List shows it
	w, env = doJSON(t, router, http.MethodGet, "/api/v1/rules", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rules []models.TradingRule
	require.NoError(t, json.Unmarshal(env.Data, &rules))
	require.Len(t, rules, 1)
	assert.Equal(t, "RSI Oversold Strategy", rules[0].Name)

	// Toggle
	w, env = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/rules/%d/toggle", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var toggled models.TradingRule
	require.NoError(t, json.Unmarshal(env.Data, &toggled))
	assert.True(t, toggled.IsActive)

	// Delete, then the list is empty again
	w, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/rules/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, router, http.MethodGet, "/api/v1/rules", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestCreateRuleWithBrokenDocumentIs400(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signUpAndLogin(t, router, "trader@example.com")

	body := validRuleBody()
	body["entry_conditions"] = `{"RSI": }`

	w, env := doJSON(t, router, http.MethodPost, "/api/v1/rules", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "JSON")

	// Nothing was written
	w, env = doJSON(t, router, http.MethodGet, "/api/v1/rules", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestUpdateRuleWithEmptyNameIs400(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signUpAndLogin(t, router, "trader@example.com")

	w, env := doJSON(t, router, http.MethodPost, "/api/v1/rules", token, validRuleBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.TradingRule
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, _ = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/rules/%d", created.ID), token,
		gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Stored name survives
	w, env = doJSON(t, router, http.MethodGet, "/api/v1/rules", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rules []models.TradingRule
	require.NoError(t, json.Unmarshal(env.Data, &rules))
	require.Len(t, rules, 1)
	assert.Equal(t, "RSI Oversold Strategy", rules[0].Name)
}

func TestUpdateBrokerWithEmptyKeyIs400(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signUpAndLogin(t, router, "trader@example.com")

	w, env := doJSON(t, router, http.MethodPost, "/api/v1/brokers", token, gin.H{
		"broker_name": "zerodha", "api_key": "abc123", "api_secret": "xyz",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, _ = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/brokers/%d", created.ID), token,
		gin.H{"api_key": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/brokers", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "abc123...")
}

func TestRulesAreInvisibleAcrossUsers(t *testing.T) {
	router, _ := newTestRouter(t)
	aliceToken := signUpAndLogin(t, router, "alice@example.com")
	bobToken := signUpAndLogin(t, router, "bob@example.com")

	w, env := doJSON(t, router, http.MethodPost, "/api/v1/rules", aliceToken, validRuleBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.TradingRule
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// Bob's list stays empty and he cannot touch Alice's rule
	w, env = doJSON(t, router, http.MethodGet, "/api/v1/rules", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(env.Data))

	w, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/rules/%d", created.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBrokerSecretsNeverLeaveTheServer(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signUpAndLogin(t, router, "trader@example.com")

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/brokers", token, gin.H{
		"broker_name": "zerodha",
		"api_key":     "abc123",
		"api_secret":  "super-secret-xyz",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/brokers", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "abc123...")
	assert.NotContains(t, w.Body.String(), "super-secret-xyz")
}

func TestLogoutInvalidatesTokenOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signUpAndLogin(t, router, "trader@example.com")

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/rules", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Logging out again with the dead token is still a 401 at the middleware
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChartRendersStandaloneHTML(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signUpAndLogin(t, router, "trader@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/overview/chart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<html")
	assert.Contains(t, w.Body.String(), "illustrative")
}

func TestOverviewZeroState(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signUpAndLogin(t, router, "trader@example.com")

	w, env := doJSON(t, router, http.MethodGet, "/api/v1/overview", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var overview service.Overview
	require.NoError(t, json.Unmarshal(env.Data, &overview))
	assert.Equal(t, "0.00", overview.TotalPnL)
	assert.Empty(t, overview.RecentTrades)
	assert.Nil(t, overview.Metrics)
}
