package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/courtside/booking-backend/internal/app"
	"github.com/courtside/booking-backend/internal/auth"
	"github.com/courtside/booking-backend/internal/court"
	"github.com/courtside/booking-backend/internal/user"
)

var (
	testRouter *gin.Engine
	testPool   *pgxpool.Pool
	jwtManager *auth.JWTManager
)

func TestMain(m *testing.M) {
	// Attempt to load .env from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		log.Printf("No .env file found or failed to load: %v", err)
	}

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		log.Println("TEST_DB_DSN is not set, skipping integration tests")
		os.Exit(0)
	}

	ctx := context.Background()
	var err error
	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	// The schema is idempotent, so applying it at startup keeps the suite
	// self-contained and verifies the DDL itself against the live server.
	if err := applySchema(ctx); err != nil {
		log.Fatalf("Unable to apply schema: %v\n", err)
	}

	testSecret := os.Getenv("TEST_JWT_SECRET")
	if testSecret == "" {
		testSecret = "integration-test-secret"
	}

	appContainer := app.NewContainer(app.Config{
		DBPool:          testPool,
		Logger:          zerolog.Nop(),
		JWTSecret:       testSecret,
		JWTTTL:          30 * time.Minute,
		BcryptCost:      4, // Lower cost for testing purposes
		StartingCredits: 50000,
		BookingRate:     1000, // Effectively unlimited for tests
		BookingBurst:    1000,
	})

	testRouter = appContainer.Router
	jwtManager = appContainer.JWTManager

	gin.SetMode(gin.TestMode)

	exitCode := m.Run()

	testPool.Close()
	os.Exit(exitCode)
}

func applySchema(ctx context.Context) error {
	ddl, err := os.ReadFile("../migrations/0001_init.sql")
	if err != nil {
		return err
	}
	// No bind parameters, so pgx runs the whole file over the simple
	// protocol in one round trip.
	_, err = testPool.Exec(ctx, string(ddl))
	return err
}

func clearTables() {
	ctx := context.Background()
	queries := []string{
		"TRUNCATE TABLE public.notifications CASCADE",
		"TRUNCATE TABLE public.credit_transactions CASCADE",
		"TRUNCATE TABLE public.bookings CASCADE",
		"TRUNCATE TABLE public.court_packages CASCADE",
		"TRUNCATE TABLE public.courts CASCADE",
		"TRUNCATE TABLE public.profiles CASCADE",
	}
	for _, q := range queries {
		_, err := testPool.Exec(ctx, q)
		if err != nil {
			log.Printf("Failed to clean table: %v", err)
		}
	}
}

func executeRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

// result mirrors the response envelope with the payload left raw so each
// test can decode it into the expected shape.
type result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func parseResult(t *testing.T, w *httptest.ResponseRecorder) result {
	t.Helper()
	var res result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	res := parseResult(t, w)
	require.True(t, res.Success, "expected success envelope, got error: %s", res.Error)
	require.NoError(t, json.Unmarshal(res.Data, out))
}

func createTestUser(t *testing.T, email, password string, balance int64) *user.User {
	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	hash, err := hasher.Hash(password)
	require.NoError(t, err, "Failed to hash password")

	u := &user.User{
		Email:         email,
		PasswordHash:  hash,
		DisplayName:   &email,
		CreditBalance: balance,
		IsActive:      true,
	}

	repo := user.NewPgxRepository(testPool)
	err = repo.Create(context.Background(), u)
	require.NoError(t, err, "Failed to create test user in DB")

	return u
}

func createTestCourt(t *testing.T, ownerID string, pricePerHour int64, autoApprove bool) *court.Court {
	c := &court.Court{
		OwnerID:      ownerID,
		Name:         "Test Court",
		PricePerHour: pricePerHour,
		OpenMinute:   0,
		CloseMinute:  24 * 60,
		AutoApprove:  autoApprove,
		IsActive:     true,
	}

	repo := court.NewPgxRepository(testPool)
	err := repo.Create(context.Background(), c)
	require.NoError(t, err, "Failed to create test court in DB")

	return c
}

func generateToken(userID string) string {
	token, _ := jwtManager.GenerateAccessToken(userID)
	return token
}

func fetchBalance(t *testing.T, userID string) int64 {
	var balance int64
	err := testPool.QueryRow(context.Background(),
		"SELECT credit_balance FROM public.profiles WHERE id = $1", userID,
	).Scan(&balance)
	require.NoError(t, err)
	return balance
}
