package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"hackmatch/internal/config"
	"hackmatch/internal/database"
	"hackmatch/internal/database/migration"
	dbpostgres "hackmatch/internal/database/postgres"
	"hackmatch/internal/delivery/http/middleware"
	"hackmatch/internal/delivery/http/routes"
	"hackmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type authData struct {
	AccessToken string `json:"access_token"`
}

type teamData struct {
	ID uuid.UUID `json:"id"`
}

type teamDetailData struct {
	ID      uuid.UUID `json:"id"`
	Members []struct {
		ID uuid.UUID `json:"id"`
	} `json:"members"`
}

type requestData struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type recommendationData struct {
	Items []struct {
		User *struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
		Team *struct {
			ID uuid.UUID `json:"id"`
		} `json:"team"`
		Score   float64  `json:"score"`
		Reasons []string `json:"reasons"`
	} `json:"items"`
	TotalFound int `json:"total_found"`
}

// Exercises the full flow over HTTP against a real database: register,
// profile setup, team creation, recommendations both ways, join request
// and acceptance.
func TestIntegration_Teams_Recommendations(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	sfx := uuid.NewString()[:8]
	hackathonID := ensureHackathon(t, ctx, db, sfx)
	defer cleanupSeed(t, ctx, db, sfx, hackathonID)

	app := newTestFiberApp(t, db)

	captainTok := registerUser(t, app, "capt-"+sfx+"@example.com", "capt"+sfx)
	seekerTok := registerUser(t, app, "seek-"+sfx+"@example.com", "seek"+sfx)

	updateProfile(t, app, captainTok, map[string]any{
		"main_role":     "backend",
		"ready_to_team": true,
		"skills":        []string{"Go", "PostgreSQL"},
	})
	updateProfile(t, app, seekerTok, map[string]any{
		"main_role":     "frontend",
		"ready_to_team": true,
		"skills":        []string{"React", "TypeScript"},
	})

	teamID := createTeam(t, app, captainTok, hackathonID, "Integration Crew "+sfx)

	// Captain looks for users. The seeker is ready and skilled, so with
	// no preferences the flat-score floor keeps them above the cutoff.
	recs := callRecommendations(t, app, captainTok, "user", "skills=React&roles=frontend")
	if !containsUserRec(recs, seekerTokUserID(t, app, seekerTok)) {
		t.Fatalf("user recommendations: seeker not in %d items", len(recs.Items))
	}
	assertScoresDescending(t, recs)

	// Seeker looks for teams on the same hackathon.
	recs = callRecommendations(t, app, seekerTok, "team", "hackathon_id="+hackathonID.String())
	if !containsTeamRec(recs, teamID) {
		t.Fatalf("team recommendations: team not in %d items", len(recs.Items))
	}

	reqID := requestJoin(t, app, seekerTok, teamID)
	respondRequest(t, app, captainTok, reqID, true)

	detail := getTeamDetail(t, app, captainTok, teamID)
	if len(detail.Members) != 2 {
		t.Fatalf("team detail: expected 2 members, got %d", len(detail.Members))
	}

	// A member already on a team must not get a second pending request.
	doJSON(t, app, "POST", fmt.Sprintf("/api/v1/teams/%s/join", teamID), seekerTok, map[string]any{}, fiber.StatusConflict)
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("HACKMATCH_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("HACKMATCH_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("HACKMATCH_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("HACKMATCH_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("HACKMATCH_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("HACKMATCH_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set HACKMATCH_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	dbcfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	migDir := resolveMigrationsDir(t)
	r := migration.Runner{Dir: migDir}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	files, _ := filepath.Glob(filepath.Join(migDir, "V*__*.sql"))
	if len(files) == 0 {
		t.Fatalf("resolve migrations dir: no migration files found in %s", migDir)
	}

	return migDir
}

func newTestFiberApp(t *testing.T, db database.DB) *fiber.App {
	t.Helper()

	cfg := config.Config{
		App: config.AppConfig{AppName: "hackmatch-test", Environment: "test", HTTPPort: "0"},
		JWT: config.JWTConfig{
			AccessSecret:  stringsOrDefault(os.Getenv("HACKMATCH_TEST_JWT_ACCESS_SECRET"), "test-access-secret"),
			RefreshSecret: stringsOrDefault(os.Getenv("HACKMATCH_TEST_JWT_REFRESH_SECRET"), "test-refresh-secret"),
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    24 * time.Hour,
		},
	}

	hub := ws.NewHub(log.New(io.Discard, "", 0))
	go hub.Run()

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware().Middleware())

	routes.Register(app, routes.Deps{Config: cfg, DB: db, Hub: hub})
	return app
}

func ensureHackathon(t *testing.T, ctx context.Context, db database.DB, sfx string) uuid.UUID {
	t.Helper()

	url := "https://example.test/hackathons/" + sfx
	start := time.Now().AddDate(0, 0, 14)
	_, err := db.Exec(ctx,
		`INSERT INTO hackathons (id, name, description, location, url, source, start_date, end_date)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (source, url) DO NOTHING`,
		uuid.New(), "Integration Hack "+sfx, "test fixture", "Online", url, "test", start, start.AddDate(0, 0, 2),
	)
	if err != nil {
		t.Fatalf("seed hackathon: %v", err)
	}

	var got uuid.UUID
	if err := db.QueryRow(ctx, `SELECT id FROM hackathons WHERE source = 'test' AND url = $1`, url).Scan(&got); err != nil {
		t.Fatalf("seed hackathon select: %v", err)
	}
	return got
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, sfx string, hackathonID uuid.UUID) {
	t.Helper()

	_, _ = db.Exec(ctx, `DELETE FROM teams WHERE hackathon_id = $1`, hackathonID)
	_, _ = db.Exec(ctx, `DELETE FROM users WHERE email LIKE '%-' || $1 || '@example.com' OR username LIKE '%' || $1`, sfx)
	_, _ = db.Exec(ctx, `DELETE FROM hackathons WHERE id = $1`, hackathonID)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any, wantStatus int) json.RawMessage {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("%s %s: marshal body: %v", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: request error: %v", method, path, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("%s %s: decode error: %v", method, path, err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status=%d, got %d (message=%s)", method, path, wantStatus, resp.StatusCode, sr.Message)
	}
	return sr.Data
}

func registerUser(t *testing.T, app *fiber.App, email, username string) string {
	t.Helper()

	data := doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]any{
		"username": username,
		"email":    email,
		"password": "password123",
	}, fiber.StatusOK)

	var out authData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("register: data unmarshal error: %v", err)
	}
	if out.AccessToken == "" {
		t.Fatalf("register: missing access_token")
	}
	return out.AccessToken
}

func updateProfile(t *testing.T, app *fiber.App, token string, patch map[string]any) {
	t.Helper()
	doJSON(t, app, "PATCH", "/api/v1/users/me", token, patch, fiber.StatusOK)
}

func seekerTokUserID(t *testing.T, app *fiber.App, token string) uuid.UUID {
	t.Helper()

	data := doJSON(t, app, "GET", "/api/v1/users/me", token, nil, fiber.StatusOK)
	var out struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("me: data unmarshal error: %v", err)
	}
	return out.ID
}

func createTeam(t *testing.T, app *fiber.App, token string, hackathonID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	data := doJSON(t, app, "POST", "/api/v1/teams", token, map[string]any{
		"name":                name,
		"description":         "integration fixture",
		"hackathon_id":        hackathonID,
		"looking_for_members": true,
	}, fiber.StatusCreated)

	var out teamData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("create team: data unmarshal error: %v", err)
	}
	if out.ID == uuid.Nil {
		t.Fatalf("create team: missing id")
	}
	return out.ID
}

func callRecommendations(t *testing.T, app *fiber.App, token, direction, extraQuery string) recommendationData {
	t.Helper()

	path := "/api/v1/recommendations?direction=" + direction
	if extraQuery != "" {
		path += "&" + extraQuery
	}
	data := doJSON(t, app, "GET", path, token, nil, fiber.StatusOK)

	var out recommendationData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("recommendations: data unmarshal error: %v", err)
	}
	return out
}

func requestJoin(t *testing.T, app *fiber.App, token string, teamID uuid.UUID) uuid.UUID {
	t.Helper()

	data := doJSON(t, app, "POST", fmt.Sprintf("/api/v1/teams/%s/join", teamID), token, map[string]any{
		"message": "let me in",
	}, fiber.StatusCreated)

	var out requestData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("join: data unmarshal error: %v", err)
	}
	if out.Status != "pending" {
		t.Fatalf("join: expected pending request, got %q", out.Status)
	}
	return out.ID
}

func respondRequest(t *testing.T, app *fiber.App, token string, requestID uuid.UUID, accept bool) {
	t.Helper()

	data := doJSON(t, app, "POST", fmt.Sprintf("/api/v1/teams/requests/%s/respond", requestID), token, map[string]any{
		"accept": accept,
	}, fiber.StatusOK)

	var out requestData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("respond: data unmarshal error: %v", err)
	}
	want := "declined"
	if accept {
		want = "accepted"
	}
	if out.Status != want {
		t.Fatalf("respond: expected status %q, got %q", want, out.Status)
	}
}

func getTeamDetail(t *testing.T, app *fiber.App, token string, teamID uuid.UUID) teamDetailData {
	t.Helper()

	data := doJSON(t, app, "GET", "/api/v1/teams/"+teamID.String(), token, nil, fiber.StatusOK)

	var out teamDetailData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("team detail: data unmarshal error: %v", err)
	}
	return out
}

func containsUserRec(recs recommendationData, userID uuid.UUID) bool {
	for _, it := range recs.Items {
		if it.User != nil && it.User.ID == userID {
			return true
		}
	}
	return false
}

func containsTeamRec(recs recommendationData, teamID uuid.UUID) bool {
	for _, it := range recs.Items {
		if it.Team != nil && it.Team.ID == teamID {
			return true
		}
	}
	return false
}

func assertScoresDescending(t *testing.T, recs recommendationData) {
	t.Helper()

	for i := 1; i < len(recs.Items); i++ {
		if recs.Items[i].Score > recs.Items[i-1].Score {
			t.Fatalf("recommendations: expected score descending at idx=%d: prev=%f cur=%f", i, recs.Items[i-1].Score, recs.Items[i].Score)
		}
	}
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
