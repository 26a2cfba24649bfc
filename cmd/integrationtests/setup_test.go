package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	auction "auction-engine/internal/auctionService"
	"auction-engine/internal/auth"
	"auction-engine/internal/broadcast"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

const testSecret = "integration-secret"

// testEnv is a running server over the real engine, hub and in-memory repository
type testEnv struct {
	srv     *httptest.Server
	svc     *auction.AuctionService
	hub     *broadcast.Hub
	repo    *repository.MemoryRepo
	issuer  *auth.Issuer
	admin   string
	teamA   string
	teamB   string
	teamLow string
}

func testTeams() []model.Team {
	return []model.Team{
		{TeamID: "team-a", Name: "Team A", Budget: 10000},
		{TeamID: "team-b", Name: "Team B", Budget: 10000},
		{TeamID: "team-low", Name: "Team Low", Budget: 1500},
	}
}

func testPlayers() []model.Player {
	return []model.Player{
		{PlayerID: "p1", Name: "Opener", Role: "batter", BasePrice: 1000},
		{PlayerID: "p2", Name: "Spinner", Role: "bowler", BasePrice: 500},
		{PlayerID: "p3", Name: "Keeper", Role: "wicketkeeper", BasePrice: 200},
	}
}

// SetupTestServer wires the full stack the way main does and serves it over httptest.
func SetupTestServer(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	for _, team := range testTeams() {
		repo.AddTeam(team)
	}
	for _, p := range testPlayers() {
		repo.AddPlayer(p)
	}

	hub := broadcast.NewHub(broadcast.Options{})
	svc, err := auction.NewAuctionService(repo, hub, auction.Options{
		MinIncrement:  100,
		TimerDuration: time.Minute,
		LockTimeout:   time.Second,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		hub.Run(ctx, svc)
		close(hubDone)
	}()

	issuer := auth.NewIssuer(testSecret, time.Hour)
	srv := httptest.NewServer(server.SetupRouter(svc, hub, issuer))

	t.Cleanup(func() {
		cancel()
		<-hubDone
		hub.Wait()
		srv.Close()
	})

	env := &testEnv{srv: srv, svc: svc, hub: hub, repo: repo, issuer: issuer}
	env.admin = env.token(t, auth.Identity{UserID: "ops", Role: auth.RoleAdmin})
	env.teamA = env.token(t, auth.Identity{UserID: "captain-a", Role: auth.RoleTeam, TeamID: "team-a"})
	env.teamB = env.token(t, auth.Identity{UserID: "captain-b", Role: auth.RoleTeam, TeamID: "team-b"})
	env.teamLow = env.token(t, auth.Identity{UserID: "captain-low", Role: auth.RoleTeam, TeamID: "team-low"})
	return env
}

func (e *testEnv) token(t *testing.T, id auth.Identity) string {
	t.Helper()
	token, err := e.issuer.GenerateToken(id)
	require.NoError(t, err)
	return token
}

// apiResponse is the JSON envelope every endpoint returns
type apiResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Kind    string          `json:"kind"`
}

// ExecuteRequest sends a request with an optional bearer token and extra headers
func (e *testEnv) ExecuteRequest(t *testing.T, method, path, token string, body any, headers ...string) (int, apiResponse) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, bytes.NewReader(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// MustOK runs an admin transition and decodes the returned snapshot
func (e *testEnv) MustOK(t *testing.T, method, path string, body any) model.Snapshot {
	t.Helper()
	status, resp := e.ExecuteRequest(t, method, path, e.admin, body)
	require.Equal(t, http.StatusOK, status, "%s %s: %s", method, path, resp.Error)
	var snap model.Snapshot
	require.NoError(t, json.Unmarshal(resp.Data, &snap))
	return snap
}

// Bid places a bid as the given team token on the current lot
func (e *testEnv) Bid(t *testing.T, token string, amount int64) (int, apiResponse) {
	t.Helper()
	return e.ExecuteRequest(t, http.MethodPost, "/bids", token, map[string]any{"amount": amount})
}

func seqHeader(seq uint64) []string {
	return []string{"X-Expected-Seq", strconv.FormatUint(seq, 10)}
}

// wireFrame is a websocket frame as seen by a browser
type wireFrame struct {
	Event model.EventType `json:"event"`
	Seq   uint64          `json:"seq"`
	Data  json.RawMessage `json:"data"`
}

// Dial opens a websocket to path, e.g. /ws-public or /ws?token=...
func (e *testEnv) Dial(t *testing.T, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.srv.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// ReadFrame reads the next frame, skipping keepalive pongs
func ReadFrame(t *testing.T, conn *websocket.Conn) wireFrame {
	t.Helper()
	for {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var f wireFrame
		require.NoError(t, conn.ReadJSON(&f))
		if f.Event != model.EventPong {
			return f
		}
	}
}
