package testserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/moveit/internal/app"
	"github.com/rpggio/moveit/internal/config"
	"github.com/rpggio/moveit/internal/platform/clock"
	"github.com/stretchr/testify/require"
)

// Start is the fake clock's initial reading.
var Start = time.Date(2024, 5, 6, 9, 0, 0, 0, time.Local)

// TestServer runs the HTTP transport over a fresh database and a fake clock.
type TestServer struct {
	Server *httptest.Server
	App    *app.App
	Clock  *clock.Fake
	Token  string
}

// New starts a server. cfg may be nil for defaults; an empty token disables
// authentication.
func New(t *testing.T, token string, cfg *config.Config) *TestServer {
	t.Helper()

	c := config.Default()
	if cfg != nil {
		c = *cfg
	}

	store, err := app.OpenStore(filepath.Join(t.TempDir(), "moveit.db"))
	require.NoError(t, err)

	clk := clock.NewFake(Start)
	a := app.New(context.Background(), c, store, clk, nil)
	server := httptest.NewServer(a.HTTPHandler(token))

	t.Cleanup(func() {
		server.Close()
		a.Close(context.Background())
		_ = store.Close()
	})

	return &TestServer{Server: server, App: a, Clock: clk, Token: token}
}

// Connect opens an MCP client session over streamable HTTP.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	transport := &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearerTransport{token: ts.Token}},
	}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	session, err := client.Connect(ctx, transport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

// CallTool calls name, requires success and returns the JSON payload.
func CallTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) json.RawMessage {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s failed", name)
	require.NotEmpty(t, result.Content, "Tool %s returned no content", name)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "Tool %s returned no text content", name)
	require.False(t, result.IsError, "Tool %s returned error: %s", name, text.Text)
	return json.RawMessage(text.Text)
}

type bearerTransport struct {
	token string
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if b.token == "" {
		return http.DefaultTransport.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return http.DefaultTransport.RoundTrip(req)
}
