package authflow_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/jotmail/jotmail/internal/app"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * End-to-end test of the full signup/login flow with real email delivery.
 * A Mailpit container plays the SMTP relay; the service runs in-process
 * pointed at it, and codes are fished out of the Mailpit API the way a
 * user would read them from their inbox.
 */

const (
	mailpitImage  = "axllent/mailpit:v1.21"
	sessionSecret = "e2e-test-secret-0123456789abcdef"
)

var otpPattern = regexp.MustCompile(`\b[1-9][0-9]{5}\b`)

// mailpit wraps the container and its two mapped endpoints. seen tracks
// message IDs already consumed so a poll never hands back the previous
// step's email.
type mailpit struct {
	smtpHost string
	smtpPort int
	apiBase  string
	seen     map[string]bool
}

// startMailpit launches the relay container. Tests are skipped when no
// container runtime is available.
func startMailpit(t *testing.T) *mailpit {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        mailpitImage,
		ExposedPorts: []string{"1025/tcp", "8025/tcp"},
		WaitingFor:   wait.ForListeningPort("1025/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("container runtime unavailable, skipping: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	smtpPort, err := container.MappedPort(ctx, "1025/tcp")
	require.NoError(t, err)
	apiPort, err := container.MappedPort(ctx, "8025/tcp")
	require.NoError(t, err)

	return &mailpit{
		smtpHost: host,
		smtpPort: smtpPort.Int(),
		apiBase:  fmt.Sprintf("http://%s:%d", host, apiPort.Int()),
		seen:     make(map[string]bool),
	}
}

// latestCodeFor polls the Mailpit API for the newest message addressed
// to the given email and extracts the 6-digit code from its body.
func (m *mailpit) latestCodeFor(t *testing.T, email string) string {
	t.Helper()

	deadline := time.Now().Add(15 * time.Second)
	for time.Now().Before(deadline) {
		if code, ok := m.tryLatestCode(t, email); ok {
			return code
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("no otp email arrived for %s", email)
	return ""
}

func (m *mailpit) tryLatestCode(t *testing.T, email string) (string, bool) {
	t.Helper()

	resp, err := http.Get(m.apiBase + "/api/v1/messages")
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	var list struct {
		Messages []struct {
			ID string `json:"ID"`
			To []struct {
				Address string `json:"Address"`
			} `json:"To"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return "", false
	}

	// Messages come newest first.
	for _, msg := range list.Messages {
		if m.seen[msg.ID] {
			continue
		}
		for _, to := range msg.To {
			if to.Address != email {
				continue
			}

			body, err := http.Get(m.apiBase + "/api/v1/message/" + msg.ID)
			if err != nil {
				return "", false
			}
			raw, err := io.ReadAll(body.Body)
			_ = body.Body.Close()
			if err != nil {
				return "", false
			}

			var detail struct {
				Text string `json:"Text"`
			}
			if err := json.Unmarshal(raw, &detail); err != nil {
				return "", false
			}
			if code := otpPattern.FindString(detail.Text); code != "" {
				m.seen[msg.ID] = true
				return code, true
			}
		}
	}
	return "", false
}

// startService boots the application in-process, wired to the Mailpit
// relay, and serves it over httptest.
func startService(t *testing.T, mp *mailpit) *httptest.Server {
	t.Helper()

	application, err := app.New(app.Config{
		Env:                 "test",
		LogLevel:            "warn",
		LogFormat:           "text",
		ShutdownGracePeriod: 5 * time.Second,
		DatabaseFile:        filepath.Join(t.TempDir(), "e2e.db"),
		SessionSecret:       sessionSecret,
		SessionIssuer:       "jotmail-e2e",
		SessionTTL:          time.Hour,
		OTPLifetime:         10 * time.Minute,
		SiteName:            "Jotmail",
		SMTPHost:            mp.smtpHost,
		SMTPPort:            mp.smtpPort,
		SMTPFrom:            "no-reply@jotmail.local",
		SMTPDisableTLS:      true,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func postJSONAuth(t *testing.T, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func getJSON(t *testing.T, url, token string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}
