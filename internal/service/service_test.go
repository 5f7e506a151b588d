package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jotmail/jotmail/internal/notify"
	"github.com/jotmail/jotmail/internal/service"
	"github.com/jotmail/jotmail/internal/store/drivers/sqlite"
	"github.com/jotmail/jotmail/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// captureNotifier records every delivery instead of sending mail, so
// tests can read the code that would have landed in the inbox.
type captureNotifier struct {
	mu   sync.Mutex
	sent []notify.EmailParams
	err  error
}

func (n *captureNotifier) SendOTP(_ context.Context, p notify.EmailParams) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, p)
	return nil
}

func (n *captureNotifier) lastCode(t *testing.T) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.sent, "no otp email was sent")
	return n.sent[len(n.sent)-1].Code
}

func (n *captureNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type fixture struct {
	store    *sqlite.Store
	notifier *captureNotifier
	otp      *service.OTPService
	auth     *service.AuthService
	notes    *service.NoteService
	sessions *jwtx.HS256
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	sessions, err := jwtx.NewHS256([]byte(testSecret), "jotmail-test", time.Hour)
	require.NoError(t, err)

	notifier := &captureNotifier{}
	otp := &service.OTPService{Store: st}
	return &fixture{
		store:    st,
		notifier: notifier,
		otp:      otp,
		auth: &service.AuthService{
			Store:    st,
			OTP:      otp,
			Notifier: notifier,
			Sessions: sessions,
			SiteName: "jotmail",
		},
		notes:    &service.NoteService{Store: st},
		sessions: sessions,
	}
}

// signup runs the full registration flow and returns the account ID.
func (f *fixture) signup(t *testing.T, name, email string) string {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.auth.RequestSignupOTP(ctx, name, email, nil))
	_, account, err := f.auth.CompleteSignup(ctx, email, f.notifier.lastCode(t))
	require.NoError(t, err)
	return account.ID
}
