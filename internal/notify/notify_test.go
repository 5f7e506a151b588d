package notify_test

import (
	"testing"
	"time"

	"github.com/jotmail/jotmail/internal/notify"
	"github.com/stretchr/testify/require"
)

func TestRenderBody(t *testing.T) {
	t.Parallel()

	body, err := notify.RenderBody(notify.EmailParams{
		To:           "a@x.com",
		Name:         "Ada",
		SiteName:     "jotmail",
		Code:         "482913",
		CodeLifetime: 10 * time.Minute,
	})
	require.NoError(t, err)

	require.Contains(t, body, "Hi Ada,")
	require.Contains(t, body, "jotmail")
	require.Contains(t, body, "482913")
	require.Contains(t, body, "10 minutes")
}
