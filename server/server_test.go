package server

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/apptime/internal/profile"
)

func TestServer_StartAndShutdown(t *testing.T) {
	p := &profile.Profile{Addr: "127.0.0.1", Timezone: "UTC"}
	require.NoError(t, p.Validate())
	p.Port = 0

	s, err := NewServer(context.Background(), p, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	require.NotEmpty(t, s.Addr())

	resp, err := http.Get("http://" + s.Addr() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post("http://"+s.Addr()+"/api/v1/resolve", "application/json",
		strings.NewReader(`{"text":"明天下午3點","now":"2025-11-12T14:18:00Z"}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"date":"2025-11-13"`)
	assert.Contains(t, string(body), `"time":"15:00"`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	_, err = http.Get("http://" + s.Addr() + "/healthz")
	assert.Error(t, err)
}
