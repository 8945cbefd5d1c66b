package relay_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socraticlabs/council/backend/internal/relay"
)

func TestBuildClient(t *testing.T) {
	t.Run("no proxy", func(t *testing.T) {
		client, err := relay.BuildClient(nil, time.Minute)
		require.NoError(t, err)
		assert.False(t, client.IsProxySet())
		assert.Equal(t, time.Minute, client.GetClient().Timeout)
	})

	t.Run("disabled configs build proxyless clients", func(t *testing.T) {
		disabled := []*relay.ProxyConfig{
			{Type: relay.ProxyNone, Host: "proxy.local", Port: 8080},
			{Type: relay.ProxyHTTP, Host: "", Port: 8080},
			{Type: relay.ProxyHTTP, Host: "proxy.local", Port: 0},
		}
		for _, proxy := range disabled {
			client, err := relay.BuildClient(proxy, time.Minute)
			require.NoError(t, err)
			assert.False(t, client.IsProxySet())
		}
	})

	t.Run("supported proxy types", func(t *testing.T) {
		for _, proxyType := range []string{
			relay.ProxyHTTP, relay.ProxyHTTPS, relay.ProxySOCKS5, relay.ProxySOCKS5H,
		} {
			client, err := relay.BuildClient(&relay.ProxyConfig{
				Type: proxyType,
				Host: "proxy.local",
				Port: 1080,
			}, time.Minute)
			require.NoError(t, err, "proxy type %s", proxyType)
			assert.True(t, client.IsProxySet(), "proxy type %s", proxyType)
		}
	})

	t.Run("unsupported proxy type", func(t *testing.T) {
		_, err := relay.BuildClient(&relay.ProxyConfig{
			Type: "ftp",
			Host: "proxy.local",
			Port: 2121,
		}, time.Minute)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported proxy type: ftp")
	})

	t.Run("tls verification stays on", func(t *testing.T) {
		client, err := relay.BuildClient(nil, time.Minute)
		require.NoError(t, err)
		transport, ok := client.GetClient().Transport.(*http.Transport)
		require.True(t, ok)
		assert.False(t, transport.TLSClientConfig.InsecureSkipVerify)
	})

	t.Run("building twice is observably idempotent", func(t *testing.T) {
		proxy := &relay.ProxyConfig{Type: relay.ProxyHTTP, Host: "proxy.local", Port: 8080}

		first, err := relay.BuildClient(proxy, 30*time.Second)
		require.NoError(t, err)
		second, err := relay.BuildClient(proxy, 30*time.Second)
		require.NoError(t, err)

		assert.Equal(t, first.IsProxySet(), second.IsProxySet())
		assert.Equal(t, first.GetClient().Timeout, second.GetClient().Timeout)
		assert.NotSame(t, first, second)
	})
}
