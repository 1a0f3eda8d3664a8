package main

import (
	"bytes"
	"net"
	"net/http/httptest"
	"testing"

	"pets-mvc/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthcheckCmd(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	host, port, err := net.SplitHostPort(ts.Listener.Addr().String())
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"healthcheck", "--host", host, "--port", port})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "ok (store=memory)")
}

func TestHealthcheckCmd_StoreMisconfigured(t *testing.T) {
	// el server corre aunque la config de store local esté incompleta
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_DSN", "")

	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	host, port, err := net.SplitHostPort(ts.Listener.Addr().String())
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"healthcheck", "--host", host, "--port", port})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "ok (store=memory)")
}

func TestHealthcheckCmd_ServerDown(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	_, port, err := net.SplitHostPort(ts.Listener.Addr().String())
	require.NoError(t, err)
	ts.Close()

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"healthcheck", "--port", port, "--timeout", "1s"})

	assert.Error(t, cmd.Execute())
}
