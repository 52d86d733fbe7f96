package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/davidcollom/denvr-catalog/pkg/catalog"
	"github.com/davidcollom/denvr-catalog/pkg/offersource"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDenvr struct {
	calls      int32
	authStatus int
	items      map[string]string
}

func (f *fakeDenvr) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&f.calls, 1)
	switch r.URL.Path {
	case "/api/TokenAuth/Authenticate":
		if f.authStatus != 0 {
			w.WriteHeader(f.authStatus)
			return
		}
		w.Write([]byte(`{"result":{"accessToken":"access","refreshToken":"refresh"}}`))
	case "/api/v1/servers/virtual/GetAvailability":
		if r.Header.Get("Authorization") != "Bearer access" || r.Header.Get("encryptedAccessToken") != "refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		items, ok := f.items[r.URL.Query().Get("cluster")]
		if !ok {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, `{"result":{"items":[%s]}}`, items)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func setup(t *testing.T, fake *fakeDenvr) *catalogOptions {
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	configFile := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("baseURL: "+server.URL+"\n"), 0o644))

	return &catalogOptions{
		output:     filepath.Join(dir, "denvr", "vms.csv"),
		configFile: configFile,
	}
}

func noEnv(string) string { return "" }

func TestRunCatalog(t *testing.T) {
	fake := &fakeDenvr{items: map[string]string{
		"Msc1": `{"configuration":"cpu-node","cluster":"Msc1","rpool":"on-demand","type":"virtual","price":0.3,"available":true,"count":1,"maxCount":4}`,
		"Hou1": `{"configuration":"T4-node","cluster":"Hou1","rpool":"on-demand","type":"virtual","price":0.9,"available":true,"count":2,"maxCount":2}`,
	}}
	o := setup(t, fake)
	o.summary = true
	env := func(key string) string {
		return map[string]string{
			catalog.UsernameEnv: "env@example.com",
			catalog.PasswordEnv: "secret",
		}[key]
	}

	var out bytes.Buffer
	require.NoError(t, runCatalog(context.Background(), o, env, &out))

	content, err := os.ReadFile(o.output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Configuration,Cluster,Resource Pool,Type,Price,Available,Count,MaxCount,GPU_Type,GPU_Memory(MiB)", lines[0])
	assert.Equal(t, "cpu-node,Msc1,on-demand,virtual,0.3,true,1,4,,0", lines[1])
	assert.Equal(t, "T4-node,Hou1,on-demand,virtual,0.9,true,2,2,T4,16384", lines[2])
	assert.Contains(t, out.String(), "Hou1")
}

func TestRunCatalogMissingCredentials(t *testing.T) {
	fake := &fakeDenvr{}
	o := setup(t, fake)

	err := runCatalog(context.Background(), o, noEnv, &bytes.Buffer{})
	assert.Equal(t, catalog.ErrMissingCredentials, err)
	assert.EqualValues(t, 0, atomic.LoadInt32(&fake.calls))
	assert.NoFileExists(t, o.output)
}

func TestRunCatalogAuthenticationFailure(t *testing.T) {
	fake := &fakeDenvr{authStatus: http.StatusUnauthorized}
	o := setup(t, fake)
	o.username, o.password = "user@example.com", "wrong"

	err := runCatalog(context.Background(), o, noEnv, &bytes.Buffer{})
	assert.Equal(t, offersource.ErrAuthentication, errors.Cause(err))
	assert.EqualValues(t, 1, atomic.LoadInt32(&fake.calls))
	assert.NoFileExists(t, o.output)
}

func TestRunCatalogFetchFailure(t *testing.T) {
	fake := &fakeDenvr{items: map[string]string{
		"Msc1": `{"configuration":"H100-8x","cluster":"Msc1"}`,
	}}
	o := setup(t, fake)
	o.username, o.password = "user@example.com", "pass"

	err := runCatalog(context.Background(), o, noEnv, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, offersource.ErrFetch, errors.Cause(err))
	assert.Contains(t, err.Error(), "is incomplete")

	content, err := os.ReadFile(o.output)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(content)), "\n"), 2)
}

func TestRunCatalogBadConfig(t *testing.T) {
	o := &catalogOptions{configFile: filepath.Join(t.TempDir(), "absent.yaml")}
	err := runCatalog(context.Background(), o, noEnv, &bytes.Buffer{})
	assert.Error(t, err)
}
