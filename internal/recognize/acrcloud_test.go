package recognize

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/hifi/internal/apperr"
)

const matchJSON = `{
  "status": {"code": 0, "msg": "Success"},
  "metadata": {"music": [{
    "title": "Pasoori",
    "artists": [{"name": "Ali Sethi"}, {"name": "Shae Gill"}],
    "album": {"name": "Coke Studio Season 14"},
    "external_metadata": {"spotify": {"track": {"id": "5uRSpotify"}}}
  }]}
}`

func sampleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFFdata"), 0o600))
	return path
}

func newACR(t *testing.T, handler http.HandlerFunc) *ACRCloud {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	a := NewACRCloud(srv.URL, "key", "secret", srv.Client(), nil)
	a.now = func() time.Time { return time.Unix(1700000000, 0) }
	return a
}

func TestACRCloud_Sign(t *testing.T) {
	a := NewACRCloud("identify-ap-southeast-1.acrcloud.com", "key", "secret", nil, nil)

	assert.Equal(t, "https://identify-ap-southeast-1.acrcloud.com", a.baseURL)
	// HMAC-SHA1("POST\n/v1/identify\nkey\naudio\n1\n1700000000", "secret")
	sig := a.sign("1700000000")
	assert.Len(t, sig, 28)
	assert.Equal(t, sig, a.sign("1700000000"))
	assert.NotEqual(t, sig, a.sign("1700000001"))
}

func TestACRCloud_Identify(t *testing.T) {
	var fields map[string]string
	var sample []byte
	a := newACR(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, identifyPath, r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		fields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		f, _, err := r.FormFile("sample")
		require.NoError(t, err)
		defer f.Close()
		buf := make([]byte, 64)
		n, _ := f.Read(buf)
		sample = buf[:n]
		_, _ = w.Write([]byte(matchJSON))
	})

	match, err := a.Identify(context.Background(), sampleFile(t))
	require.NoError(t, err)

	assert.Equal(t, Match{
		Title:     "Pasoori",
		Artist:    "Ali Sethi",
		Album:     "Coke Studio Season 14",
		SpotifyID: "5uRSpotify",
	}, match)
	assert.Equal(t, []byte("RIFFdata"), sample)
	assert.Equal(t, "key", fields["access_key"])
	assert.Equal(t, "8", fields["sample_bytes"])
	assert.Equal(t, "1700000000", fields["timestamp"])
	assert.Equal(t, a.sign("1700000000"), fields["signature"])
	assert.Equal(t, "audio", fields["data_type"])
	assert.Equal(t, "1", fields["signature_version"])
}

func TestACRCloud_IdentifyErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   apperr.Kind
	}{
		{
			name:   "no result",
			status: http.StatusOK,
			body:   `{"status": {"code": 1001, "msg": "No result"}}`,
			kind:   apperr.KindNotFound,
		},
		{
			name:   "empty metadata",
			status: http.StatusOK,
			body:   `{"status": {"code": 0, "msg": "Success"}, "metadata": {"music": []}}`,
			kind:   apperr.KindNotFound,
		},
		{
			name:   "invalid signature",
			status: http.StatusOK,
			body:   `{"status": {"code": 3014, "msg": "invalid signature"}}`,
			kind:   apperr.KindNetwork,
		},
		{
			name:   "http error",
			status: http.StatusServiceUnavailable,
			body:   ``,
			kind:   apperr.KindNetwork,
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `{"status":`,
			kind:   apperr.KindDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newACR(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := a.Identify(context.Background(), sampleFile(t))
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.Classify(err))
		})
	}
}

func TestACRCloud_MissingSample(t *testing.T) {
	a := NewACRCloud("example.invalid", "key", "secret", nil, nil)
	_, err := a.Identify(context.Background(), filepath.Join(t.TempDir(), "none.wav"))
	assert.Error(t, err)
}
