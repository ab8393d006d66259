package recognize

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // required by the ACRCloud signature scheme
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/llehouerou/hifi/internal/apperr"
)

const (
	identifyPath     = "/v1/identify"
	dataType         = "audio"
	signatureVersion = "1"

	// statusNoResult is the ACRCloud status code for "no match".
	statusNoResult = 1001
)

// Match is an identified song.
type Match struct {
	Title     string
	Artist    string
	Album     string
	SpotifyID string
}

// Identifier identifies a WAV sample.
type Identifier interface {
	Identify(ctx context.Context, wavPath string) (Match, error)
}

// ACRCloud is a client for the ACRCloud identification API.
type ACRCloud struct {
	baseURL   string
	accessKey string
	secret    string
	client    *http.Client
	limiter   *rate.Limiter
	now       func() time.Time
	log       *log.Logger
}

var _ Identifier = (*ACRCloud)(nil)

// NewACRCloud creates a client for host (e.g.
// "identify-ap-southeast-1.acrcloud.com"). A host with a scheme is used as
// is. A nil client uses a 20 second timeout.
func NewACRCloud(host, accessKey, secret string, client *http.Client, logger *log.Logger) *ACRCloud {
	base := host
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ACRCloud{
		baseURL:   strings.TrimSuffix(base, "/"),
		accessKey: accessKey,
		secret:    secret,
		client:    client,
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		now:       time.Now,
		log:       logger,
	}
}

// sign computes the request signature for a timestamp.
func (a *ACRCloud) sign(timestamp string) string {
	stringToSign := strings.Join([]string{
		http.MethodPost,
		identifyPath,
		a.accessKey,
		dataType,
		signatureVersion,
		timestamp,
	}, "\n")

	mac := hmac.New(sha1.New, []byte(a.secret))
	mac.Write([]byte(stringToSign))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

type identifyResponse struct {
	Status struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	} `json:"status"`
	Metadata struct {
		Music []struct {
			Title   string `json:"title"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Album struct {
				Name string `json:"name"`
			} `json:"album"`
			ExternalMetadata struct {
				Spotify struct {
					Track struct {
						ID string `json:"id"`
					} `json:"track"`
				} `json:"spotify"`
			} `json:"external_metadata"`
		} `json:"music"`
	} `json:"metadata"`
}

// Identify uploads the sample. A sample without a match returns an error
// wrapping apperr.ErrNotFound.
func (a *ACRCloud) Identify(ctx context.Context, wavPath string) (Match, error) {
	sample, err := os.ReadFile(wavPath)
	if err != nil {
		return Match{}, fmt.Errorf("read sample: %w", err)
	}

	body, contentType, err := a.form(filepath.Base(wavPath), sample)
	if err != nil {
		return Match{}, err
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return Match{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+identifyPath, body)
	if err != nil {
		return Match{}, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := a.client.Do(req)
	if err != nil {
		return Match{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Match{}, fmt.Errorf("acrcloud: status %d: %w", resp.StatusCode, apperr.ErrNetwork)
	}

	var res identifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Match{}, fmt.Errorf("acrcloud: %w: %w", apperr.ErrDecode, err)
	}

	switch {
	case res.Status.Code == statusNoResult:
		return Match{}, fmt.Errorf("acrcloud: %s: %w", res.Status.Msg, apperr.ErrNotFound)
	case res.Status.Code != 0:
		return Match{}, fmt.Errorf("acrcloud: %s (code %d): %w", res.Status.Msg, res.Status.Code, apperr.ErrNetwork)
	case len(res.Metadata.Music) == 0:
		return Match{}, fmt.Errorf("acrcloud: empty metadata: %w", apperr.ErrNotFound)
	}

	m := res.Metadata.Music[0]
	match := Match{
		Title:     m.Title,
		Album:     m.Album.Name,
		SpotifyID: m.ExternalMetadata.Spotify.Track.ID,
	}
	if len(m.Artists) > 0 {
		match.Artist = m.Artists[0].Name
	}
	a.log.Debug("acrcloud match", "title", match.Title, "artist", match.Artist)
	return match, nil
}

func (a *ACRCloud) form(filename string, sample []byte) (io.Reader, string, error) {
	timestamp := strconv.FormatInt(a.now().Unix(), 10)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("sample", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(sample); err != nil {
		return nil, "", err
	}

	fields := [][2]string{
		{"access_key", a.accessKey},
		{"sample_bytes", strconv.Itoa(len(sample))},
		{"timestamp", timestamp},
		{"signature", a.sign(timestamp)},
		{"data_type", dataType},
		{"signature_version", signatureVersion},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
