package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"strings"
	"time"

	"github.com/Skotchmaster/trustbasket/services/registration/internal/domain"
)

// HTTPSubmitter posts the registration as multipart/form-data to an external backend.
type HTTPSubmitter struct {
	url        string
	httpClient *http.Client
}

func NewHTTPSubmitter(url string, timeout time.Duration) *HTTPSubmitter {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSubmitter{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type backendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (s *HTTPSubmitter) Submit(ctx context.Context, p domain.Payload) (domain.Receipt, error) {
	body, contentType, err := encodeMultipart(p)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, body)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("read response: %w", err)
	}
	var result backendResponse
	decodeErr := json.Unmarshal(raw, &result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := result.Message
		if msg == "" {
			msg = result.Error
		}
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return domain.Receipt{}, fmt.Errorf("backend rejected registration with status %d: %s", resp.StatusCode, msg)
	}

	if decodeErr != nil {
		return domain.Receipt{}, fmt.Errorf("decode response with status %d: %w", resp.StatusCode, decodeErr)
	}
	if strings.TrimSpace(result.ID) == "" {
		return domain.Receipt{}, fmt.Errorf("backend accepted registration with status %d but returned no id", resp.StatusCode)
	}
	return domain.Receipt{ID: result.ID}, nil
}

// encodeMultipart writes fields in key order so the body is deterministic.
func encodeMultipart(p domain.Payload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, k := range sortedKeys(p.Fields) {
		if err := w.WriteField(k, p.Fields[k]); err != nil {
			return nil, "", err
		}
	}
	for _, k := range sortedKeys(p.Files) {
		f := p.Files[k]
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(k), escapeQuotes(f.Filename)))
		h.Set("Content-Type", f.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
