package optimize

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tnguyen/resume-engine/internal/httputil"
	"github.com/tnguyen/resume-engine/pkg/types"
)

var (
	scriptPattern = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	stylePattern  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// maxPostingLen caps the extracted posting text to keep the prompt inside
// the provider's token budget.
const maxPostingLen = 10000

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// FetchJobPosting downloads a job posting and reduces it to plain text:
// script and style blocks removed, tags stripped, whitespace collapsed,
// and the result truncated to maxPostingLen.
func FetchJobPosting(ctx context.Context, client *http.Client, jobURL string, cfg types.HTTPConfig) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jobURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", fmt.Errorf("fetching job posting from %s: %w", jobURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching job posting from %s: HTTP %d", jobURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading job posting: %w", err)
	}

	text := StripHTML(string(body))
	if text == "" {
		return "", fmt.Errorf("job posting at %s contained no text", jobURL)
	}
	return truncate(text, maxPostingLen), nil
}

// StripHTML reduces an HTML page to plain text. Crude tag stripping is all
// the prompt needs; the model tolerates leftover boilerplate.
func StripHTML(s string) string {
	s = scriptPattern.ReplaceAllString(s, "")
	s = stylePattern.ReplaceAllString(s, "")
	s = tagPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
