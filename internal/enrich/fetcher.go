package enrich

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ndwells/wellbook/internal/model"
)

// Fetcher obtains enrichment attributes for one well. A nil result with a
// nil error means the source has no page for the well; that is not a
// failure.
type Fetcher interface {
	Fetch(ctx context.Context, well model.WellRecord) (*model.Enrichment, error)
}

// DrillingEdgeOptions configures the DrillingEdge fetcher.
type DrillingEdgeOptions struct {
	BaseURL    string
	State      string
	Timeout    time.Duration
	MaxRetries int
	Delay      time.Duration // minimum spacing between requests
}

// DrillingEdge fetches well pages from drillingedge.com and parses the five
// enrichment attributes out of the page HTML.
type DrillingEdge struct {
	client  *http.Client
	opts    DrillingEdgeOptions
	limiter *rate.Limiter
}

const browserUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// NewDrillingEdge creates a DrillingEdge fetcher with request pacing.
func NewDrillingEdge(opts DrillingEdgeOptions) *DrillingEdge {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://www.drillingedge.com"
	}
	if opts.State == "" {
		opts.State = "north-dakota"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.Delay <= 0 {
		opts.Delay = time.Second
	}
	return &DrillingEdge{
		client:  &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		limiter: rate.NewLimiter(rate.Every(opts.Delay), 1),
	}
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// WellURL builds the well page URL from county, well name and API number.
func (d *DrillingEdge) WellURL(well model.WellRecord) string {
	return fmt.Sprintf("%s/%s/%s/wells/%s/%s",
		d.opts.BaseURL, d.opts.State,
		slugify(well.County), slugify(well.WellName),
		strings.ToLower(well.APINumber),
	)
}

// Fetch retrieves and parses one well page. 404 means no page for this well
// and returns (nil, nil); transport errors and 5xx are retried with a short
// backoff before surfacing.
func (d *DrillingEdge) Fetch(ctx context.Context, well model.WellRecord) (*model.Enrichment, error) {
	pageURL := d.WellURL(well)

	var lastErr error
	for attempt := 1; attempt <= d.opts.MaxRetries; attempt++ {
		if err := d.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "drillingedge: rate limit wait")
		}

		body, status, err := d.get(ctx, pageURL)
		if err != nil {
			lastErr = err
		} else {
			switch {
			case status == http.StatusNotFound:
				return nil, nil
			case status >= 500:
				lastErr = eris.Errorf("drillingedge: status %d for %s", status, pageURL)
			case status != http.StatusOK:
				return nil, eris.Errorf("drillingedge: status %d for %s", status, pageURL)
			default:
				e := parseWellPage(body)
				e.SourceURL = pageURL
				return &e, nil
			}
		}

		zap.L().Debug("drillingedge fetch retry",
			zap.String("url", pageURL),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return nil, lastErr
}

func (d *DrillingEdge) get(ctx context.Context, pageURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", 0, eris.Wrap(err, "drillingedge: build request")
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", 0, eris.Wrapf(err, "drillingedge: get %s", pageURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", resp.StatusCode, eris.Wrapf(err, "drillingedge: read %s", pageURL)
	}
	return string(body), resp.StatusCode, nil
}

// Page parsing. The well page lays its facts out two ways: a details table
// of th/td pairs and headline "block stat" counters for production totals.
var (
	tagRe       = regexp.MustCompile(`<[^>]+>`)
	statRowRe   = regexp.MustCompile(`(?is)<th[^>]*>\s*([^<]+?)\s*</th>\s*<td[^>]*>(.*?)</td>`)
	blockStatRe = regexp.MustCompile(`(?is)<p[^>]*class="block_stat"[^>]*>(.*?)</p>`)
	oilStatRe   = regexp.MustCompile(`(?i)([\d,.]+\s*[kKmM]?)\s*barrels\s+of\s+oil`)
	gasStatRe   = regexp.MustCompile(`(?i)([\d,.]+\s*[kKmM]?)\s*mcf\s+of\s+gas`)
)

func parseWellPage(page string) model.Enrichment {
	var e model.Enrichment

	for _, m := range statRowRe.FindAllStringSubmatch(page, -1) {
		label := strings.ToLower(strings.TrimSpace(m[1]))
		val := html.UnescapeString(strings.TrimSpace(tagRe.ReplaceAllString(m[2], "")))
		if val == "" {
			continue
		}
		switch {
		case strings.Contains(label, "well status"):
			e.WellStatus = val
		case strings.Contains(label, "well type"):
			e.WellType = val
		case strings.Contains(label, "closest city"):
			e.ClosestCity = val
		}
	}

	for _, m := range blockStatRe.FindAllStringSubmatch(page, -1) {
		stat := tagRe.ReplaceAllString(m[1], " ")
		if om := oilStatRe.FindStringSubmatch(stat); om != nil && e.BarrelsOilProduced == "" {
			e.BarrelsOilProduced = strings.TrimSpace(om[1])
		}
		if gm := gasStatRe.FindStringSubmatch(stat); gm != nil && e.MCFGasProduced == "" {
			e.MCFGasProduced = strings.TrimSpace(gm[1])
		}
	}
	return e
}
