package crawl

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/fwojciec/medsearch"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the DailyMed search endpoint.
const DefaultBaseURL = "https://dailymed.nlm.nih.gov/dailymed/search.cfm"

// DefaultPageSize is the number of results requested per search page.
const DefaultPageSize = 200

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressSearchPage reports one fetched page of search results.
	ProgressSearchPage ProgressType = iota

	// ProgressCollected reports the end of candidate collection.
	ProgressCollected

	// ProgressClassified reports one classified candidate.
	ProgressClassified

	// ProgressFinished reports the end of the crawl.
	ProgressFinished
)

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type ProgressType

	// Page and Found apply to search-page events: the page number and the
	// count of previously unseen candidates it yielded.
	Page  int
	Found int

	// Completed and Total apply to classification events.
	Completed int
	Total     int

	URL     string
	Verdict *medsearch.Verdict
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Result holds the outcome of one crawl.
type Result struct {
	Query string

	// Verdicts holds every classification in discovery order.
	Verdicts []*medsearch.Verdict

	// Qualified holds the qualified subset, also in discovery order.
	Qualified []*medsearch.Verdict
}

// Crawler drives paginated search and classifies each unique candidate
// exactly once. The seen-set and accumulating results are owned by the
// Crawler and mutated only on its single goroutine; a Crawler instance
// serves one crawl invocation.
type Crawler struct {
	Fetcher    medsearch.Fetcher
	Search     medsearch.SearchParser
	Classifier *Classifier

	// BaseURL overrides DefaultBaseURL when set.
	BaseURL string

	// PageSize overrides DefaultPageSize when positive.
	PageSize int

	// Limiter paces search-page fetches and classifications as a courtesy
	// to the upstream service. Nil disables pacing.
	Limiter *rate.Limiter

	RetryDelays []time.Duration
	Logger      LogFunc
}

// SearchURL builds the search request URL for one page of results.
func (c *Crawler) SearchURL(query string, page int) string {
	params := url.Values{}
	params.Set("labeltype", "all")
	params.Set("query", query)
	params.Set("pagesize", strconv.Itoa(c.pageSize()))
	params.Set("page", strconv.Itoa(page))
	return c.baseURL() + "?" + params.Encode()
}

// CollectCandidates paginates through search results starting at page 1 and
// returns the unique candidates in discovery order. The crawl stops when no
// next-page signal is detected OR the current page yielded zero new
// candidates, whichever comes first; a failed search-page request also ends
// collection (end of results, not a hard error).
func (c *Crawler) CollectCandidates(ctx context.Context, query string, progress ProgressFunc) []medsearch.Candidate {
	seen := make(map[string]struct{})
	var all []medsearch.Candidate

	for page := 1; ; page++ {
		if ctx.Err() != nil {
			break
		}

		html, err := FetchWithRetryDelays(ctx, c.SearchURL(query, page), c.Fetcher.Fetch, c.Logger, c.delays())
		if err != nil {
			break
		}

		candidates, err := c.Search.ExtractCandidates(html, c.baseURL())
		if err != nil {
			break
		}

		var fresh int
		for _, candidate := range candidates {
			if _, dup := seen[candidate.URL]; dup {
				continue
			}
			seen[candidate.URL] = struct{}{}
			all = append(all, candidate)
			fresh++
		}

		if progress != nil {
			progress(ProgressEvent{Type: ProgressSearchPage, Page: page, Found: fresh, Total: len(all)})
		}

		if !c.Search.HasNextPage(html, page) || fresh == 0 {
			break
		}

		if err := c.wait(ctx); err != nil {
			break
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressCollected, Total: len(all)})
	}
	return all
}

// Run performs the full crawl for a query: candidate collection followed by
// strictly sequential classification of each unique candidate.
func (c *Crawler) Run(ctx context.Context, query string, progress ProgressFunc) (*Result, error) {
	if query == "" {
		return nil, medsearch.Errorf(medsearch.EINVALID, "query required")
	}

	candidates := c.CollectCandidates(ctx, query, progress)

	result := &Result{Query: query}
	for i, candidate := range candidates {
		verdict := c.Classifier.Classify(ctx, candidate)
		result.Verdicts = append(result.Verdicts, verdict)
		if verdict.Qualified {
			result.Qualified = append(result.Qualified, verdict)
		}

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressClassified,
				Completed: i + 1,
				Total:     len(candidates),
				URL:       candidate.URL,
				Verdict:   verdict,
			})
		}

		if i < len(candidates)-1 {
			if err := c.wait(ctx); err != nil {
				break
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Total: len(candidates)})
	}
	return result, nil
}

func (c *Crawler) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
}

func (c *Crawler) pageSize() int {
	if c.PageSize > 0 {
		return c.PageSize
	}
	return DefaultPageSize
}

func (c *Crawler) delays() []time.Duration {
	if c.RetryDelays != nil {
		return c.RetryDelays
	}
	return DefaultRetryDelays()
}

func (c *Crawler) wait(ctx context.Context) error {
	if c.Limiter == nil {
		return nil
	}
	return c.Limiter.Wait(ctx)
}
