package external

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/evidence-navigator-server/internal/domain"
	"github.com/evidence-navigator-server/pkg/evidence"
)

// JStageClient searches the J-STAGE article feed. The feed is Atom-like XML
// with vendor extensions; it is narrow and predictable, so the parser
// operates by regex rather than a full XML decoder.
type JStageClient struct {
	baseURL    string
	httpClient *http.Client
}

// JStageConfig contains configuration for the J-STAGE client
type JStageConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewJStageClient creates a new J-STAGE search client
func NewJStageClient(config JStageConfig) *JStageClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.jstage.jst.go.jp/searchapi/do"
	}
	if config.Timeout == 0 {
		config.Timeout = 8 * time.Second
	}
	return &JStageClient{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Name returns the canonical source label
func (j *JStageClient) Name() string {
	return domain.SourceJStage
}

var (
	jstEntryRe       = regexp.MustCompile(`(?s)<entry>(.*?)</entry>`)
	jstTitleJaRe     = regexp.MustCompile(`(?s)<article_title>.*?<ja>(.*?)</ja>`)
	jstTitleEnRe     = regexp.MustCompile(`(?s)<article_title>.*?<en>(.*?)</en>`)
	jstBottomTitleRe = regexp.MustCompile(`(?s)<title>(.*?)</title>`)
	jstLinkJaRe      = regexp.MustCompile(`(?s)<article_link>.*?<ja>(.*?)</ja>`)
	jstLinkEnRe      = regexp.MustCompile(`(?s)<article_link>.*?<en>(.*?)</en>`)
	jstLinkHrefRe    = regexp.MustCompile(`<link[^>]*href="([^"]+)"`)
	jstAuthorsJaRe   = regexp.MustCompile(`(?s)<author>.*?<ja>(.*?)</ja>`)
	jstAuthorsEnRe   = regexp.MustCompile(`(?s)<author>.*?<en>(.*?)</en>`)
	jstNameRe        = regexp.MustCompile(`(?s)<name>(.*?)</name>`)
	jstJournalJaRe   = regexp.MustCompile(`(?s)<material_title>.*?<ja>(.*?)</ja>`)
	jstPubNameRe     = regexp.MustCompile(`(?s)<prism:publicationName>(.*?)</prism:publicationName>`)
	jstPubYearRe     = regexp.MustCompile(`<pubyear>(\d{4})</pubyear>`)
	jstDOIRe         = regexp.MustCompile(`(?s)<prism:doi>(.*?)</prism:doi>`)
)

// Search queries the article service and parses each <entry> block.
// Records with an empty title are dropped.
func (j *JStageClient) Search(ctx context.Context, query string) ([]domain.Record, error) {
	params := url.Values{
		"service": {"3"},
		"text":    {query},
		"count":   {"30"},
	}
	resp, err := doGet(ctx, j.httpClient, j.Name(), fmt.Sprintf("%s?%s", j.baseURL, params.Encode()))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &domain.UpstreamError{Source: j.Name(), Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Source: j.Name(), Err: fmt.Errorf("read response: %w", err)}
	}
	return j.parseFeed(string(body)), nil
}

func (j *JStageClient) parseFeed(feed string) []domain.Record {
	var records []domain.Record
	for i, m := range jstEntryRe.FindAllStringSubmatch(feed, -1) {
		entry := m[1]
		rec := j.parseEntry(i, entry)
		if rec.Title == "" {
			continue
		}
		records = append(records, rec)
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records
}

func (j *JStageClient) parseEntry(idx int, entry string) domain.Record {
	title := firstGroup(jstTitleJaRe, entry)
	if title == "" {
		title = firstGroup(jstTitleEnRe, entry)
	}
	if title == "" {
		title = firstGroup(jstBottomTitleRe, entry)
	}
	title = stripHTML(title)

	link := firstGroup(jstLinkJaRe, entry)
	if link == "" {
		link = firstGroup(jstLinkEnRe, entry)
	}
	if link == "" {
		link = firstGroup(jstLinkHrefRe, entry)
	}

	authorBlock := firstGroup(jstAuthorsJaRe, entry)
	if authorBlock == "" {
		authorBlock = firstGroup(jstAuthorsEnRe, entry)
	}
	var authors []string
	for _, nm := range jstNameRe.FindAllStringSubmatch(authorBlock, -1) {
		if name := stripHTML(nm[1]); name != "" {
			authors = append(authors, name)
		}
	}

	journal := stripHTML(firstGroup(jstJournalJaRe, entry))
	if journal == "" {
		journal = stripHTML(firstGroup(jstPubNameRe, entry))
	}

	doi := normalizeDOI(firstGroup(jstDOIRe, entry))
	id := doi
	if id == "" {
		id = link
	}
	if id == "" {
		id = fmt.Sprintf("jstage-%d", idx)
	}

	return domain.Record{
		ID:            id,
		Title:         title,
		Authors:       capAuthors(authors),
		Journal:       journal,
		Year:          yearFrom(firstGroup(jstPubYearRe, entry)),
		EvidenceLevel: evidence.ClassifyByTitle(title),
		DOI:           doi,
		URL:           link,
		Source:        j.Name(),
		FoundIn:       []string{j.Name()},
		Language:      "ja",
	}
}

// firstGroup returns the first capture of the first match, or ""
func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}
