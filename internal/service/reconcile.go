package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/evidence-navigator-server/internal/domain"
)

var (
	doiPrefixRe  = regexp.MustCompile(`(?i)^https?://doi\.org/`)
	titleStripRe = regexp.MustCompile(`[^\w\s\x{3040}-\x{30FF}\x{3400}-\x{4DBF}\x{4E00}-\x{9FFF}]`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// NormalizeDOI lowercases a DOI and strips any doi.org URL prefix
func NormalizeDOI(doi string) string {
	return strings.ToLower(doiPrefixRe.ReplaceAllString(strings.TrimSpace(doi), ""))
}

// NormalizeTitle lowercases a title, removes every character outside word
// characters, whitespace and the CJK ranges, and collapses whitespace
func NormalizeTitle(title string) string {
	t := strings.ToLower(title)
	t = titleStripRe.ReplaceAllString(t, "")
	t = spaceRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// DedupKey derives the deterministic identity key of a record: DOI when
// present, else normalized title+year when the title is long enough to be
// distinctive, else the adapter-scoped id.
func DedupKey(r *domain.Record) string {
	if doi := NormalizeDOI(r.DOI); doi != "" {
		return "doi:" + doi
	}
	if t := NormalizeTitle(r.Title); len([]rune(t)) > 10 {
		year := "?"
		if r.Year != nil {
			year = fmt.Sprintf("%d", *r.Year)
		}
		return "t:" + t + ":" + year
	}
	return "id:" + r.ID
}

// Reconciler deduplicates records across sources and merges complementary
// fields. It is request-scoped and not safe for concurrent use; the
// orchestrator feeds it after the fan-in.
type Reconciler struct {
	order        []string
	byKey        map[string]*domain.Record
	firstSource  map[string]string
	sourceCounts map[string]int
}

// NewReconciler creates an empty reconciler
func NewReconciler() *Reconciler {
	return &Reconciler{
		byKey:        make(map[string]*domain.Record),
		firstSource:  make(map[string]string),
		sourceCounts: make(map[string]int),
	}
}

// Add inserts one adapter record, merging it into an existing entry when
// its dedup key collides
func (rc *Reconciler) Add(r domain.Record) {
	if len(r.FoundIn) == 0 {
		r.FoundIn = []string{r.Source}
	}
	key := DedupKey(&r)
	existing, ok := rc.byKey[key]
	if !ok {
		clone := r
		rc.byKey[key] = &clone
		rc.order = append(rc.order, key)
		rc.firstSource[key] = r.Source
		rc.sourceCounts[r.Source]++
		return
	}
	merge(existing, &r)
}

// merge folds the incoming record into the existing representative
func merge(dst, src *domain.Record) {
	if src.EvidenceLevel.Better(dst.EvidenceLevel) {
		dst.EvidenceLevel = src.EvidenceLevel
	}
	if src.Citations != nil && (dst.Citations == nil || *src.Citations > *dst.Citations) {
		dst.Citations = src.Citations
	}
	if dst.DOI == "" {
		dst.DOI = src.DOI
	}
	if dst.Journal == "" {
		dst.Journal = src.Journal
	}
	if dst.Year == nil {
		dst.Year = src.Year
	}
	if dst.Language == "" {
		dst.Language = src.Language
	}
	if len(src.Authors) > len(dst.Authors) {
		dst.Authors = src.Authors
	}
	if isPubMedURL(src.URL) && !isPubMedURL(dst.URL) {
		dst.URL = src.URL
	}
	dst.PubTypes = unionStrings(dst.PubTypes, src.PubTypes)
	dst.FoundIn = unionStrings(dst.FoundIn, src.FoundIn)
}

func isPubMedURL(u string) bool {
	return strings.Contains(u, "pubmed.ncbi.nlm.nih.gov")
}

// unionStrings appends the members of b missing from a, preserving first
// insertion order
func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			a = append(a, s)
		}
	}
	return a
}

// Results returns the merged records in first-insertion order
func (rc *Reconciler) Results() []domain.Record {
	out := make([]domain.Record, 0, len(rc.order))
	for _, key := range rc.order {
		out = append(out, *rc.byKey[key])
	}
	return out
}

// SourceCounts credits each merged record once, against the source of the
// first record to occupy its dedup key. FoundIn preserves full provenance.
func (rc *Reconciler) SourceCounts() map[string]int {
	out := make(map[string]int, len(rc.sourceCounts))
	for k, v := range rc.sourceCounts {
		out[k] = v
	}
	return out
}

// GroupByLevel buckets records by evidence level in the fixed display order;
// within each bucket records sort by descending year, missing year last.
func GroupByLevel(records []domain.Record) map[domain.EvidenceLevel][]domain.Record {
	grouped := make(map[domain.EvidenceLevel][]domain.Record, len(domain.LevelOrder))
	for _, level := range domain.LevelOrder {
		grouped[level] = []domain.Record{}
	}
	for _, r := range records {
		level := r.EvidenceLevel
		if _, ok := grouped[level]; !ok {
			level = domain.LevelOther
		}
		grouped[level] = append(grouped[level], r)
	}
	for _, level := range domain.LevelOrder {
		bucket := grouped[level]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].YearOrZero() > bucket[j].YearOrZero()
		})
	}
	return grouped
}
