package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evidence-navigator-server/internal/domain"
)

func rec(id, source, title, doi string, year int, level domain.EvidenceLevel) domain.Record {
	r := domain.Record{
		ID:            id,
		Title:         title,
		Source:        source,
		FoundIn:       []string{source},
		DOI:           doi,
		EvidenceLevel: level,
	}
	if year != 0 {
		r.Year = domain.IntPtr(year)
	}
	return r
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"punctuation stripped", "Stroke, rehabilitation: a review!", "stroke rehabilitation a review"},
		{"whitespace collapsed", "  stroke \t rehabilitation  ", "stroke rehabilitation"},
		{"japanese preserved", "脳卒中のリハビリテーション", "脳卒中のリハビリテーション"},
		{"case folded", "KNEE Osteoarthritis", "knee osteoarthritis"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTitle(tt.title))
		})
	}
}

func TestDedupKey(t *testing.T) {
	withDOI := rec("1", "pubmed", "Some title long enough", "10.1/ABC", 2020, domain.LevelRCT)
	assert.Equal(t, "doi:10.1/abc", DedupKey(&withDOI))

	prefixed := rec("2", "epmc", "Other title", "https://doi.org/10.1/ABC", 2020, domain.LevelRCT)
	assert.Equal(t, "doi:10.1/abc", DedupKey(&prefixed), "doi.org prefix and case must not change the key")

	titled := rec("3", "openalex", "Exercise therapy for knee osteoarthritis", "", 2021, domain.LevelSRMA)
	assert.Equal(t, "t:exercise therapy for knee osteoarthritis:2021", DedupKey(&titled))

	noYear := rec("4", "openalex", "Exercise therapy for knee osteoarthritis", "", 0, domain.LevelSRMA)
	assert.Equal(t, "t:exercise therapy for knee osteoarthritis:?", DedupKey(&noYear))

	shortTitle := rec("abc123", "cinii", "Stroke", "", 2021, domain.LevelOther)
	assert.Equal(t, "id:abc123", DedupKey(&shortTitle), "short titles fall back to the adapter id")

	// Determinism: same record, same key
	again := rec("1", "pubmed", "Some title long enough", "10.1/ABC", 2020, domain.LevelRCT)
	assert.Equal(t, DedupKey(&withDOI), DedupKey(&again))
}

// Cross-source dedup: three records with one DOI collapse to one record
// carrying the best evidence level and full provenance.
func TestReconcilerMergesByDOI(t *testing.T) {
	rc := NewReconciler()
	rc.Add(rec("p1", domain.SourcePubMed, "Early mobilization after stroke", "10.1/abc", 2022, domain.LevelRCT))
	rc.Add(rec("e1", domain.SourceEPMC, "Early mobilization after stroke", "10.1/abc", 2022, domain.LevelReview))
	rc.Add(rec("o1", domain.SourceOpenAlex, "Early mobilization after stroke", "10.1/abc", 2022, domain.LevelSRMA))

	results := rc.Results()
	require.Len(t, results, 1)

	merged := results[0]
	assert.Equal(t, domain.LevelSRMA, merged.EvidenceLevel, "best rank wins: sr_ma outranks both rct and review")
	assert.Equal(t, []string{domain.SourcePubMed, domain.SourceEPMC, domain.SourceOpenAlex}, merged.FoundIn, "first-seen order preserved")
	assert.Contains(t, merged.FoundIn, merged.Source)

	counts := rc.SourceCounts()
	assert.Equal(t, 1, counts[domain.SourcePubMed], "first occupant gets the credit")
	assert.Zero(t, counts[domain.SourceEPMC])
	assert.Zero(t, counts[domain.SourceOpenAlex])
}

func TestReconcilerEvidenceLevelIsMinimumRank(t *testing.T) {
	// Order of arrival must not matter for the merged level
	permutations := [][]domain.EvidenceLevel{
		{domain.LevelReview, domain.LevelRCT, domain.LevelSRMA},
		{domain.LevelRCT, domain.LevelSRMA, domain.LevelReview},
		{domain.LevelSRMA, domain.LevelReview, domain.LevelRCT},
	}
	for _, levels := range permutations {
		rc := NewReconciler()
		for i, level := range levels {
			r := rec("x", domain.AllSources[i], "Shared dedup title here", "10.9/xyz", 2020, level)
			rc.Add(r)
		}
		results := rc.Results()
		require.Len(t, results, 1)
		assert.Equal(t, domain.LevelSRMA, results[0].EvidenceLevel)
	}
}

func TestReconcilerFillsAbsentFields(t *testing.T) {
	rc := NewReconciler()

	first := rec("a", domain.SourceJStage, "嚥下障害に対する訓練の効果検証研究", "", 0, domain.LevelOther)
	first.URL = "https://www.jstage.jst.go.jp/article/x"
	rc.Add(first)

	second := rec("b", domain.SourcePubMed, "嚥下障害に対する訓練の効果検証研究", "", 2019, domain.LevelOther)
	second.Journal = "Dysphagia"
	second.Language = "ja"
	second.Authors = []string{"Tanaka H", "Suzuki K"}
	second.Citations = domain.IntPtr(12)
	second.URL = "https://pubmed.ncbi.nlm.nih.gov/123/"
	rc.Add(second)

	// Same normalized title, first record had no year so keys differ only
	// if year participates; verify the no-year record keyed with "?" does
	// not merge, then check field fill on a true collision
	require.Len(t, rc.Results(), 2)

	rc2 := NewReconciler()
	third := rec("c", domain.SourceCiNii, "嚥下障害に対する訓練の効果検証研究", "", 2019, domain.LevelOther)
	rc2.Add(third)
	rc2.Add(second)

	results := rc2.Results()
	require.Len(t, results, 1)
	merged := results[0]
	assert.Equal(t, "Dysphagia", merged.Journal)
	assert.Equal(t, "ja", merged.Language)
	assert.Equal(t, []string{"Tanaka H", "Suzuki K"}, merged.Authors, "longer author list wins")
	assert.Equal(t, 12, *merged.Citations)
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/123/", merged.URL, "PubMed URL replaces a non-PubMed one")
	assert.Equal(t, domain.SourceCiNii, merged.Source)
}

func TestReconcilerKeepsMaxCitations(t *testing.T) {
	rc := NewReconciler()
	a := rec("a", domain.SourceS2, "Citation count comparison record", "10.5/cites", 2020, domain.LevelOther)
	a.Citations = domain.IntPtr(40)
	b := rec("b", domain.SourceOpenAlex, "Citation count comparison record", "10.5/cites", 2020, domain.LevelOther)
	b.Citations = domain.IntPtr(25)
	rc.Add(a)
	rc.Add(b)

	results := rc.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 40, *results[0].Citations)
}

func TestSourceCountsSumEqualsResults(t *testing.T) {
	rc := NewReconciler()
	rc.Add(rec("1", domain.SourcePubMed, "First distinct record title", "10.1/a", 2020, domain.LevelRCT))
	rc.Add(rec("2", domain.SourceJStage, "Second distinct record title", "10.1/b", 2021, domain.LevelOther))
	rc.Add(rec("3", domain.SourceEPMC, "First distinct record title", "10.1/a", 2020, domain.LevelReview))

	total := 0
	for _, n := range rc.SourceCounts() {
		total += n
	}
	assert.Equal(t, len(rc.Results()), total)
}

func TestGroupByLevel(t *testing.T) {
	records := []domain.Record{
		rec("1", "pubmed", "t1", "", 2018, domain.LevelRCT),
		rec("2", "pubmed", "t2", "", 2024, domain.LevelRCT),
		rec("3", "pubmed", "t3", "", 0, domain.LevelRCT),
		rec("4", "pubmed", "t4", "", 2021, domain.LevelGuideline),
	}
	grouped := GroupByLevel(records)

	// All eight buckets exist even when empty
	assert.Len(t, grouped, len(domain.LevelOrder))
	for _, level := range domain.LevelOrder {
		_, ok := grouped[level]
		assert.True(t, ok, "bucket %s missing", level)
	}

	rcts := grouped[domain.LevelRCT]
	require.Len(t, rcts, 3)
	// Years non-increasing, missing year sorts last
	assert.Equal(t, 2024, *rcts[0].Year)
	assert.Equal(t, 2018, *rcts[1].Year)
	assert.Nil(t, rcts[2].Year)
	assert.Len(t, grouped[domain.LevelGuideline], 1)
	assert.Empty(t, grouped[domain.LevelCaseReport])
}
