// Package evidence maps publication-type metadata and bibliographic titles
// to evidence levels.
package evidence

import (
	"regexp"
	"strings"

	"github.com/evidence-navigator-server/internal/domain"
)

// titleRule is one tier of the title classification cascade. Either pattern
// may be nil; the ASCII pattern matches the lowercased title, the Japanese
// pattern matches the raw title.
type titleRule struct {
	level domain.EvidenceLevel
	ascii *regexp.Regexp
	ja    *regexp.Regexp
}

// The cascade is evaluated in fixed order; the first matching tier wins.
// Japanese bibliographic titles rarely carry an explicit study-type label,
// so the later Japanese-only tiers recover study type from idiomatic
// phrasing. Compiled once at package init.
var titleRules = []titleRule{
	{domain.LevelGuideline,
		regexp.MustCompile(`guideline|practice parameter|consensus statement|clinical recommendation`),
		regexp.MustCompile(`ガイドライン|推奨グレード`)},
	{domain.LevelSRMA,
		regexp.MustCompile(`systematic|meta[\s-]?analysis|umbrella review|scoping review`),
		regexp.MustCompile(`システマティック|メタアナリシス|メタ分析`)},
	{domain.LevelRCT,
		regexp.MustCompile(`randomiz|rct\b|controlled trial`),
		regexp.MustCompile(`ランダム化|無作為化?比較`)},
	{domain.LevelClinicalTrial,
		regexp.MustCompile(`clinical trial|intervention study|pilot study|feasibility`),
		regexp.MustCompile(`臨床試験|介入研究|パイロット`)},
	{domain.LevelObservational,
		regexp.MustCompile(`cohort|cross[\s-]?sectional|case[\s-]?control|registry|retrospectiv|prospectiv|epidemiolog|prevalence|incidence|survey|longitudinal|observational|follow[\s-]?up study`),
		regexp.MustCompile(`コホート|観察研究|横断研究|前向き|後ろ向き|追跡調査|縦断|症例対照|レジストリ|有病率|発生率|アンケート|質問紙`)},
	{domain.LevelCaseReport,
		regexp.MustCompile(`case report|case series`),
		regexp.MustCompile(`症例報告|症例検討|一例|1例|一症例|経験例`)},
	{domain.LevelReview,
		regexp.MustCompile(`review|overview|narrative`),
		regexp.MustCompile(`レビュー|総説|文献的考察|文献検討`)},
	{domain.LevelObservational,
		nil,
		regexp.MustCompile(`についての検討|に関する検討|の検討|因子の検討|要因.{0,4}検討|発生要因|に関する研究|に関する調査|の実態調査|解析|分析した|を分析|多変量|回帰|統計`)},
	{domain.LevelReview,
		nil,
		regexp.MustCompile(`の現状と課題|現状と展望|の動向|の概要|の概説|の紹介|最新の|特集|考え方と実際|の実際`)},
	{domain.LevelCaseReport,
		nil,
		regexp.MustCompile(`の報告|について報告|を報告|を経験`)},
	{domain.LevelClinicalTrial,
		regexp.MustCompile(`efficacy|effectiveness|comparison|outcome`),
		regexp.MustCompile(`効果|有効性|比較検討|治療成績`)},
	{domain.LevelObservational,
		nil,
		regexp.MustCompile(`影響|予後|関連|関与|相関|関係`)},
}

// ClassifyByTitle classifies a record by its title alone. It is total:
// titles matching no tier classify as "other".
func ClassifyByTitle(title string) domain.EvidenceLevel {
	lower := strings.ToLower(title)
	for _, rule := range titleRules {
		if rule.ascii != nil && rule.ascii.MatchString(lower) {
			return rule.level
		}
		if rule.ja != nil && rule.ja.MatchString(title) {
			return rule.level
		}
	}
	return domain.LevelOther
}

// ClassifyPubType classifies a record by its raw publication-type tokens,
// scanned in fixed priority.
func ClassifyPubType(pubTypes []string) domain.EvidenceLevel {
	lowered := make([]string, len(pubTypes))
	for i, t := range pubTypes {
		lowered[i] = strings.ToLower(t)
	}
	contains := func(sub string) bool {
		for _, t := range lowered {
			if strings.Contains(t, sub) {
				return true
			}
		}
		return false
	}
	equals := func(want string) bool {
		for _, t := range lowered {
			if t == want {
				return true
			}
		}
		return false
	}

	switch {
	case contains("practice guideline") || equals("guideline"):
		return domain.LevelGuideline
	case contains("systematic review"):
		return domain.LevelSRMA
	case contains("meta-analysis"):
		return domain.LevelSRMA
	case contains("randomized controlled trial"):
		return domain.LevelRCT
	case contains("clinical trial"):
		return domain.LevelClinicalTrial
	case contains("observational") || contains("cohort") || contains("case-control"):
		return domain.LevelObservational
	case contains("case report"):
		return domain.LevelCaseReport
	case equals("review"):
		return domain.LevelReview
	}
	return domain.LevelOther
}

// Classify applies the layered cascade: publication-type metadata first,
// then the title regex tiers when the metadata is absent or uninformative.
func Classify(pubTypes []string, title string) domain.EvidenceLevel {
	if level := ClassifyPubType(pubTypes); level != domain.LevelOther {
		return level
	}
	return ClassifyByTitle(title)
}
