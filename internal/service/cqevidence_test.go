package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCQKeywords(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     []string
	}{
		{
			"japanese with prefix",
			"CQ1 脳卒中患者に対して発症早期からのリハビリテーションは推奨されるか",
			[]string{"脳卒中", "発症早期", "リハビリテーション"},
		},
		{
			"katakana and latin tokens",
			"Q12 サルコペニアにHMB補給は有効か",
			[]string{"サルコペニア", "HMB", "補給"},
		},
		{
			"patient suffix stripped",
			"変形性膝関節症患者に運動療法は推奨されるか",
			[]string{"変形性膝関節症", "運動療法"},
		},
		{
			"stop list filters noise",
			"治療の効果はあるか",
			[]string{},
		},
		{
			"english question",
			"Should exercise therapy be recommended for chronic back pain?",
			[]string{"exercise", "therapy", "chronic", "back"},
		},
		{
			"english stop words removed",
			"What is the efficacy of treadmill training?",
			[]string{"efficacy", "treadmill", "training"},
		},
		{
			"empty input",
			"",
			[]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCQKeywords(tt.question))
		})
	}
}

func TestExtractCQKeywordsCaps(t *testing.T) {
	ja := ExtractCQKeywords("脳卒中のリハビリテーションとトレッドミルとロボットとキューイング")
	assert.LessOrEqual(t, len(ja), 3)

	en := ExtractCQKeywords("one two three four five six seven")
	assert.Len(t, en, 4)
}

func TestPromoteToEnglish(t *testing.T) {
	f := newFixture(nil)

	t.Run("synonym index first", func(t *testing.T) {
		// 脳卒中 has a Latin member in the fixture synonym table
		got := f.orch.promoteToEnglish([]string{"脳卒中"})
		assert.Equal(t, []string{"stroke"}, got)
	})

	t.Run("lexicon fallback", func(t *testing.T) {
		got := f.orch.promoteToEnglish([]string{"運動療法"})
		assert.Equal(t, []string{"exercise therapy"}, got)
	})

	t.Run("latin passes through", func(t *testing.T) {
		got := f.orch.promoteToEnglish([]string{"COPD"})
		assert.Equal(t, []string{"COPD"}, got)
	})

	t.Run("unmapped japanese stays", func(t *testing.T) {
		got := f.orch.promoteToEnglish([]string{"未知語彙"})
		assert.Equal(t, []string{"未知語彙"}, got)
	})
}

func TestCQEvidence(t *testing.T) {
	f := newFixture(nil)

	resp := f.orch.CQEvidence(context.Background(), "CQ1 脳卒中にリハビリテーションは有効か", "")
	require.Len(t, f.pubmed.limited, 1)

	call := f.pubmed.limited[0]
	assert.Equal(t, 5, call.retmax)
	assert.Contains(t, call.query, "stroke AND")
	assert.Contains(t, call.query, "systematic review[pt] OR meta-analysis[pt] OR randomized controlled trial[pt]")
	assert.Contains(t, resp.Keywords, "stroke")
	assert.Equal(t, call.query, resp.Query)
	assert.Len(t, resp.Results, 1)
}

func TestCQEvidenceKeywordOverride(t *testing.T) {
	f := newFixture(nil)

	resp := f.orch.CQEvidence(context.Background(), "ignored question", "stroke, rehabilitation, gait, balance, extra")
	require.Len(t, f.pubmed.limited, 1)

	assert.Equal(t, []string{"stroke", "rehabilitation", "gait", "balance"}, resp.Keywords, "first four comma-separated terms win")
	assert.Contains(t, f.pubmed.limited[0].query, "(stroke AND rehabilitation AND gait AND balance)")
}

func TestCQEvidenceUpstreamFailureDegrades(t *testing.T) {
	f := newFixture(nil)
	f.pubmed.err = errors.New("pubmed down")

	resp := f.orch.CQEvidence(context.Background(), "CQ1 脳卒中にリハビリテーションは有効か", "")
	assert.Empty(t, resp.Results)
	assert.NotEmpty(t, resp.Keywords)
}

func TestCQEvidenceNoKeywords(t *testing.T) {
	f := newFixture(nil)

	resp := f.orch.CQEvidence(context.Background(), "治療の効果はあるか", "")
	assert.Empty(t, resp.Results)
	assert.Empty(t, resp.Keywords)
	assert.Empty(t, f.pubmed.limited, "no PubMed call without keywords")
}

func TestCQList(t *testing.T) {
	f := newFixture(nil)

	resp := f.orch.CQList("")
	assert.Equal(t, 2, resp.TotalGuidelines, "guidelines without CQs are omitted")
	assert.Equal(t, 2, resp.TotalCQs)

	filtered := f.orch.CQList("nonexistent")
	assert.Zero(t, filtered.TotalGuidelines)
}
