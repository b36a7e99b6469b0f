package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "typical", raw: "intern, courier ,  ", want: []string{"intern", "courier"}},
		{name: "empty", raw: "", want: []string{}},
		{name: "only separators", raw: " , ,, ", want: []string{}},
		{name: "single", raw: "ассистент", want: []string{"ассистент"}},
		{name: "no spaces", raw: "a,b,c", want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SplitKeywords(tt.raw))
		})
	}
}

func TestSearchPayloadNormalizesKeywords(t *testing.T) {
	f := DefaultFilters()
	f.KeywordsToExclude = "intern, courier ,  "

	p := f.SearchPayload("r1", 50)

	require.Equal(t, []string{"intern", "courier"}, p.KeywordsToExclude)
	require.Equal(t, "r1", p.ResumeID)
	require.Equal(t, 50, p.Count)
}

func TestApplyPayloadDefaults(t *testing.T) {
	f := DefaultFilters()

	p := f.ApplyPayload("r1", 100)

	require.True(t, p.IsSimilarSearch)
	require.Equal(t, OrderByPublicationTime, p.OrderBy)
	require.Equal(t, "name", p.SearchField)
	require.Equal(t, 100, p.Count)
}

func TestApplyPayloadKeepsUserValues(t *testing.T) {
	f := DefaultFilters()
	f.OrderBy = OrderByRelevance
	f.SearchField = "description"
	f.CoverLetter = "Здравствуйте!"

	p := f.ApplyPayload("r1", 100)

	require.Equal(t, OrderByRelevance, p.OrderBy)
	require.Equal(t, "description", p.SearchField)
	require.Equal(t, "Здравствуйте!", p.CoverLetter)
}

func TestCreatePayload(t *testing.T) {
	f := DefaultFilters()
	f.Text = "golang"
	f.Area = "1"
	f.KeywordsToExclude = "стажер,курьер"

	p := f.CreatePayload("ночной прогон", "r2")

	require.Equal(t, "ночной прогон", p.NameRequest)
	require.Equal(t, "r2", p.ResumeID)
	require.True(t, p.EnabledSchedule)
	require.Nil(t, p.Enabled)
	require.Equal(t, []string{"стажер", "курьер"}, p.KeywordsToExclude)
}

func TestTogglePayloadInvertsEnabled(t *testing.T) {
	s := Scheduler{
		ID:      7,
		Enabled: true,
		Params:  SchedulerParams{Text: "qa", Area: "2"},
	}

	p := s.TogglePayload()

	require.NotNil(t, p.Enabled)
	require.False(t, *p.Enabled)
	require.False(t, p.EnabledSchedule)
	require.Equal(t, "qa", p.Text)
	require.Equal(t, "2", p.Area)
}
