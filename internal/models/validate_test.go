package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRole() *RoleRecord {
	end := "2023-06"
	return &RoleRecord{
		RoleID:   "acme-senior-engineer",
		Title:    "Senior Data Engineer",
		Company:  "Acme Analytics",
		Location: "Toronto, ON",
		Timeframe: Timeframe{
			Start: "2021-03",
			End:   &end,
		},
		Summary:  "Built and operated the analytics platform.",
		CoreTech: []string{"Python", "Snowflake"},
		Highlights: []Highlight{
			{Description: "Migrated the warehouse to Snowflake", Source: SourceMetadata{Path: "resume.pdf", Page: 1}},
		},
	}
}

func TestValidateRole_Valid(t *testing.T) {
	assert.NoError(t, ValidateRole(validRole()))
	assert.True(t, RoleIsValid(validRole()))
}

func TestValidateRole_Nil(t *testing.T) {
	err := ValidateRole(nil)
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.False(t, RoleIsValid(nil))
}

func TestValidateRole_EmptyRecord(t *testing.T) {
	assert.False(t, RoleIsValid(&RoleRecord{}))
}

func TestValidateRole_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RoleRecord)
	}{
		{"missing role_id", func(r *RoleRecord) { r.RoleID = "" }},
		{"missing title", func(r *RoleRecord) { r.Title = "" }},
		{"missing company", func(r *RoleRecord) { r.Company = "" }},
		{"missing location", func(r *RoleRecord) { r.Location = "" }},
		{"missing summary", func(r *RoleRecord) { r.Summary = "" }},
		{"missing core_tech", func(r *RoleRecord) { r.CoreTech = nil }},
		{"missing highlights", func(r *RoleRecord) { r.Highlights = nil }},
		{"missing timeframe", func(r *RoleRecord) { r.Timeframe = Timeframe{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role := validRole()
			tt.mutate(role)
			err := ValidateRole(role)
			assert.ErrorIs(t, err, ErrInvalidRecord)
			assert.Contains(t, err.Error(), "missing")
		})
	}
}

func TestValidateChunk(t *testing.T) {
	chunk := &VectorChunk{
		ChunkID: "acme-senior-engineer-h1",
		Text:    "Migrated the warehouse to Snowflake",
		Metadata: ChunkMetadata{
			RoleID:    "acme-senior-engineer",
			Company:   "Acme Analytics",
			Title:     "Senior Data Engineer",
			ChunkType: ChunkTypeHighlight,
		},
	}
	assert.NoError(t, ValidateChunk(chunk))

	assert.False(t, ChunkIsValid(nil))
	assert.False(t, ChunkIsValid(&VectorChunk{}))
	assert.False(t, ChunkIsValid(&VectorChunk{ChunkID: "x", Text: "y"}))
}

func TestProficiencyRank(t *testing.T) {
	assert.Equal(t, 0, ProficiencyExpert.Rank())
	assert.Equal(t, 1, ProficiencyAdvanced.Rank())
	assert.Equal(t, 2, ProficiencyIntermediate.Rank())
	assert.Equal(t, 3, ProficiencyFamiliar.Rank())
	assert.Equal(t, 4, Proficiency("wizard").Rank())

	assert.True(t, ProficiencyExpert.IsValid())
	assert.False(t, Proficiency("wizard").IsValid())
}

func TestTimeframeEndKey(t *testing.T) {
	end := "2023-06"
	closed := Timeframe{Start: "2021-03", End: &end}
	open := Timeframe{Start: "2023-07"}

	assert.False(t, closed.IsCurrent())
	assert.True(t, open.IsCurrent())

	// An ongoing timeframe must sort as more recent than any concrete end.
	assert.Greater(t, open.EndKey(), closed.EndKey())
	assert.Greater(t, open.EndKey(), "2099-12")
}
