package skills

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mraso/portfolio/internal/models"
)

func TestFilter_Empty_ReturnsAll(t *testing.T) {
	repo, _ := newTestRepository(t)

	skills, err := repo.Filter(context.Background(), Filters{})
	require.NoError(t, err)
	assert.Len(t, skills, 3)
}

func TestFilter_CategoriesReplaceBasePool(t *testing.T) {
	repo, _ := newTestRepository(t)

	skills, err := repo.Filter(context.Background(), Filters{
		Categories: []string{"data-platforms"},
	})
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "cloud-warehousing", skills[0].ID)
}

func TestFilter_UnknownCategoryYieldsEmpty(t *testing.T) {
	repo, _ := newTestRepository(t)

	skills, err := repo.Filter(context.Background(), Filters{
		Categories: []string{"underwater-basket-weaving"},
	})
	require.NoError(t, err)
	assert.Empty(t, skills)
}

func TestFilter_ProficiencyAndYears(t *testing.T) {
	repo, _ := newTestRepository(t)

	skills, err := repo.Filter(context.Background(), Filters{
		Proficiency:     []models.Proficiency{models.ProficiencyExpert},
		YearsExperience: &YearsRange{Min: 5, Max: 10},
	})
	require.NoError(t, err)
	require.Len(t, skills, 1)
	for _, s := range skills {
		assert.Equal(t, models.ProficiencyExpert, s.Proficiency)
		assert.GreaterOrEqual(t, s.YearsExperience, 5.0)
		assert.LessOrEqual(t, s.YearsExperience, 10.0)
	}
}

func TestFilter_YearsRangeInclusive(t *testing.T) {
	repo, _ := newTestRepository(t)

	// go-services has exactly 5 years; min=5 must include it.
	skills, err := repo.Filter(context.Background(), Filters{
		YearsExperience: &YearsRange{Min: 5, Max: 5},
	})
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "go-services", skills[0].ID)
}

func TestFilter_TechnologySubstring(t *testing.T) {
	repo, _ := newTestRepository(t)

	skills, err := repo.Filter(context.Background(), Filters{
		Technologies: []string{"snow"},
	})
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "cloud-warehousing", skills[0].ID)
}

func TestFilter_CompanySubstring(t *testing.T) {
	repo, _ := newTestRepository(t)

	skills, err := repo.Filter(context.Background(), Filters{
		Companies: []string{"ACME"},
	})
	require.NoError(t, err)
	assert.Len(t, skills, 2)
}

func TestFilter_DateRange(t *testing.T) {
	repo, _ := newTestRepository(t)

	skills, err := repo.Filter(context.Background(), Filters{
		DateRange: &DateRange{Start: "2024-01-01", End: "2024-12-31"},
	})
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "cloud-warehousing", skills[0].ID)
}

func TestFilter_CombinedAreAdditive(t *testing.T) {
	repo, _ := newTestRepository(t)

	// Category narrows to programming-languages, then company narrows
	// further to the Acme skill only.
	skills, err := repo.Filter(context.Background(), Filters{
		Categories: []string{"programming-languages"},
		Companies:  []string{"acme"},
	})
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "python-scientific-stack", skills[0].ID)
}
