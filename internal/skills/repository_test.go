package skills

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mraso/portfolio/internal/models"
)

// testNow is the fixed clock used by all repository tests.
var testNow = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func testInventory() models.SkillInventory {
	return models.SkillInventory{
		Version:     "1.2.0",
		GeneratedAt: "2025-07-01T00:00:00Z",
		Categories: []models.SkillCategory{
			{
				ID:          "programming-languages",
				Name:        "Programming, Languages & Algorithms",
				Description: "Core languages and their ecosystems",
				Order:       1,
				Skills: []models.Skill{
					{
						ID:          "python-scientific-stack",
						Name:        "Python & Scientific Stack",
						Proficiency: models.ProficiencyExpert,
						Technologies: []models.Technology{
							{Name: "Pandas", Category: "library"},
							{Name: "NumPy", Category: "library"},
							{Name: "Airflow", Category: "platform", Context: "batch orchestration"},
						},
						Experiences: []models.ExperienceLink{
							{
								RoleID:    "acme-senior-engineer",
								Company:   "Acme Analytics",
								Highlight: "Built Python ETL pipelines feeding the lakehouse",
								Timeframe: models.Timeframe{Start: "2021-03"},
							},
						},
						Achievements: []models.Achievement{
							{
								Description: "Cut batch runtime by 60% with vectorized Pandas",
								Impact:      "Freed two hours of nightly processing window",
								Metrics: []models.Metric{
									{Type: models.MetricPerformance, Value: "60%", Context: "batch runtime reduction"},
								},
							},
						},
						Keywords:        []string{"python", "data-engineering"},
						LastUsed:        "2025-06-01",
						YearsExperience: 8,
					},
					{
						ID:          "go-services",
						Name:        "Go Services",
						Proficiency: models.ProficiencyAdvanced,
						Technologies: []models.Technology{
							{Name: "Gin", Category: "framework"},
							{Name: "gRPC", Category: "framework"},
						},
						Experiences: []models.ExperienceLink{
							{
								RoleID:    "nimbus-platform-engineer",
								Company:   "Nimbus Cloud",
								Highlight: "Shipped Go microservices behind the API gateway",
								Timeframe: models.Timeframe{Start: "2019-01", End: strPtr("2021-02")},
							},
						},
						Achievements: []models.Achievement{
							{Description: "Scaled the public API to 10k requests per second"},
						},
						Keywords:        []string{"golang", "backend"},
						LastUsed:        "2023-05-10",
						YearsExperience: 5,
					},
				},
			},
			{
				ID:          "data-platforms",
				Name:        "Data Platforms & Warehousing",
				Description: "Warehouses, lakes and the tooling around them",
				Order:       0,
				Skills: []models.Skill{
					{
						ID:          "cloud-warehousing",
						Name:        "Cloud Data Warehousing",
						Proficiency: models.ProficiencyIntermediate,
						Technologies: []models.Technology{
							{Name: "Snowflake", Category: "platform"},
							{Name: "dbt", Category: "tool"},
						},
						Experiences: []models.ExperienceLink{
							{
								RoleID:    "acme-senior-engineer",
								Company:   "Acme Analytics",
								Highlight: "Modeled analytics marts in dbt",
								Timeframe: models.Timeframe{Start: "2021-06"},
							},
						},
						Achievements: []models.Achievement{
							{
								Description: "Migrated the warehouse to Snowflake",
								Impact:      "Saved $200k annually",
							},
						},
						Keywords:        []string{"sql", "warehouse"},
						LastUsed:        "2024-11-20",
						YearsExperience: 4,
					},
				},
			},
		},
	}
}

func strPtr(s string) *string { return &s }

// countingFetcher serves a fixed inventory and counts fetches.
type countingFetcher struct {
	calls int64
	doc   []byte
	err   error
}

func (f *countingFetcher) Fetch(_ context.Context) ([]byte, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func newTestRepository(t *testing.T) (*Repository, *countingFetcher) {
	t.Helper()
	doc, err := json.Marshal(testInventory())
	require.NoError(t, err)

	fetcher := &countingFetcher{doc: doc}
	repo := NewRepositoryWithClock(fetcher, func() time.Time { return testNow })
	return repo, fetcher
}

func newRepositoryFromInventory(t *testing.T, inventory models.SkillInventory) *Repository {
	t.Helper()
	doc, err := json.Marshal(inventory)
	require.NoError(t, err)

	return NewRepositoryWithClock(&countingFetcher{doc: doc}, func() time.Time { return testNow })
}

func TestData_MemoizesFetch(t *testing.T) {
	repo, fetcher := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Data(ctx)
	require.NoError(t, err)
	second, err := repo.Data(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt64(&fetcher.calls))
}

func TestData_ConcurrentFirstLoadFetchesOnce(t *testing.T) {
	repo, fetcher := newTestRepository(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Data(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt64(&fetcher.calls))
}

func TestClearCache_Refetches(t *testing.T) {
	repo, fetcher := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Data(ctx)
	require.NoError(t, err)

	repo.ClearCache()

	_, err = repo.Data(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&fetcher.calls))
}

func TestData_FetchError(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("document store unreachable")}
	repo := NewRepository(fetcher)

	_, err := repo.Data(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load skills inventory")
}

func TestData_ParseError(t *testing.T) {
	repo := NewRepository(FetcherFunc(func(context.Context) ([]byte, error) {
		return []byte("{not json"), nil
	}))

	_, err := repo.Data(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse skills inventory")
}

func TestCategories_SortedByOrder(t *testing.T) {
	repo, _ := newTestRepository(t)

	categories, err := repo.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "data-platforms", categories[0].ID)
	assert.Equal(t, "programming-languages", categories[1].ID)
}

func TestAllSkills_FlattensInCategoryOrder(t *testing.T) {
	repo, _ := newTestRepository(t)

	all, err := repo.AllSkills(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "cloud-warehousing", all[0].ID)
	assert.Equal(t, "python-scientific-stack", all[1].ID)
	assert.Equal(t, "go-services", all[2].ID)
}

func TestSkillByID(t *testing.T) {
	repo, _ := newTestRepository(t)

	skill, category, err := repo.SkillByID(context.Background(), "go-services")
	require.NoError(t, err)
	assert.Equal(t, "Go Services", skill.Name)
	assert.Equal(t, "programming-languages", category.ID)

	_, _, err = repo.SkillByID(context.Background(), "basket-weaving")
	assert.ErrorIs(t, err, ErrSkillNotFound)
}

func TestSkillsByProficiency(t *testing.T) {
	repo, _ := newTestRepository(t)

	experts, err := repo.SkillsByProficiency(context.Background(), models.ProficiencyExpert)
	require.NoError(t, err)
	require.Len(t, experts, 1)
	assert.Equal(t, "python-scientific-stack", experts[0].ID)
}

func TestSkillsByExperience(t *testing.T) {
	repo, _ := newTestRepository(t)

	acme, err := repo.SkillsByExperience(context.Background(), "acme-senior-engineer")
	require.NoError(t, err)
	assert.Len(t, acme, 2)
}

func TestSkillsByCompany_CaseInsensitiveSubstring(t *testing.T) {
	repo, _ := newTestRepository(t)

	hits, err := repo.SkillsByCompany(context.Background(), "nimbus")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "go-services", hits[0].ID)
}

func TestSearch_MatchesAcrossFields(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	tests := []struct {
		keyword string
		wantIDs []string
	}{
		{"snowflake", []string{"cloud-warehousing"}},       // technology name
		{"golang", []string{"go-services"}},                // keyword
		{"$200k", []string{"cloud-warehousing"}},           // achievement impact
		{"gateway", []string{"go-services"}},               // experience highlight
		{"acme", []string{"cloud-warehousing", "python-scientific-stack"}}, // company
		{"quantum", nil}, // no match is a normal empty result
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			hits, err := repo.Search(ctx, tt.keyword)
			require.NoError(t, err)

			var ids []string
			for _, s := range hits {
				ids = append(ids, s.ID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestSkillsByProficiencyOrder(t *testing.T) {
	repo, _ := newTestRepository(t)

	ordered, err := repo.SkillsByProficiencyOrder(context.Background())
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, models.ProficiencyExpert, ordered[0].Proficiency)
	assert.Equal(t, models.ProficiencyAdvanced, ordered[1].Proficiency)
	assert.Equal(t, models.ProficiencyIntermediate, ordered[2].Proficiency)
}

func TestRecentSkills(t *testing.T) {
	repo, _ := newTestRepository(t)

	// Within 12 months of the fixed clock (2025-08-01): python (2025-06-01)
	// and warehousing (2024-11-20); go-services (2023-05-10) is stale.
	recent, err := repo.RecentSkills(context.Background(), 12)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	// Default window is also 12 months.
	recentDefault, err := repo.RecentSkills(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, len(recent), len(recentDefault))

	narrow, err := repo.RecentSkills(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, narrow, 1)
	assert.Equal(t, "python-scientific-stack", narrow[0].ID)
}
