package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mraso/portfolio/internal/assistant"
	"github.com/mraso/portfolio/internal/config"
	"github.com/mraso/portfolio/internal/db"
	"github.com/mraso/portfolio/internal/llm"
	"github.com/mraso/portfolio/internal/models"
	"github.com/mraso/portfolio/internal/roles"
	"github.com/mraso/portfolio/internal/skills"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeLLM answers every question with a fixed string.
type fakeLLM struct {
	reply string
}

func (f *fakeLLM) ChatSync(ctx context.Context, messages []llm.Message, opts llm.ChatOptions) (*llm.Response, error) {
	return &llm.Response{Content: f.reply, Model: "test-model"}, nil
}

func (f *fakeLLM) Name() string         { return "fake" }
func (f *fakeLLM) DefaultModel() string { return "test-model" }

// fakeEmbedder maps known phrases to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float64
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	if v, ok := f.vectors[strings.ToLower(text)]; ok {
		return v, nil
	}
	return []float64{0, 0, 1}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func testSkillRepo(t *testing.T) *skills.Repository {
	t.Helper()

	inventory := models.SkillInventory{
		Version: "1.0.0",
		Categories: []models.SkillCategory{
			{
				ID:    "programming-languages",
				Name:  "Programming Languages",
				Order: 0,
				Skills: []models.Skill{
					{
						ID:              "python",
						Name:            "Python",
						Proficiency:     models.ProficiencyExpert,
						YearsExperience: 8,
						LastUsed:        "2025-06-01",
						Keywords:        []string{"python"},
						Technologies:    []models.Technology{{Name: "pandas"}},
						Experiences: []models.ExperienceLink{
							{RoleID: "acme-senior-engineer", Company: "Acme Analytics", Highlight: "Built ML pipelines"},
						},
						Achievements: []models.Achievement{
							{Description: "Cut pipeline runtime in half"},
						},
					},
					{
						ID:              "go",
						Name:            "Go",
						Proficiency:     models.ProficiencyAdvanced,
						YearsExperience: 5,
						LastUsed:        "2025-07-01",
						Keywords:        []string{"golang"},
						Technologies:    []models.Technology{{Name: "gin"}},
					},
				},
			},
		},
	}
	doc, err := json.Marshal(inventory)
	require.NoError(t, err)

	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	return skills.NewRepositoryWithClock(
		skills.FetcherFunc(func(context.Context) ([]byte, error) { return doc, nil }),
		func() time.Time { return now },
	)
}

func testRoleRepo(t *testing.T) *roles.Repository {
	t.Helper()

	end := "2021-02"
	data := models.WorkExperienceData{
		SchemaVersion: "1.0.0",
		Roles: []models.RoleRecord{
			{
				RoleID:    "acme-senior-engineer",
				Title:     "Senior Data Engineer",
				Company:   "Acme Analytics",
				Location:  "Toronto, ON",
				Timeframe: models.Timeframe{Start: "2021-03"},
				Summary:   "Owns the analytics platform.",
				CoreTech:  []string{"Python", "Snowflake"},
			},
			{
				RoleID:    "nimbus-platform-engineer",
				Title:     "Platform Engineer",
				Company:   "Nimbus Cloud",
				Location:  "Remote",
				Timeframe: models.Timeframe{Start: "2019-01", End: &end},
				Summary:   "Built platform services in Go.",
				CoreTech:  []string{"Go"},
			},
		},
	}
	doc, err := json.Marshal(data)
	require.NoError(t, err)

	embeddingsNDJSON := `{"chunk_id":"c1","text":"Owns the analytics platform","metadata":{"role_id":"acme-senior-engineer","company":"Acme Analytics","title":"Senior Data Engineer","chunk_type":"summary"},"embedding":[1,0,0]}
{"chunk_id":"c2","text":"Built platform services in Go","metadata":{"role_id":"nimbus-platform-engineer","company":"Nimbus Cloud","title":"Platform Engineer","chunk_type":"summary"},"embedding":[0,1,0]}`

	repo, err := roles.New(roles.Config{
		Document: doc,
		EmbeddingFetcher: roles.FetcherFunc(func(context.Context) ([]byte, error) {
			return []byte(embeddingsNDJSON), nil
		}),
	})
	require.NoError(t, err)
	return repo
}

type serverOption func(*Options)

func withAssistant(t *testing.T) serverOption {
	return func(o *Options) {
		o.Assistant = assistant.New(&fakeLLM{reply: "Grounded answer."}, o.Skills, o.Roles, assistant.Config{})
	}
}

func withStore(t *testing.T) serverOption {
	return func(o *Options) {
		store, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		o.Store = store
	}
}

func withEmbedder(vectors map[string][]float64) serverOption {
	return func(o *Options) {
		o.Embedder = &fakeEmbedder{vectors: vectors}
	}
}

func newTestServer(t *testing.T, opts ...serverOption) *Server {
	t.Helper()

	options := Options{
		Config: config.DefaultConfig(),
		Skills: testSkillRepo(t),
		Roles:  testRoleRepo(t),
	}
	for _, opt := range opts {
		opt(&options)
	}

	srv, err := New(options)
	require.NoError(t, err)
	return srv
}

// doRequest runs one request through the router and decodes the JSON
// body into out (when out is non-nil).
func doRequest(t *testing.T, srv *Server, method, target, body string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}
