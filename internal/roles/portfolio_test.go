package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortfolioText(t *testing.T) {
	repo := newTestRepository(t)

	text := repo.PortfolioText()
	assert.Contains(t, text, "# Work Experience")
	assert.Contains(t, text, "## Senior Data Engineer — Acme Analytics (2021-03 to Present, Toronto, ON)")
	assert.Contains(t, text, "## Platform Engineer — Nimbus Cloud (2019-01 to 2021-02, Remote)")
	assert.Contains(t, text, "Core technologies: Python, Snowflake, dbt")
	assert.Contains(t, text, "- Migrated the warehouse to Snowflake")
}
