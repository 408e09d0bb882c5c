package models

// WorkExperienceData is the top-level work-experience catalog document.
type WorkExperienceData struct {
	SchemaVersion  string       `json:"schema_version"`
	GeneratedAt    string       `json:"generated_at"`
	SourceDocument string       `json:"source_document"`
	Roles          []RoleRecord `json:"roles"`
}

// RoleRecord is one position in the work history.
type RoleRecord struct {
	RoleID     string      `json:"role_id"`
	Title      string      `json:"title"`
	Company    string      `json:"company"`
	Location   string      `json:"location"`
	Timeframe  Timeframe   `json:"timeframe"`
	Summary    string      `json:"summary"`
	CoreTech   []string    `json:"core_tech"`
	Highlights []Highlight `json:"highlights"`
}

// Highlight is a single accomplishment within a role, with provenance
// back to the source document it was extracted from.
type Highlight struct {
	Description string         `json:"description"`
	Source      SourceMetadata `json:"source"`
}

// SourceMetadata cites where a highlight or chunk came from.
type SourceMetadata struct {
	Path    string `json:"path"`
	Page    int    `json:"page,omitempty"`
	Section string `json:"section,omitempty"`
}

// DatasetMetadata summarizes a loaded work-experience catalog.
type DatasetMetadata struct {
	SchemaVersion  string `json:"schema_version"`
	GeneratedAt    string `json:"generated_at"`
	SourceDocument string `json:"source_document"`
	TotalRoles     int    `json:"total_roles"`
}
