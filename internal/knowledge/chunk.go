// Package knowledge provides the read-only store of curated knowledge chunks.
package knowledge

// Category identifies the domain a chunk belongs to.
type Category string

const (
	CategoryCourse    Category = "course"
	CategoryAdmission Category = "admission"
	CategoryFacility  Category = "facility"
	CategoryClub      Category = "club"
	CategoryPlacement Category = "placement"
	CategoryOverview  Category = "overview"
	CategoryGeneral   Category = "general"
)

// ValidCategory reports whether cat is a known category.
func ValidCategory(cat Category) bool {
	switch cat {
	case CategoryCourse, CategoryAdmission, CategoryFacility, CategoryClub,
		CategoryPlacement, CategoryOverview, CategoryGeneral:
		return true
	}
	return false
}

// ProgramType distinguishes course variants sharing a branch.
type ProgramType string

const (
	ProgramRegular             ProgramType = "regular"
	ProgramWorkingProfessional ProgramType = "working_professional"
	ProgramIntegrated          ProgramType = "integrated"
	ProgramTwinning            ProgramType = "twinning"
)

// Chunk is a single retrievable unit of knowledge text. Chunks are loaded once
// at startup and never mutated afterwards.
type Chunk struct {
	ID             string            `json:"id"`
	Category       Category          `json:"category"`
	Degree         string            `json:"degree,omitempty"`
	Branch         string            `json:"branch,omitempty"`
	Specialization string            `json:"specialization,omitempty"`
	ProgramType    ProgramType       `json:"program_type,omitempty"`
	Topic          string            `json:"topic"`
	Metric         string            `json:"metric,omitempty"`
	Text           string            `json:"text"`
	Keywords       []string          `json:"keywords,omitempty"`
	SourceURL      string            `json:"source_url,omitempty"`
	Properties     map[string]string `json:"properties,omitempty"`
}

// Property returns the named property or the empty string.
func (c *Chunk) Property(name string) string {
	if c.Properties == nil {
		return ""
	}
	return c.Properties[name]
}
