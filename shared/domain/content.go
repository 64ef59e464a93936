package domain

import "time"

type Link struct {
	Label string  `json:"label" validate:"required"`
	URL   string  `json:"url" validate:"required,url"`
	Icon  *string `json:"icon,omitempty"`
}

type Links = []Link

type About struct {
	Id          ContentId `json:"id"`
	Headline    string    `json:"headline"`
	Subheadline string    `json:"subheadline"`
	Bio         *string   `json:"bio"`
	BioHTML     string    `json:"bioHtml"`
	Highlights  []string  `json:"highlights"`
	Links       Links     `json:"links"`
	AvatarURL   *string   `json:"avatarUrl"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SkillCategory = string

var SkillCategories = []SkillCategory{"frontend", "backend", "devops", "database", "tools", "other"}

const DefaultSkillLevel = 3

type Skill struct {
	Id        ContentId     `json:"id"`
	Name      string        `json:"name"`
	Category  SkillCategory `json:"category"`
	Level     int           `json:"level"`
	Tags      []string      `json:"tags"`
	SortOrder int           `json:"sortOrder"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type SkillFilter struct {
	Category *SkillCategory
}

type Experience struct {
	Id         ContentId `json:"id"`
	Role       string    `json:"role"`
	Company    string    `json:"company"`
	Location   *string   `json:"location"`
	StartDate  string    `json:"startDate"` // YYYY-MM
	EndDate    *string   `json:"endDate"`   // YYYY-MM
	IsCurrent  bool      `json:"isCurrent"`
	Summary    string    `json:"summary"`
	Highlights []string  `json:"highlights"`
	TechStack  []string  `json:"techStack"`
	SortOrder  int       `json:"sortOrder"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Service struct {
	Id                  ContentId   `json:"id"`
	Name                string      `json:"name"`
	Summary             string      `json:"summary"`
	Description         *string     `json:"description"`
	Deliverables        []string    `json:"deliverables"`
	Process             []string    `json:"process"`
	Icon                *string     `json:"icon"`
	RelatedPortfolioIds []ContentId `json:"relatedPortfolioIds"`
	SortOrder           int         `json:"sortOrder"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

type PortfolioStatus = string

const (
	PortfolioDraft     PortfolioStatus = "draft"
	PortfolioPublished PortfolioStatus = "published"
)

type PortfolioItem struct {
	Id            ContentId       `json:"id"`
	Slug          Slug            `json:"slug"`
	Title         string          `json:"title"`
	Summary       string          `json:"summary"`
	CoverImageURL *string         `json:"coverImageUrl"`
	Problem       *string         `json:"problem"`
	ProblemHTML   string          `json:"problemHtml"`
	Solution      *string         `json:"solution"`
	SolutionHTML  string          `json:"solutionHtml"`
	Impact        []string        `json:"impact"`
	Tags          []string        `json:"tags"`
	TechStack     []string        `json:"techStack"`
	Links         Links           `json:"links"`
	Status        PortfolioStatus `json:"status"`
	SortOrder     int             `json:"sortOrder"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type PortfolioFilter struct {
	IncludeDrafts bool
	Tag           *string
	Tech          *string
	Query         *string // matched against title and summary
}

type ResumeExportSettings struct {
	Id              ContentId `json:"id"`
	ShowHeader      bool      `json:"showHeader"`
	ShowSummary     bool      `json:"showSummary"`
	ShowExperiences bool      `json:"showExperiences"`
	ShowSkills      bool      `json:"showSkills"`
	ShowProjects    bool      `json:"showProjects"`
	ShowContact     bool      `json:"showContact"`
	ShowEmail       bool      `json:"showEmail"`
	ShowPhone       bool      `json:"showPhone"`
	ContactEmail    *string   `json:"contactEmail"`
	ContactPhone    *string   `json:"contactPhone"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DefaultResumeExportSettings is used until an admin saves settings.
func DefaultResumeExportSettings() ResumeExportSettings {
	return ResumeExportSettings{
		ShowHeader:      true,
		ShowSummary:     true,
		ShowExperiences: true,
		ShowSkills:      true,
		ShowProjects:    true,
		ShowContact:     true,
	}
}

// Resume is the export document assembled from the rest of the content.
type Resume struct {
	Header      *ResumeHeader   `json:"header,omitempty"`
	Summary     *string         `json:"summary,omitempty"`
	Experiences []Experience    `json:"experiences,omitempty"`
	Skills      []Skill         `json:"skills,omitempty"`
	Projects    []PortfolioItem `json:"projects,omitempty"`
	Contact     *ResumeContact  `json:"contact,omitempty"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

type ResumeHeader struct {
	FullName string  `json:"fullName"`
	Title    string  `json:"title"`
	Location *string `json:"location,omitempty"`
	Links    Links   `json:"links"`
}

type ResumeContact struct {
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// Blob is a stored media object.
type Blob struct {
	Name      string
	MimeType  string
	SizeBytes int64
	Width     int
	Height    int
}
