package api

import "github.com/folio-cms/folio/shared/domain"

// Write DTOs for admin content endpoints. Create requests are validated with
// struct tags; patch requests change only the members that are present.

type AboutRequest struct {
	Headline    string        `json:"headline" validate:"required,max=200"`
	Subheadline string        `json:"subheadline" validate:"max=300"`
	Bio         *string       `json:"bio"`
	Highlights  []string      `json:"highlights" validate:"dive,required"`
	Links       []domain.Link `json:"links" validate:"dive"`
	AvatarURL   *string       `json:"avatarUrl" validate:"omitempty,max=2048"`
}

type CreateSkillRequest struct {
	Name      string   `json:"name" validate:"required,max=100"`
	Category  string   `json:"category" validate:"required,oneof=frontend backend devops database tools other"`
	Level     *int     `json:"level" validate:"omitempty,min=1,max=5"`
	Tags      []string `json:"tags" validate:"dive,required"`
	SortOrder int      `json:"sortOrder"`
}

type SkillPatch struct {
	Name      *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Category  *string   `json:"category" validate:"omitempty,oneof=frontend backend devops database tools other"`
	Level     *int      `json:"level" validate:"omitempty,min=1,max=5"`
	Tags      *[]string `json:"tags"`
	SortOrder *int      `json:"sortOrder"`
}

type CreateExperienceRequest struct {
	Role       string   `json:"role" validate:"required,max=200"`
	Company    string   `json:"company" validate:"required,max=200"`
	Location   *string  `json:"location"`
	StartDate  string   `json:"startDate" validate:"required,yearmonth"`
	EndDate    *string  `json:"endDate" validate:"omitempty,yearmonth"`
	IsCurrent  bool     `json:"isCurrent"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights" validate:"dive,required"`
	TechStack  []string `json:"techStack" validate:"dive,required"`
	SortOrder  int      `json:"sortOrder"`
}

type ExperiencePatch struct {
	Role       *string        `json:"role" validate:"omitempty,min=1,max=200"`
	Company    *string        `json:"company" validate:"omitempty,min=1,max=200"`
	Location   NullableString `json:"location,omitzero"`
	StartDate  *string        `json:"startDate" validate:"omitempty,yearmonth"`
	EndDate    NullableString `json:"endDate,omitzero"`
	IsCurrent  *bool          `json:"isCurrent"`
	Summary    *string        `json:"summary"`
	Highlights *[]string      `json:"highlights"`
	TechStack  *[]string      `json:"techStack"`
	SortOrder  *int           `json:"sortOrder"`
}

type CreateServiceRequest struct {
	Name                string   `json:"name" validate:"required,max=200"`
	Summary             string   `json:"summary" validate:"required"`
	Description         *string  `json:"description"`
	Deliverables        []string `json:"deliverables" validate:"dive,required"`
	Process             []string `json:"process" validate:"dive,required"`
	Icon                *string  `json:"icon"`
	RelatedPortfolioIds []string `json:"relatedPortfolioIds" validate:"dive,uuid"`
	SortOrder           int      `json:"sortOrder"`
}

type ServicePatch struct {
	Name                *string        `json:"name" validate:"omitempty,min=1,max=200"`
	Summary             *string        `json:"summary" validate:"omitempty,min=1"`
	Description         NullableString `json:"description,omitzero"`
	Deliverables        *[]string      `json:"deliverables"`
	Process             *[]string      `json:"process"`
	Icon                NullableString `json:"icon,omitzero"`
	RelatedPortfolioIds *[]string      `json:"relatedPortfolioIds"`
	SortOrder           *int           `json:"sortOrder"`
}

type CreatePortfolioItemRequest struct {
	Slug          string        `json:"slug" validate:"required,slug,max=120"`
	Title         string        `json:"title" validate:"required,max=200"`
	Summary       string        `json:"summary" validate:"required"`
	CoverImageURL *string       `json:"coverImageUrl"`
	Problem       *string       `json:"problem"`
	Solution      *string       `json:"solution"`
	Impact        []string      `json:"impact" validate:"dive,required"`
	Tags          []string      `json:"tags" validate:"dive,required"`
	TechStack     []string      `json:"techStack" validate:"dive,required"`
	Links         []domain.Link `json:"links" validate:"dive"`
	Status        string        `json:"status" validate:"omitempty,oneof=draft published"`
	SortOrder     int           `json:"sortOrder"`
}

type PortfolioItemPatch struct {
	Slug          *string        `json:"slug" validate:"omitempty,slug,max=120"`
	Title         *string        `json:"title" validate:"omitempty,min=1,max=200"`
	Summary       *string        `json:"summary" validate:"omitempty,min=1"`
	CoverImageURL NullableString `json:"coverImageUrl,omitzero"`
	Problem       NullableString `json:"problem,omitzero"`
	Solution      NullableString `json:"solution,omitzero"`
	Impact        *[]string      `json:"impact"`
	Tags          *[]string      `json:"tags"`
	TechStack     *[]string      `json:"techStack"`
	Links         *[]domain.Link `json:"links"`
	Status        *string        `json:"status" validate:"omitempty,oneof=draft published"`
	SortOrder     *int           `json:"sortOrder"`
}

type ResumeSettingsPatch struct {
	ShowHeader      *bool          `json:"showHeader"`
	ShowSummary     *bool          `json:"showSummary"`
	ShowExperiences *bool          `json:"showExperiences"`
	ShowSkills      *bool          `json:"showSkills"`
	ShowProjects    *bool          `json:"showProjects"`
	ShowContact     *bool          `json:"showContact"`
	ShowEmail       *bool          `json:"showEmail"`
	ShowPhone       *bool          `json:"showPhone"`
	ContactEmail    NullableString `json:"contactEmail,omitzero"`
	ContactPhone    NullableString `json:"contactPhone,omitzero"`
}

// Response DTOs

type SkillsResponse struct {
	Skills []domain.Skill `json:"skills"`
}

type ExperiencesResponse struct {
	Experiences []domain.Experience `json:"experiences"`
}

type ServicesResponse struct {
	Services []domain.Service `json:"services"`
}

type PortfolioResponse struct {
	Items []domain.PortfolioItem `json:"items"`
}
