package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/folio-cms/folio/shared/api"
	"github.com/folio-cms/folio/shared/domain"
)

func (c *APIClient) About(ctx context.Context) (domain.About, error) {
	var about domain.About
	err := c.call(ctx, http.MethodGet, "/v1/about", "", nil, &about)
	return about, err
}

func (c *APIClient) SaveAbout(ctx context.Context, token string, req api.AboutRequest) (domain.About, error) {
	var about domain.About
	err := c.call(ctx, http.MethodPut, "/v1/admin/about", token, req, &about)
	return about, err
}

func (c *APIClient) Skills(ctx context.Context, category string) ([]domain.Skill, error) {
	path := "/v1/skills"
	if category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}
	var resp api.SkillsResponse
	err := c.call(ctx, http.MethodGet, path, "", nil, &resp)
	return resp.Skills, err
}

func (c *APIClient) CreateSkill(ctx context.Context, token string, req api.CreateSkillRequest) (domain.Skill, error) {
	var skill domain.Skill
	err := c.call(ctx, http.MethodPost, "/v1/admin/skills", token, req, &skill)
	return skill, err
}

// Portfolio lists published items. Empty filter values are not sent.
func (c *APIClient) Portfolio(ctx context.Context, tag, tech, query string) ([]domain.PortfolioItem, error) {
	params := url.Values{}
	for k, v := range map[string]string{"tag": tag, "tech": tech, "q": query} {
		if v != "" {
			params.Set(k, v)
		}
	}
	path := "/v1/portfolio"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var resp api.PortfolioResponse
	err := c.call(ctx, http.MethodGet, path, "", nil, &resp)
	return resp.Items, err
}

// PortfolioItem sends the token so admins can read drafts.
func (c *APIClient) PortfolioItem(ctx context.Context, token string, slug domain.Slug) (domain.PortfolioItem, error) {
	var item domain.PortfolioItem
	err := c.call(ctx, http.MethodGet, "/v1/portfolio/"+url.PathEscape(slug), token, nil, &item)
	return item, err
}

func (c *APIClient) CreatePortfolioItem(ctx context.Context, token string, req api.CreatePortfolioItemRequest) (domain.PortfolioItem, error) {
	var item domain.PortfolioItem
	err := c.call(ctx, http.MethodPost, "/v1/admin/portfolio", token, req, &item)
	return item, err
}

func (c *APIClient) PatchPortfolioItem(ctx context.Context, token string, id domain.ContentId, patch api.PortfolioItemPatch) (domain.PortfolioItem, error) {
	var item domain.PortfolioItem
	err := c.call(ctx, http.MethodPatch, "/v1/admin/portfolio/"+url.PathEscape(id), token, patch, &item)
	return item, err
}

func (c *APIClient) Resume(ctx context.Context) (domain.Resume, error) {
	var resume domain.Resume
	err := c.call(ctx, http.MethodGet, "/v1/resume", "", nil, &resume)
	return resume, err
}
