package service

import (
	"context"
	"strings"

	"github.com/folio-cms/folio/shared/api"
	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/folio-cms/folio/shared/utils"
)

// Portfolio lists items ordered by sortOrder. Drafts are included only on request.
func (c *Content) Portfolio(ctx context.Context, filter domain.PortfolioFilter) ([]domain.PortfolioItem, error) {
	filter.Tag = blankToNil(filter.Tag)
	filter.Tech = blankToNil(filter.Tech)
	filter.Query = blankToNil(filter.Query)
	items, err := c.storage.ListPortfolio(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i] = c.renderPortfolio(items[i])
	}
	return items, nil
}

// PortfolioItem hides drafts from public readers behind NotFound.
func (c *Content) PortfolioItem(ctx context.Context, slug domain.Slug, includeDrafts bool) (domain.PortfolioItem, error) {
	item, err := c.storage.PortfolioItemBySlug(ctx, slug)
	if err != nil {
		return domain.PortfolioItem{}, err
	}
	if item.Status != domain.PortfolioPublished && !includeDrafts {
		return domain.PortfolioItem{}, errors.NotFound("Portfolio item not found")
	}
	return c.renderPortfolio(item), nil
}

func (c *Content) CreatePortfolioItem(ctx context.Context, req api.CreatePortfolioItemRequest) (domain.PortfolioItem, error) {
	if err := utils.Validate(req); err != nil {
		return domain.PortfolioItem{}, err
	}
	status := req.Status
	if status == "" {
		status = domain.PortfolioDraft
	}
	item, err := c.storage.CreatePortfolioItem(ctx, domain.PortfolioItem{
		Slug:          req.Slug,
		Title:         strings.TrimSpace(req.Title),
		Summary:       req.Summary,
		CoverImageURL: req.CoverImageURL,
		Problem:       req.Problem,
		Solution:      req.Solution,
		Impact:        nonNil(req.Impact),
		Tags:          nonNil(req.Tags),
		TechStack:     nonNil(req.TechStack),
		Links:         nonNil(req.Links),
		Status:        status,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		return domain.PortfolioItem{}, err
	}
	return c.renderPortfolio(item), nil
}

func (c *Content) PatchPortfolioItem(ctx context.Context, id domain.ContentId, patch api.PortfolioItemPatch) (domain.PortfolioItem, error) {
	if err := utils.Validate(patch); err != nil {
		return domain.PortfolioItem{}, err
	}
	if patch.Links != nil {
		for _, link := range *patch.Links {
			if err := utils.Validate(link); err != nil {
				return domain.PortfolioItem{}, err
			}
		}
	}
	item, err := c.storage.PortfolioItem(ctx, id)
	if err != nil {
		return domain.PortfolioItem{}, err
	}
	setIf(&item.Slug, patch.Slug)
	setIf(&item.Title, trimPtr(patch.Title))
	setIf(&item.Summary, patch.Summary)
	setNullable(&item.CoverImageURL, patch.CoverImageURL)
	setNullable(&item.Problem, patch.Problem)
	setNullable(&item.Solution, patch.Solution)
	setIf(&item.Impact, patch.Impact)
	setIf(&item.Tags, patch.Tags)
	setIf(&item.TechStack, patch.TechStack)
	setIf(&item.Links, patch.Links)
	setIf(&item.Status, patch.Status)
	setIf(&item.SortOrder, patch.SortOrder)

	item, err = c.storage.UpdatePortfolioItem(ctx, item)
	if err != nil {
		return domain.PortfolioItem{}, err
	}
	return c.renderPortfolio(item), nil
}

func (c *Content) DeletePortfolioItem(ctx context.Context, id domain.ContentId) error {
	return c.storage.DeletePortfolioItem(ctx, id)
}

func (c *Content) renderPortfolio(item domain.PortfolioItem) domain.PortfolioItem {
	item.ProblemHTML = c.render(item.Problem)
	item.SolutionHTML = c.render(item.Solution)
	return item
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
