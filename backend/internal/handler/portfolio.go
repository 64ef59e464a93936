package handler

import (
	"net/http"

	"github.com/folio-cms/folio/shared/api"
	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/middleware"
	"github.com/folio-cms/folio/shared/utils"
	"github.com/go-chi/chi/v5"
)

func portfolioFilter(r *http.Request, includeDrafts bool) domain.PortfolioFilter {
	return domain.PortfolioFilter{
		IncludeDrafts: includeDrafts,
		Tag:           queryParam(r, "tag"),
		Tech:          queryParam(r, "tech"),
		Query:         queryParam(r, "q"),
	}
}

// GetPortfolio lists published items only.
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.Portfolio(r.Context(), portfolioFilter(r, false))
	respond(w, http.StatusOK, api.PortfolioResponse{Items: items}, err)
}

// GetAdminPortfolio lists items in every status.
func (h *Handler) GetAdminPortfolio(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.Portfolio(r.Context(), portfolioFilter(r, true))
	respond(w, http.StatusOK, api.PortfolioResponse{Items: items}, err)
}

// GetPortfolioItem shows drafts to admins only. The route runs behind OptionalAuth.
func (h *Handler) GetPortfolioItem(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r)
	admin := caller != nil && caller.Admin
	item, err := h.content.PortfolioItem(r.Context(), chi.URLParam(r, "slug"), admin)
	respond(w, http.StatusOK, item, err)
}

func (h *Handler) CreatePortfolioItem(w http.ResponseWriter, r *http.Request) {
	var body api.CreatePortfolioItemRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	item, err := h.content.CreatePortfolioItem(r.Context(), body)
	respond(w, http.StatusCreated, item, err)
}

func (h *Handler) PatchPortfolioItem(w http.ResponseWriter, r *http.Request) {
	var body api.PortfolioItemPatch
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	item, err := h.content.PatchPortfolioItem(r.Context(), chi.URLParam(r, "id"), body)
	respond(w, http.StatusOK, item, err)
}

func (h *Handler) DeletePortfolioItem(w http.ResponseWriter, r *http.Request) {
	respondOk(w, h.content.DeletePortfolioItem(r.Context(), chi.URLParam(r, "id")))
}

// =========================================================================
// Resume
// =========================================================================

func (h *Handler) GetResume(w http.ResponseWriter, r *http.Request) {
	resume, err := h.content.Resume(r.Context())
	respond(w, http.StatusOK, resume, err)
}

func (h *Handler) GetResumeSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.content.ResumeSettings(r.Context())
	respond(w, http.StatusOK, settings, err)
}

func (h *Handler) PatchResumeSettings(w http.ResponseWriter, r *http.Request) {
	var body api.ResumeSettingsPatch
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	settings, err := h.content.PatchResumeSettings(r.Context(), body)
	respond(w, http.StatusOK, settings, err)
}
