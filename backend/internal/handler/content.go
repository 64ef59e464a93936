package handler

import (
	"net/http"
	"strings"

	"github.com/folio-cms/folio/shared/api"
	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/utils"
	"github.com/go-chi/chi/v5"
)

// Write endpoints decode only; DTO validation is done by the content service.

func (h *Handler) GetAbout(w http.ResponseWriter, r *http.Request) {
	about, err := h.content.About(r.Context())
	respond(w, http.StatusOK, about, err)
}

func (h *Handler) PutAbout(w http.ResponseWriter, r *http.Request) {
	var body api.AboutRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	about, err := h.content.SaveAbout(r.Context(), body)
	respond(w, http.StatusOK, about, err)
}

// =========================================================================
// Skills
// =========================================================================

func (h *Handler) GetSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.content.Skills(r.Context(), domain.SkillFilter{Category: queryParam(r, "category")})
	respond(w, http.StatusOK, api.SkillsResponse{Skills: skills}, err)
}

func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var body api.CreateSkillRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	skill, err := h.content.CreateSkill(r.Context(), body)
	respond(w, http.StatusCreated, skill, err)
}

func (h *Handler) PatchSkill(w http.ResponseWriter, r *http.Request) {
	var body api.SkillPatch
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	skill, err := h.content.PatchSkill(r.Context(), chi.URLParam(r, "id"), body)
	respond(w, http.StatusOK, skill, err)
}

func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	respondOk(w, h.content.DeleteSkill(r.Context(), chi.URLParam(r, "id")))
}

// =========================================================================
// Experiences
// =========================================================================

func (h *Handler) GetExperiences(w http.ResponseWriter, r *http.Request) {
	experiences, err := h.content.Experiences(r.Context())
	respond(w, http.StatusOK, api.ExperiencesResponse{Experiences: experiences}, err)
}

func (h *Handler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	var body api.CreateExperienceRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	exp, err := h.content.CreateExperience(r.Context(), body)
	respond(w, http.StatusCreated, exp, err)
}

func (h *Handler) PatchExperience(w http.ResponseWriter, r *http.Request) {
	var body api.ExperiencePatch
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	exp, err := h.content.PatchExperience(r.Context(), chi.URLParam(r, "id"), body)
	respond(w, http.StatusOK, exp, err)
}

func (h *Handler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	respondOk(w, h.content.DeleteExperience(r.Context(), chi.URLParam(r, "id")))
}

// =========================================================================
// Services
// =========================================================================

func (h *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.content.Services(r.Context())
	respond(w, http.StatusOK, api.ServicesResponse{Services: services}, err)
}

func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var body api.CreateServiceRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	svc, err := h.content.CreateService(r.Context(), body)
	respond(w, http.StatusCreated, svc, err)
}

func (h *Handler) PatchService(w http.ResponseWriter, r *http.Request) {
	var body api.ServicePatch
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	svc, err := h.content.PatchService(r.Context(), chi.URLParam(r, "id"), body)
	respond(w, http.StatusOK, svc, err)
}

func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	respondOk(w, h.content.DeleteService(r.Context(), chi.URLParam(r, "id")))
}

// =========================================================================
// Helpers
// =========================================================================

func respond(w http.ResponseWriter, status int, body any, err error) {
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, status, body)
}

func respondOk(w http.ResponseWriter, err error) {
	respond(w, http.StatusOK, api.OkResponse{Ok: true}, err)
}

// queryParam returns nil for a missing or blank parameter.
func queryParam(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil
	}
	return &v
}
