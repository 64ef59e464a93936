package handler

import (
	"net/http"

	"github.com/folio-cms/folio/shared/api"
	"github.com/folio-cms/folio/shared/logger"
	"github.com/folio-cms/folio/shared/utils"
)

// Messages is the single entry point of the contact message API. The credential
// is handed to the service untouched; authentication happens there, before the
// request is looked at. An empty or unparseable body is the empty request (list).
func (h *Handler) Messages(w http.ResponseWriter, r *http.Request) {
	var req api.MessagesRequest
	if err := utils.Decode(r.Body, &req); err != nil {
		logger.Log.Debug("messages body ignored", "error", err)
		req = api.MessagesRequest{}
	}

	result, err := h.messages.Dispatch(r.Context(), utils.BearerToken(r), req)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result.Body())
}
