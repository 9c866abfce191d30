package http

import (
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/app"
	"github.com/MKhiriev/go-accounts/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, models.HealthResponse{
		Msg:     app.MsgServerRunning,
		Version: h.services.AppInfoService.GetAppVersion(r.Context()),
	})
}
