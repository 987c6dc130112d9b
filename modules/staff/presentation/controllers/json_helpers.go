package controllers

import (
	"net/http"

	"github.com/careops/staffhub/pkg/composables"
	"github.com/careops/staffhub/pkg/httpapi"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if err := httpapi.WriteJSON(w, status, payload); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to encode response")
	}
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code, message string, meta map[string]string) {
	if requestID := composables.UseRequestID(r.Context()); requestID != "" {
		if meta == nil {
			meta = map[string]string{}
		}
		meta["request_id"] = requestID
	}
	if err := httpapi.WriteError(w, status, code, message, meta); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to encode error response")
	}
}
