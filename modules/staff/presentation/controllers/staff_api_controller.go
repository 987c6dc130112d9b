package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/careops/staffhub/modules/staff/domain/aggregates/staff"
	"github.com/careops/staffhub/modules/staff/domain/entities/orgunit"
	"github.com/careops/staffhub/modules/staff/presentation/mappers"
	"github.com/careops/staffhub/modules/staff/presentation/viewmodels"
	"github.com/careops/staffhub/modules/staff/services"
	"github.com/careops/staffhub/pkg/application"
	"github.com/careops/staffhub/pkg/composables"
)

// maxImportBodyBytes caps a single new-hire payload; anything bigger is not a
// plausible import request.
const maxImportBodyBytes = 1 << 20

type importer interface {
	Import(ctx context.Context, req *staff.ImportRequest) (*services.ImportResult, error)
}

type staffReader interface {
	Count(ctx context.Context) (int64, error)
	GetPaginated(ctx context.Context, params *staff.FindParams) ([]staff.Staff, error)
}

type unitLister interface {
	GetAll(ctx context.Context) ([]orgunit.Unit, error)
}

type StaffAPIController struct {
	imports  importer
	staff    staffReader
	units    unitLister
	auth     mux.MiddlewareFunc
	basePath string
}

func NewStaffAPIController(app application.Application, auth mux.MiddlewareFunc) application.Controller {
	return &StaffAPIController{
		imports:  app.Service(services.ImportService{}).(*services.ImportService),
		staff:    app.Service(services.StaffService{}).(*services.StaffService),
		units:    app.Service(services.OrgUnitService{}).(*services.OrgUnitService),
		auth:     auth,
		basePath: "/staff/api",
	}
}

func (c *StaffAPIController) Key() string {
	return c.basePath
}

func (c *StaffAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(c.auth)
	router.HandleFunc("/imports", c.Import).Methods(http.MethodPost)
	router.HandleFunc("/staff", c.List).Methods(http.MethodGet)
	router.HandleFunc("/units", c.Units).Methods(http.MethodGet)
}

func (c *StaffAPIController) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBodyBytes))
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "STAFF_INVALID_BODY", "could not read request body", nil)
		return
	}

	var req staff.ImportRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "STAFF_INVALID_JSON", "invalid json", nil)
		return
	}
	req.Raw = body

	result, err := c.imports.Import(r.Context(), &req)
	if err != nil {
		c.writeImportError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, mappers.ImportResultToResponse(result))
}

func (c *StaffAPIController) writeImportError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		meta := make(map[string]string, len(vErr.Fields))
		for field, msg := range vErr.Fields {
			meta[field] = msg
		}
		writeAPIError(w, r, http.StatusUnprocessableEntity, "STAFF_VALIDATION_FAILED", vErr.Error(), meta)
		return
	}

	var dupErr *services.DuplicateReferenceError
	if errors.As(err, &dupErr) {
		writeAPIError(w, r, http.StatusConflict, "STAFF_REFERENCE_CONFLICT", dupErr.Error(), map[string]string{
			"employee_reference": dupErr.Reference,
			"existing_staff_id":  strconv.FormatInt(dupErr.ExistingID, 10),
		})
		return
	}

	// Anything from inside the transaction is already sanitized; log and
	// return a generic failure either way.
	composables.UseLogger(r.Context()).WithError(err).Error("staff import request failed")
	writeAPIError(w, r, http.StatusInternalServerError, "STAFF_IMPORT_FAILED", "import failed", nil)
}

func (c *StaffAPIController) List(w http.ResponseWriter, r *http.Request) {
	params := &staff.FindParams{
		Q:     strings.TrimSpace(r.URL.Query().Get("q")),
		Limit: 20,
	}
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			params.Limit = parsed
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			params.Offset = parsed
		}
	}

	items, err := c.staff.GetPaginated(r.Context(), params)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list staff")
		writeAPIError(w, r, http.StatusInternalServerError, "STAFF_INTERNAL", "internal error", nil)
		return
	}
	total, err := c.staff.Count(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to count staff")
		writeAPIError(w, r, http.StatusInternalServerError, "STAFF_INTERNAL", "internal error", nil)
		return
	}

	out := make([]viewmodels.StaffMember, 0, len(items))
	for _, s := range items {
		out = append(out, mappers.StaffToViewModel(s))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"items": out,
		"total": total,
	})
}

func (c *StaffAPIController) Units(w http.ResponseWriter, r *http.Request) {
	units, err := c.units.GetAll(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list units")
		writeAPIError(w, r, http.StatusInternalServerError, "STAFF_INTERNAL", "internal error", nil)
		return
	}

	out := make([]viewmodels.OrgUnit, 0, len(units))
	for _, u := range units {
		out = append(out, mappers.UnitToViewModel(u))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"items": out})
}
