// Package v1 provides the version 1 REST endpoints of the synchronization API.
package v1

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/synclab/metasync/internal/api/common"
	"github.com/synclab/metasync/internal/git"
	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/logger"
	"github.com/synclab/metasync/internal/modules"
	"github.com/synclab/metasync/internal/service"
)

// UserHeader carries the name of the user running a synchronization
const UserHeader = "X-Metasync-User"

// defaultUser runs synchronizations requested without a user header
const defaultUser = "api"

// Routes handles HTTP requests for the v1 endpoints
type Routes struct {
	service service.Service
}

// NewRoutes creates a new Routes instance with the given service
func NewRoutes(svc service.Service) *Routes {
	return &Routes{service: svc}
}

// Router creates and configures the HTTP router for the v1 endpoints
func Router(svc service.Service) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()

	r.Route("/modules", func(r chi.Router) {
		r.Get("/", routes.listModules)
		r.Post("/", routes.saveModule)
		r.Get("/{id}", routes.getModule)
		r.Put("/{id}", routes.saveModule)
		r.Delete("/{id}", routes.deleteModule)
		r.Post("/{id}/rules", routes.moveModuleRules)
		r.Post("/{id}/sync-rule", routes.createRuleFromModule)
	})

	r.Route("/rules", func(r chi.Router) {
		r.Get("/", routes.listRules)
		r.Post("/", routes.saveRule)
		r.Get("/{id}", routes.getRule)
		r.Put("/{id}", routes.saveRule)
		r.Delete("/{id}", routes.deleteRule)
		r.Post("/{id}/run", routes.runRule)
	})

	r.Route("/instances", func(r chi.Router) {
		r.Get("/", routes.listInstances)
		r.Post("/", routes.saveInstance)
		r.Get("/{id}", routes.getInstance)
		r.Put("/{id}", routes.saveInstance)
		r.Delete("/{id}", routes.deleteInstance)
		r.Post("/{id}/mapping", routes.setInstanceMapping)
		r.Post("/{id}/automap", routes.autoMapInstance)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/", routes.listReports)
		r.Get("/{id}", routes.getReport)
		r.Delete("/{id}", routes.deleteReport)
	})

	r.Route("/stores", func(r chi.Router) {
		r.Get("/", routes.listStores)
		r.Post("/", routes.saveStore)
		r.Put("/{id}", routes.saveStore)
		r.Delete("/{id}", routes.deleteStore)
		r.Post("/{id}/default", routes.setDefaultStore)
		r.Get("/{id}/packages", routes.listStorePackages)
	})

	return r
}

// writeServiceError maps a service error to its HTTP status
func writeServiceError(w http.ResponseWriter, err error) {
	var details []string
	for _, ve := range modules.ValidationErrors(err) {
		details = append(details, ve.Error())
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		common.WriteErrorResponse(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidInput):
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest, details...)
	case errors.Is(err, instance.ErrLocalInstance):
		common.WriteErrorResponse(w, err.Error(), http.StatusForbidden)
	default:
		writeGitError(w, err)
	}
}

func writeGitError(w http.ResponseWriter, err error) {
	var gitErr *git.Error
	if !errors.As(err, &gitErr) {
		logger.Errorf("Request failed: %v", err)
		common.WriteErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch gitErr.Kind {
	case git.KindNotFound:
		common.WriteErrorResponse(w, err.Error(), http.StatusNotFound)
	case git.KindNoToken, git.KindBadCredentials:
		common.WriteErrorResponse(w, err.Error(), http.StatusUnauthorized)
	case git.KindWritePermissions:
		common.WriteErrorResponse(w, err.Error(), http.StatusForbidden)
	default:
		common.WriteErrorResponse(w, err.Error(), http.StatusBadGateway)
	}
}

// urlID reads the id URL parameter, writing a bad request response when it is invalid
func urlID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := common.GetAndValidateURLParam(r, "id")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return id, true
}

// decode reads the JSON request body, writing a bad request response when it is invalid
func decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := common.DecodeJSONBody(r, out); err != nil {
		common.WriteErrorResponse(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// listOptions reads the list query parameters, writing a bad request response when
// they are invalid
func listOptions(w http.ResponseWriter, r *http.Request) ([]service.Option, bool) {
	opts, err := common.ListOptions(r)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return opts, true
}
