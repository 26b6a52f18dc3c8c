package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/synclab/metasync/internal/api/common"
	"github.com/synclab/metasync/internal/modules"
	"github.com/synclab/metasync/internal/service"
)

// CreateRuleRequest lists the target instances of a rule created from a module
type CreateRuleRequest struct {
	TargetInstances []string `json:"targetInstances"`
}

func (routes *Routes) listModules(w http.ResponseWriter, r *http.Request) {
	opts, ok := listOptions(w, r)
	if !ok {
		return
	}
	page, err := routes.service.ListModules(r.Context(), opts...)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, page, http.StatusOK)
}

func (routes *Routes) getModule(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	module, err := routes.service.GetModule(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, module, http.StatusOK)
}

// saveModule creates a module on POST and replaces the module of the URL on PUT
func (routes *Routes) saveModule(w http.ResponseWriter, r *http.Request) {
	module := modules.NewMetadataModule()
	if !decode(w, r, &module) {
		return
	}

	status := http.StatusCreated
	if chi.URLParam(r, "id") != "" {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		module.ID = id
		status = http.StatusOK
	}

	saved, err := routes.service.SaveModule(r.Context(), module)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, saved, status)
}

func (routes *Routes) deleteModule(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := routes.service.DeleteModule(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (routes *Routes) moveModuleRules(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var move service.RuleMove
	if !decode(w, r, &move) {
		return
	}
	module, err := routes.service.MoveModuleRules(r.Context(), id, move)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, module, http.StatusOK)
}

func (routes *Routes) createRuleFromModule(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req CreateRuleRequest
	if !decode(w, r, &req) {
		return
	}
	rule, err := routes.service.CreateRuleFromModule(r.Context(), id, req.TargetInstances)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, rule, http.StatusCreated)
}
