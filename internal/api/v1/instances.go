package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/synclab/metasync/internal/api/common"
	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/service"
)

func (routes *Routes) listInstances(w http.ResponseWriter, r *http.Request) {
	opts, ok := listOptions(w, r)
	if !ok {
		return
	}
	page, err := routes.service.ListInstances(r.Context(), opts...)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, page, http.StatusOK)
}

func (routes *Routes) getInstance(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	inst, err := routes.service.GetInstance(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, inst, http.StatusOK)
}

// saveInstance creates an instance on POST and replaces the instance of the URL on PUT
func (routes *Routes) saveInstance(w http.ResponseWriter, r *http.Request) {
	var inst instance.Instance
	if !decode(w, r, &inst) {
		return
	}

	status := http.StatusCreated
	if chi.URLParam(r, "id") != "" {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		inst.ID = id
		status = http.StatusOK
	}

	saved, err := routes.service.SaveInstance(r.Context(), inst)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, saved, status)
}

func (routes *Routes) deleteInstance(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := routes.service.DeleteInstance(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (routes *Routes) setInstanceMapping(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req service.MappingRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := routes.service.SetInstanceMapping(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, m, http.StatusOK)
}

func (routes *Routes) autoMapInstance(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req service.AutoMapRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := routes.service.AutoMapInstance(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, result, http.StatusOK)
}
