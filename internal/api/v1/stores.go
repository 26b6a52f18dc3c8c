package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/synclab/metasync/internal/api/common"
	"github.com/synclab/metasync/internal/packages"
)

func (routes *Routes) listStores(w http.ResponseWriter, r *http.Request) {
	stores, err := routes.service.ListStores(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, stores, http.StatusOK)
}

func (routes *Routes) saveStore(w http.ResponseWriter, r *http.Request) {
	var store packages.Store
	if !decode(w, r, &store) {
		return
	}

	status := http.StatusCreated
	if chi.URLParam(r, "id") != "" {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		store.ID = id
		status = http.StatusOK
	}

	saved, err := routes.service.SaveStore(r.Context(), store)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, saved, status)
}

func (routes *Routes) deleteStore(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := routes.service.DeleteStore(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (routes *Routes) setDefaultStore(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := routes.service.SetDefaultStore(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (routes *Routes) listStorePackages(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	list, err := routes.service.ListStorePackages(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, list, http.StatusOK)
}
