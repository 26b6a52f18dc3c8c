package v1

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/synclab/metasync/internal/api/common"
	"github.com/synclab/metasync/internal/syncrule"
)

func (routes *Routes) listRules(w http.ResponseWriter, r *http.Request) {
	opts, ok := listOptions(w, r)
	if !ok {
		return
	}
	page, err := routes.service.ListRules(r.Context(), opts...)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, page, http.StatusOK)
}

func (routes *Routes) getRule(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	rule, err := routes.service.GetRule(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, rule, http.StatusOK)
}

// saveRule creates a rule on POST and replaces the rule of the URL on PUT
func (routes *Routes) saveRule(w http.ResponseWriter, r *http.Request) {
	rule := syncrule.New(syncrule.TypeMetadata)
	if !decode(w, r, &rule) {
		return
	}

	status := http.StatusCreated
	if chi.URLParam(r, "id") != "" {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		rule.ID = id
		status = http.StatusOK
	}

	saved, err := routes.service.SaveRule(r.Context(), rule)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, saved, status)
}

func (routes *Routes) deleteRule(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := routes.service.DeleteRule(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// runRule synchronizes a rule and responds with its report once every target
// instance is done
func (routes *Routes) runRule(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	user := strings.TrimSpace(r.Header.Get(UserHeader))
	if user == "" {
		user = defaultUser
	}

	syncReport, err := routes.service.RunRule(r.Context(), id, user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, syncReport, http.StatusOK)
}
