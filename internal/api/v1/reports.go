package v1

import (
	"net/http"

	"github.com/synclab/metasync/internal/api/common"
)

func (routes *Routes) listReports(w http.ResponseWriter, r *http.Request) {
	opts, ok := listOptions(w, r)
	if !ok {
		return
	}
	page, err := routes.service.ListReports(r.Context(), opts...)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, page, http.StatusOK)
}

func (routes *Routes) getReport(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	syncReport, err := routes.service.GetReport(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, syncReport, http.StatusOK)
}

func (routes *Routes) deleteReport(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := routes.service.DeleteReport(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
