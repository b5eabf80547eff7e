/*
Copyright IBM Corp All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operations

import (
	"encoding/json"
	"net/http"

	"github.com/gmsuite/gmsuite/common/flogging"
	"github.com/pkg/errors"
)

// LogSpecHandler reads and updates the active logging spec. A GET returns
// {"spec": "..."}, a PUT with the same body activates a new spec.
type LogSpecHandler struct {
	Logging *flogging.Logging
	Logger  Logger
}

type logSpec struct {
	Spec string `json:"spec,omitempty"`
}

type logSpecError struct {
	Error string `json:"error"`
}

func (h *LogSpecHandler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodPut:
		var ls logSpec
		if err := json.NewDecoder(req.Body).Decode(&ls); err != nil {
			h.sendResponse(resp, http.StatusBadRequest, errors.Wrap(err, "invalid log spec payload"))
			return
		}
		req.Body.Close()

		if err := h.logging().ActivateSpec(ls.Spec); err != nil {
			h.sendResponse(resp, http.StatusBadRequest, err)
			return
		}
		resp.WriteHeader(http.StatusNoContent)

	case http.MethodGet:
		h.sendResponse(resp, http.StatusOK, &logSpec{Spec: h.logging().Spec()})

	default:
		h.sendResponse(resp, http.StatusBadRequest, errors.Errorf("invalid request method: %s", req.Method))
	}
}

func (h *LogSpecHandler) logging() *flogging.Logging {
	if h.Logging == nil {
		return flogging.Global
	}
	return h.Logging
}

func (h *LogSpecHandler) sendResponse(resp http.ResponseWriter, code int, payload interface{}) {
	if err, ok := payload.(error); ok {
		payload = &logSpecError{Error: err.Error()}
	}
	js, err := json.Marshal(payload)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warnf("failed to encode payload: %s", err)
		}
		resp.WriteHeader(http.StatusInternalServerError)
		return
	}
	resp.Header().Set("Content-Type", "application/json")
	resp.WriteHeader(code)
	resp.Write(js)
}
