/*
Copyright IBM Corp All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operations

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gmsuite/gmsuite/common/flogging"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LogSpecHandler", func() {
	var (
		logging *flogging.Logging
		handler *LogSpecHandler
	)

	BeforeEach(func() {
		var err error
		logging, err = flogging.New(flogging.Config{LogSpec: "info"})
		Expect(err).NotTo(HaveOccurred())
		handler = &LogSpecHandler{Logging: logging}
	})

	It("returns the active spec", func() {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/logspec", nil))

		Expect(resp.Result().StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Body).To(MatchJSON(`{"spec": "info"}`))
	})

	It("activates a new spec", func() {
		resp := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/logspec", strings.NewReader(`{"spec": "bccsp_gm=debug:warn"}`))
		handler.ServeHTTP(resp, req)

		Expect(resp.Result().StatusCode).To(Equal(http.StatusNoContent))
		Expect(logging.Spec()).To(Equal("bccsp_gm=debug:warn"))
	})

	It("rejects a bad spec", func() {
		resp := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/logspec", strings.NewReader(`{"spec": "bccsp_gm=loud"}`))
		handler.ServeHTTP(resp, req)

		Expect(resp.Result().StatusCode).To(Equal(http.StatusBadRequest))
		Expect(resp.Body.String()).To(ContainSubstring(`"error"`))
		Expect(logging.Spec()).To(Equal("info"))
	})

	It("rejects a malformed payload", func() {
		resp := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/logspec", strings.NewReader(`spec`))
		handler.ServeHTTP(resp, req)

		Expect(resp.Result().StatusCode).To(Equal(http.StatusBadRequest))
		Expect(resp.Body.String()).To(ContainSubstring("invalid log spec payload"))
	})

	It("rejects other methods", func() {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/logspec", nil))

		Expect(resp.Result().StatusCode).To(Equal(http.StatusBadRequest))
		Expect(resp.Body).To(MatchJSON(`{"error": "invalid request method: POST"}`))
	})
})
