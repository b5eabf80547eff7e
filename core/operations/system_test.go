/*
Copyright IBM Corp All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operations

import (
	"net"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/common/flogging"
	"github.com/gmsuite/gmsuite/common/metrics/disabled"
	"github.com/gmsuite/gmsuite/common/metrics/prometheus"
	"github.com/gmsuite/gmsuite/common/metrics/statsd"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	prom "github.com/prometheus/client_golang/prometheus"
)

type recordingLogger struct {
	warnings []string
}

func (r *recordingLogger) Warn(args ...interface{}) {
	r.warnings = append(r.warnings, "warn")
}

func (r *recordingLogger) Warnf(template string, args ...interface{}) {
	r.warnings = append(r.warnings, template)
}

var _ = Describe("System", func() {
	var logger *recordingLogger

	BeforeEach(func() {
		logger = &recordingLogger{}
	})

	It("falls back to the disabled provider", func() {
		system := NewSystem(Options{Logger: logger, Metrics: MetricsOptions{Provider: "bogus"}})
		Expect(system.Provider).To(BeAssignableToTypeOf(&disabled.Provider{}))
		Expect(logger.warnings).To(ContainElement("Unknown provider type: %s; metrics disabled"))

		system = NewSystem(Options{Logger: logger, Metrics: MetricsOptions{Provider: "disabled"}})
		Expect(system.Provider).To(BeAssignableToTypeOf(&disabled.Provider{}))
		Expect(logger.warnings).To(HaveLen(1))

		Expect(system.Start()).To(Succeed())
		Expect(system.Stop()).To(Succeed())
	})

	Describe("prometheus", func() {
		var (
			registry *prom.Registry
			system   *System
		)

		BeforeEach(func() {
			registry = prom.NewRegistry()
			system = NewSystem(Options{
				Logger:   logger,
				Metrics:  MetricsOptions{Provider: "prometheus"},
				Version:  "1.2.3",
				Registry: registry,
			})
			Expect(system.Provider).To(BeAssignableToTypeOf(&prometheus.Provider{}))
			Expect(system.Start()).To(Succeed())
		})

		AfterEach(func() {
			Expect(system.Stop()).To(Succeed())
		})

		It("serves the version gauge on /metrics", func() {
			resp := httptest.NewRecorder()
			system.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Expect(resp.Result().StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Body.String()).To(ContainSubstring(`gmsuite_version{version="1.2.3"} 1`))
		})

		It("counts log entries", func() {
			flogging.MustGetLogger("operations.test").Error("counted")

			resp := httptest.NewRecorder()
			system.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			Expect(resp.Body.String()).To(ContainSubstring(`logging_entries_written{level="error"}`))
		})

		It("serves the version", func() {
			resp := httptest.NewRecorder()
			system.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/version", nil))

			Expect(resp.Result().StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Body).To(MatchJSON(`{"CommitSHA": "development build", "Version": "1.2.3"}`))
		})

		It("initializes the factories with its provider", func() {
			csp, err := system.InitFactories(nil)
			Expect(err).NotTo(HaveOccurred())

			_, err = csp.KeyGen(&bccsp.SM9SignMasterKeyGenOpts{Temporary: true})
			Expect(err).NotTo(HaveOccurred())

			resp := httptest.NewRecorder()
			system.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			Expect(resp.Body.String()).To(ContainSubstring(`bccsp_gm_operations{algorithm="SM9_SIGN_MASTER",operation="keygen",success="true"} 1`))
		})
	})

	Describe("statsd", func() {
		var conn net.PacketConn

		BeforeEach(func() {
			var err error
			conn, err = net.ListenPacket("udp", "127.0.0.1:0")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			conn.Close()
		})

		It("pushes metrics to the statsd endpoint", func() {
			system := NewSystem(Options{
				Logger: logger,
				Metrics: MetricsOptions{
					Provider: "statsd",
					Statsd: &Statsd{
						Network:       "udp",
						Address:       conn.LocalAddr().String(),
						WriteInterval: 10 * time.Millisecond,
						Prefix:        "gmsuite",
					},
				},
				Version: "1.2.3",
			})
			Expect(system.Provider).To(BeAssignableToTypeOf(&statsd.Provider{}))
			Expect(system.Start()).To(Succeed())
			defer system.Stop()

			received := make(chan string, 1000)
			go func() {
				buf := make([]byte, 65536)
				for {
					n, _, err := conn.ReadFrom(buf)
					if err != nil {
						return
					}
					select {
					case received <- string(buf[:n]):
					default:
					}
				}
			}()

			Eventually(received, 5*time.Second).Should(Receive(ContainSubstring("gmsuite.gmsuite_version.1_2_3:1.000000|g")))
		})

		It("needs a statsd configuration", func() {
			system := NewSystem(Options{Logger: logger, Metrics: MetricsOptions{Provider: "statsd"}})
			Expect(system.Start()).To(MatchError("statsd metrics need a Statsd configuration"))
		})

		It("rejects a zero write interval", func() {
			system := NewSystem(Options{
				Logger: logger,
				Metrics: MetricsOptions{
					Provider: "statsd",
					Statsd:   &Statsd{Network: "udp", Address: conn.LocalAddr().String()},
				},
			})
			Expect(system.Start()).To(MatchError("invalid statsd write interval: 0s"))
		})
	})
})
