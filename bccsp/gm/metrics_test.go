/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"testing"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/common/metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findMetric(t *testing.T, reg *prom.Registry, name string, labels map[string]string) *dto.Metric {
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	next:
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if v, ok := labels[lp.GetName()]; ok && v != lp.GetValue() {
					continue next
				}
			}
			return m
		}
	}
	t.Fatalf("metric %s %v not found", name, labels)
	return nil
}

func TestOperationMetrics(t *testing.T) {
	t.Parallel()

	reg := prom.NewRegistry()
	csp, err := New(NewInMemoryKeyStore(), &prometheus.Provider{Registerer: reg})
	require.NoError(t, err)

	k, err := csp.KeyGen(&bccsp.SM4KeyGenOpts{Temporary: true})
	require.NoError(t, err)
	_, err = csp.Encrypt(k, make([]byte, 16), nil)
	require.NoError(t, err)
	_, err = csp.Encrypt(k, make([]byte, 16), nil)
	require.NoError(t, err)
	_, err = csp.Decrypt(k, []byte{1}, nil)
	require.Error(t, err)

	m := findMetric(t, reg, "bccsp_gm_operations", map[string]string{"operation": "keygen", "algorithm": "SM4", "success": "true"})
	assert.Equal(t, float64(1), m.GetCounter().GetValue())

	m = findMetric(t, reg, "bccsp_gm_operations", map[string]string{"operation": "encrypt", "algorithm": "SM4", "success": "true"})
	assert.Equal(t, float64(2), m.GetCounter().GetValue())

	m = findMetric(t, reg, "bccsp_gm_operations", map[string]string{"operation": "decrypt", "algorithm": "SM4", "success": "false"})
	assert.Equal(t, float64(1), m.GetCounter().GetValue())

	m = findMetric(t, reg, "bccsp_gm_operation_duration", map[string]string{"operation": "encrypt", "algorithm": "SM4"})
	assert.Equal(t, uint64(2), m.GetHistogram().GetSampleCount())
}
