/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/bccsp/factory"
	"github.com/gmsuite/gmsuite/common/flogging"
	"github.com/gmsuite/gmsuite/common/metrics/disabled"
	"github.com/gmsuite/gmsuite/common/viperutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
General:
    LogSpec: warn:bccsp_gm=debug
    LogFormat: json
Operations:
    Version: 1.0.0
Metrics:
    Provider: statsd
    Statsd:
        Address: 127.0.0.1:9125
        WriteInterval: 10s
BCCSP:
    Default: GM
    GM:
        FileKeyStore:
            KeyStore: %s
`

func sprintfConfig(keystore string) string {
	return fmt.Sprintf(sampleConfig, keystore)
}

func writeConfig(t *testing.T, dir, contents string) string {
	path := filepath.Join(dir, "gmsuite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, sprintfConfig(filepath.Join(dir, "keystore")))

	conf, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "warn:bccsp_gm=debug", conf.General.LogSpec)
	assert.Equal(t, "json", conf.General.LogFormat)
	assert.Equal(t, "1.0.0", conf.Operations.Version)
	assert.Equal(t, "statsd", conf.Metrics.Provider)
	assert.Equal(t, Statsd{
		Network:       "udp",
		Address:       "127.0.0.1:9125",
		WriteInterval: 10 * time.Second,
	}, conf.Metrics.Statsd)

	require.NotNil(t, conf.BCCSP)
	assert.Equal(t, "GM", conf.BCCSP.ProviderName)
	assert.False(t, conf.BCCSP.GMOpts.Ephemeral)
	assert.Equal(t, filepath.Join(dir, "keystore"), conf.BCCSP.GMOpts.FileKeystore.KeyStorePath)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "General:\n    LogSpec: debug\n")
	t.Setenv(viperutil.CfgPathEnv, dir)
	t.Setenv("GMSUITE_GENERAL_LOGSPEC", "error")
	t.Setenv("GMSUITE_METRICS_PROVIDER", "prometheus")

	conf, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "error", conf.General.LogSpec)
	assert.Equal(t, "prometheus", conf.Metrics.Provider)
	assert.Equal(t, Statsd{}, conf.Metrics.Statsd)
	assert.Equal(t, factory.GetDefaultOpts(), conf.BCCSP)
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	conf, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults.General.LogSpec, conf.General.LogSpec)
	assert.Equal(t, "disabled", conf.Metrics.Provider)
	assert.Equal(t, factory.GetDefaultOpts(), conf.BCCSP)

	conf = &TopLevel{Metrics: Metrics{Provider: "statsd"}}
	conf.completeInitialization()
	assert.Equal(t, Defaults.Metrics.Statsd.Network, conf.Metrics.Statsd.Network)
	assert.Equal(t, Defaults.Metrics.Statsd.Address, conf.Metrics.Statsd.Address)
	assert.Equal(t, Defaults.Metrics.Statsd.WriteInterval, conf.Metrics.Statsd.WriteInterval)
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error reading configuration from file")

	path := writeConfig(t, t.TempDir(), "General:\n    Unknown: 1\n")
	_, err = LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error unmarshalling config into struct")
}

func TestBootstrap(t *testing.T) {
	defer flogging.Reset()

	dir := t.TempDir()
	conf := &TopLevel{
		General: General{LogSpec: "error", LogFormat: "logfmt"},
		Metrics: Metrics{Provider: "disabled"},
		BCCSP: &factory.FactoryOpts{
			ProviderName: "GM",
			GMOpts: &factory.GMOpts{
				FileKeystore: &factory.FileKeystoreOpts{KeyStorePath: dir},
			},
		},
	}

	system, csp, err := conf.Bootstrap()
	require.NoError(t, err)
	defer system.Stop()

	assert.IsType(t, &disabled.Provider{}, system.Provider)
	assert.Equal(t, "error", flogging.Global.Spec())
	assert.Equal(t, factory.GetDefault(), csp)

	k, err := csp.KeyGen(&bccsp.SM9EncryptMasterKeyGenOpts{})
	require.NoError(t, err)
	loaded, err := csp.GetKey(k.SKI())
	require.NoError(t, err)
	assert.Equal(t, k.SKI(), loaded.SKI())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBootstrapInvalidLogSpec(t *testing.T) {
	defer flogging.Reset()

	conf := &TopLevel{General: General{LogSpec: "bccsp_gm=chatty"}}
	_, _, err := conf.Bootstrap()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging configuration")
}
