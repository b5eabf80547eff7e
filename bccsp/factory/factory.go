/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/
package factory

import (
	"sync"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/common/flogging"
	"github.com/gmsuite/gmsuite/common/metrics"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var (
	// Default BCCSP
	defaultBCCSP bccsp.BCCSP

	// when InitFactories has not been called yet (should only happen
	// in test cases), use this BCCSP temporarily
	bootBCCSP bccsp.BCCSP

	// BCCSP Factories
	bccspMap   map[string]bccsp.BCCSP
	bccspMapMu sync.RWMutex

	// factories' Sync on Initialization
	factoriesInitOnce sync.Once
	bootBCCSPInitOnce sync.Once

	// Factories' Initialization Error
	factoriesInitError error

	logger = flogging.MustGetLogger("bccsp_factory")
)

// BCCSPFactory is used to get instances of the BCCSP interface.
// A Factory has name used to address it.
type BCCSPFactory interface {

	// Name returns the name of this factory
	Name() string

	// Get returns an instance of BCCSP using opts.
	Get(opts *FactoryOpts) (bccsp.BCCSP, error)
}

// GetDefault returns a non-ephemeral (long-term) BCCSP
func GetDefault() bccsp.BCCSP {
	bccspMapMu.RLock()
	csp := defaultBCCSP
	bccspMapMu.RUnlock()
	if csp != nil {
		return csp
	}

	logger.Debug("Before using BCCSP, please call InitFactories(). Falling back to bootBCCSP.")
	bootBCCSPInitOnce.Do(func() {
		var err error
		f := &GMFactory{}
		bootBCCSP, err = f.Get(GetDefaultOpts())
		if err != nil {
			panic("BCCSP Internal error, failed initialization with GetDefaultOpts!")
		}
	})
	return bootBCCSP
}

// GetBCCSP returns a BCCSP created according to the options passed in input.
func GetBCCSP(name string) (bccsp.BCCSP, error) {
	bccspMapMu.RLock()
	defer bccspMapMu.RUnlock()

	csp, ok := bccspMap[name]
	if !ok {
		return nil, errors.Errorf("Could not find BCCSP, no '%s' provider", name)
	}
	return csp, nil
}

// InitFactories must be called before using factory interfaces
// It is acceptable to call with config = nil, in which case
// some defaults will get used
// Error is returned only if defaultBCCSP cannot be found
func InitFactories(config *FactoryOpts) error {
	return InitFactoriesWithMetrics(config, nil)
}

// InitFactoriesWithMetrics is InitFactories with the GM provider reporting
// its operations to metricsProvider.
func InitFactoriesWithMetrics(config *FactoryOpts, metricsProvider metrics.Provider) error {
	factoriesInitOnce.Do(func() {
		factoriesInitError = initFactories(config, metricsProvider)
	})

	return factoriesInitError
}

func initFactories(config *FactoryOpts, metricsProvider metrics.Provider) error {
	// Take some precautions on default opts
	if config == nil {
		config = GetDefaultOpts()
	}

	if config.ProviderName == "" {
		config.ProviderName = GMBasedFactoryName
	}

	if config.GMOpts == nil {
		config.GMOpts = GetDefaultOpts().GMOpts
	}

	csps := make(map[string]bccsp.BCCSP)

	var initErr error
	// GM-Based BCCSP
	if config.GMOpts != nil {
		f := &GMFactory{MetricsProvider: metricsProvider}
		if err := initBCCSP(csps, f, config); err != nil {
			initErr = errors.Wrapf(err, "Failed initializing GM.BCCSP")
		}
	}

	// BCCSP Plugin
	if config.PluginOpts != nil {
		f := &PluginFactory{}
		if err := initBCCSP(csps, f, config); err != nil {
			initErr = errors.Wrapf(err, "Failed initializing PLUGIN.BCCSP %s", initErr)
		}
	}

	bccspMapMu.Lock()
	defer bccspMapMu.Unlock()

	bccspMap = csps
	var ok bool
	defaultBCCSP, ok = bccspMap[config.ProviderName]
	if !ok {
		initErr = errors.Errorf("%s\nCould not find default `%s` BCCSP", initErr, config.ProviderName)
	}
	return initErr
}

// GetBCCSPFromOpts returns a BCCSP created according to the options passed in input.
func GetBCCSPFromOpts(config *FactoryOpts) (bccsp.BCCSP, error) {
	if config == nil {
		return nil, errors.New("Invalid config. It must not be nil.")
	}

	var f BCCSPFactory
	switch config.ProviderName {
	case GMBasedFactoryName:
		f = &GMFactory{}
	case PluginFactoryName:
		f = &PluginFactory{}
	default:
		return nil, errors.Errorf("Could not find BCCSP, no '%s' provider", config.ProviderName)
	}

	csp, err := f.Get(config)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not initialize BCCSP %s", f.Name())
	}
	return csp, nil
}

// LoadConfig decodes the BCCSP section found under key. A missing section
// yields GetDefaultOpts.
func LoadConfig(v *viper.Viper, key string) (*FactoryOpts, error) {
	raw := v.Get(key)
	if raw == nil {
		logger.Debugf("No BCCSP section under [%s], using defaults", key)
		return GetDefaultOpts(), nil
	}

	config, err := DecodeConfig(raw)
	if err != nil {
		return nil, errors.WithMessagef(err, "could not decode BCCSP section [%s]", key)
	}
	return config, nil
}

// DecodeConfig decodes a generic map, as produced by YAML or JSON parsers,
// into FactoryOpts. Unset provider settings are filled from GetDefaultOpts.
func DecodeConfig(raw interface{}) (*FactoryOpts, error) {
	config := &FactoryOpts{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	if config.ProviderName == "" {
		config.ProviderName = GMBasedFactoryName
	}
	if config.ProviderName == GMBasedFactoryName && config.GMOpts == nil {
		config.GMOpts = GetDefaultOpts().GMOpts
	}
	return config, nil
}

func initBCCSP(csps map[string]bccsp.BCCSP, f BCCSPFactory, config *FactoryOpts) error {
	csp, err := f.Get(config)
	if err != nil {
		return errors.Errorf("Could not initialize BCCSP %s [%s]", f.Name(), err)
	}

	logger.Debugf("Initialize BCCSP [%s]", f.Name())
	csps[f.Name()] = csp
	return nil
}
