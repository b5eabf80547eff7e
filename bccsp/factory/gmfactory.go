/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/
package factory

import (
	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/bccsp/gm"
	"github.com/gmsuite/gmsuite/common/metrics"
	"github.com/pkg/errors"
)

const (
	// GMBasedFactoryName is the name of the factory of the GM based BCCSP implementation
	GMBasedFactoryName = "GM"
)

// GMFactory is the factory of the GM based BCCSP.
type GMFactory struct {
	// MetricsProvider receives the operation metrics of the provider.
	// Metrics are disabled when nil.
	MetricsProvider metrics.Provider
}

// Name returns the name of this factory
func (f *GMFactory) Name() string {
	return GMBasedFactoryName
}

// Get returns an instance of BCCSP using Opts.
func (f *GMFactory) Get(config *FactoryOpts) (bccsp.BCCSP, error) {
	// Validate arguments
	if config == nil || config.GMOpts == nil {
		return nil, errors.New("Invalid config. It must not be nil.")
	}

	gmOpts := config.GMOpts

	var ks bccsp.KeyStore
	switch {
	case gmOpts.Ephemeral:
		ks = gm.NewInMemoryKeyStore()
	case gmOpts.FileKeystore != nil:
		fks, err := gm.NewFileBasedKeyStore(gmOpts.FileKeystore.KeyStorePath, gmOpts.FileKeystore.ReadOnly)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to initialize software key store")
		}
		ks = fks
	case gmOpts.DummyKeystore != nil:
		ks = gm.NewDummyKeyStore()
	default:
		// Default to ephemeral key store
		ks = gm.NewInMemoryKeyStore()
	}

	csp, err := gm.New(ks, f.MetricsProvider)
	if err != nil {
		return nil, err
	}
	return csp, nil
}
