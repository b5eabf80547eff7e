/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/
package factory

import (
	"os"
	"plugin"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/pkg/errors"
)

const (
	// PluginFactoryName is the factory name for BCCSP plugins
	PluginFactoryName = "PLUGIN"
)

// PluginOpts contains the options for the PluginFactory
type PluginOpts struct {
	// Path to plugin library
	Library string `mapstructure:"library" json:"library" yaml:"Library"`
	// Config map for the plugin library
	Config map[string]interface{} `mapstructure:"config" json:"config" yaml:"Config"`
}

// PluginFactory is the factory for BCCSP plugins. A plugin exports
//
//	func New(config map[string]interface{}) (bccsp.BCCSP, error)
//
// and is loaded with the Go plugin package.
type PluginFactory struct{}

// Name returns the name of this factory
func (f *PluginFactory) Name() string {
	return PluginFactoryName
}

// Get returns an instance of BCCSP using Opts.
func (f *PluginFactory) Get(config *FactoryOpts) (bccsp.BCCSP, error) {
	// check for valid config
	if config == nil || config.PluginOpts == nil {
		return nil, errors.New("Invalid config. It must not be nil.")
	}

	// Library is required property
	if config.PluginOpts.Library == "" {
		return nil, errors.New("Invalid config: missing property 'Library'")
	}

	// make sure the library exists
	if _, err := os.Stat(config.PluginOpts.Library); err != nil {
		return nil, errors.Errorf("Could not find library '%s' [%s]", config.PluginOpts.Library, err)
	}

	plug, err := plugin.Open(config.PluginOpts.Library)
	if err != nil {
		return nil, errors.Errorf("Failed to load plugin '%s' [%s]", config.PluginOpts.Library, err)
	}

	sym, err := plug.Lookup("New")
	if err != nil {
		return nil, errors.Errorf("Could not find required symbol 'New' [%s]", err)
	}

	newBCCSP, ok := sym.(func(config map[string]interface{}) (bccsp.BCCSP, error))
	if !ok {
		return nil, errors.New("Plugin does not implement the required function signature for 'New'")
	}

	return newBCCSP(config.PluginOpts.Config)
}
