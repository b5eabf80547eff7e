/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/
package factory

// FactoryOpts holds configuration information used to initialize factory implementations
type FactoryOpts struct {
	ProviderName string      `mapstructure:"default" json:"default" yaml:"Default"`
	GMOpts       *GMOpts     `mapstructure:"GM,omitempty" json:"GM,omitempty" yaml:"GM,omitempty"`
	PluginOpts   *PluginOpts `mapstructure:"PLUGIN,omitempty" json:"PLUGIN,omitempty" yaml:"PluginOpts"`
}

// GMOpts contains options for the GM provider.
type GMOpts struct {
	Ephemeral     bool               `mapstructure:"ephemeral" json:"ephemeral" yaml:"Ephemeral"`
	FileKeystore  *FileKeystoreOpts  `mapstructure:"filekeystore,omitempty" json:"filekeystore,omitempty" yaml:"FileKeyStore"`
	DummyKeystore *DummyKeystoreOpts `mapstructure:"dummykeystore,omitempty" json:"dummykeystore,omitempty" yaml:"DummyKeyStore"`
}

// FileKeystoreOpts points the GM provider at a folder of PEM encoded keys.
type FileKeystoreOpts struct {
	KeyStorePath string `mapstructure:"keystore" json:"keystore" yaml:"KeyStore"`
	ReadOnly     bool   `mapstructure:"readonly" json:"readonly" yaml:"ReadOnly"`
}

// DummyKeystoreOpts selects a keystore that never stores anything.
type DummyKeystoreOpts struct{}

// GetDefaultOpts offers a default implementation for Opts
// returns a new instance every time
func GetDefaultOpts() *FactoryOpts {
	return &FactoryOpts{
		ProviderName: GMBasedFactoryName,
		GMOpts: &GMOpts{
			Ephemeral: true,
		},
	}
}

// FactoryName returns the name of the provider
func (o *FactoryOpts) FactoryName() string {
	return o.ProviderName
}
