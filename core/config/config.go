/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"time"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/bccsp/factory"
	"github.com/gmsuite/gmsuite/common/flogging"
	"github.com/gmsuite/gmsuite/common/viperutil"
	"github.com/gmsuite/gmsuite/core/operations"
	"github.com/pkg/errors"
)

var logger = flogging.MustGetLogger("localconfig")

// Prefix is the config file name stem and the environment override prefix.
const Prefix = "gmsuite"

// TopLevel directly corresponds to the gmsuite.yaml config file.
type TopLevel struct {
	General    General
	Operations Operations
	Metrics    Metrics
	BCCSP      *factory.FactoryOpts
}

// General contains the logging configuration. An empty LogFormat selects
// the flogging console format.
type General struct {
	LogSpec   string
	LogFormat string
}

// Operations configures the operations handlers.
type Operations struct {
	Version string
}

// Metrics selects the metrics provider: prometheus, statsd or disabled.
type Metrics struct {
	Provider string
	Statsd   Statsd
}

// Statsd contains the configuration of the statsd push loop.
type Statsd struct {
	Network       string
	Address       string
	WriteInterval time.Duration
	Prefix        string
}

// Defaults carries the default gmsuite configuration values.
var Defaults = TopLevel{
	General: General{
		LogSpec: "info",
	},
	Metrics: Metrics{
		Provider: "disabled",
		Statsd: Statsd{
			Network:       "udp",
			Address:       "127.0.0.1:8125",
			WriteInterval: 30 * time.Second,
			Prefix:        "gmsuite",
		},
	},
}

// Load parses the gmsuite.yaml file found in the config search path and
// the GMSUITE_ environment overrides.
func Load() (*TopLevel, error) {
	return load(viperutil.New())
}

// LoadFile parses the config file at path and the GMSUITE_ environment
// overrides.
func LoadFile(path string) (*TopLevel, error) {
	p := viperutil.New()
	p.SetConfigFile(path)
	return load(p)
}

func load(p *viperutil.ConfigParser) (*TopLevel, error) {
	p.SetConfigName(Prefix)

	if err := p.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "Error reading configuration from file")
	}

	var uconf TopLevel
	if err := p.EnhancedExactUnmarshal(&uconf); err != nil {
		return nil, errors.Wrap(err, "Error unmarshalling config into struct")
	}

	uconf.completeInitialization()
	return &uconf, nil
}

func (c *TopLevel) completeInitialization() {
	defer logger.Debugf("Validated configuration to: %+v", c)

	for {
		switch {
		case c.General.LogSpec == "":
			logger.Infof("General.LogSpec unset, setting to %s", Defaults.General.LogSpec)
			c.General.LogSpec = Defaults.General.LogSpec
		case c.Metrics.Provider == "":
			logger.Infof("Metrics.Provider unset, setting to %s", Defaults.Metrics.Provider)
			c.Metrics.Provider = Defaults.Metrics.Provider
		case c.Metrics.Provider == "statsd" && c.Metrics.Statsd.Network == "":
			c.Metrics.Statsd.Network = Defaults.Metrics.Statsd.Network
		case c.Metrics.Provider == "statsd" && c.Metrics.Statsd.Address == "":
			logger.Infof("Metrics.Statsd.Address unset, setting to %s", Defaults.Metrics.Statsd.Address)
			c.Metrics.Statsd.Address = Defaults.Metrics.Statsd.Address
		case c.Metrics.Provider == "statsd" && c.Metrics.Statsd.WriteInterval == 0:
			logger.Infof("Metrics.Statsd.WriteInterval unset, setting to %s", Defaults.Metrics.Statsd.WriteInterval)
			c.Metrics.Statsd.WriteInterval = Defaults.Metrics.Statsd.WriteInterval
		case c.BCCSP == nil:
			logger.Infof("BCCSP unset, using the ephemeral %s provider", factory.GMBasedFactoryName)
			c.BCCSP = factory.GetDefaultOpts()
		default:
			return
		}
	}
}

// Bootstrap applies the logging configuration, starts the operations system
// and initializes the BCCSP factories with its metrics provider. The caller
// stops the returned system.
func (c *TopLevel) Bootstrap() (*operations.System, bccsp.BCCSP, error) {
	err := flogging.Global.Apply(flogging.Config{Format: c.General.LogFormat, LogSpec: c.General.LogSpec})
	if err != nil {
		return nil, nil, errors.Wrap(err, "invalid logging configuration")
	}

	statsd := c.Metrics.Statsd
	system := operations.NewSystem(operations.Options{
		Metrics: operations.MetricsOptions{
			Provider: c.Metrics.Provider,
			Statsd: &operations.Statsd{
				Network:       statsd.Network,
				Address:       statsd.Address,
				WriteInterval: statsd.WriteInterval,
				Prefix:        statsd.Prefix,
			},
		},
		Version: c.Operations.Version,
	})
	if err := system.Start(); err != nil {
		return nil, nil, errors.Wrap(err, "failed starting the operations system")
	}

	csp, err := system.InitFactories(c.BCCSP)
	if err != nil {
		system.Stop()
		return nil, nil, err
	}

	return system, csp, nil
}
