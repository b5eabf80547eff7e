/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package viperutil

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/gmsuite/gmsuite/bccsp/factory"
	"github.com/gmsuite/gmsuite/common/flogging"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var logger = flogging.MustGetLogger("viperutil")

// CfgPathEnv names the environment variable holding an extra directory to
// search for configuration files.
const CfgPathEnv = "GMSUITE_CFG_PATH"

var configExts = []string{"yaml", "yml"}

// ConfigPaths returns the directory named by CfgPathEnv, if any, followed by
// the working directory and /etc/gmsuite.
func ConfigPaths() []string {
	var paths []string
	if p := os.Getenv(CfgPathEnv); p != "" {
		paths = append(paths, p)
	}
	return append(paths, ".", "/etc/gmsuite")
}

// ConfigParser reads a YAML configuration file and overlays environment
// variables named after the config name and the key path, so that
// General.LogSpec of config "gmsuite" is overridden by GMSUITE_GENERAL_LOGSPEC.
type ConfigParser struct {
	name   string
	file   string
	paths  []string
	config map[string]interface{}
}

func New() *ConfigParser {
	return &ConfigParser{config: map[string]interface{}{}}
}

// AddConfigPaths replaces the default search path with the given
// directories, searched in order.
func (c *ConfigParser) AddConfigPaths(paths ...string) {
	c.paths = append(c.paths, paths...)
}

// SetConfigName sets the file name stem. Upper-cased, it is also the
// environment override prefix.
func (c *ConfigParser) SetConfigName(name string) {
	c.name = name
}

// SetConfigFile names the config file explicitly, bypassing the search.
func (c *ConfigParser) SetConfigFile(file string) {
	c.file = file
}

func (c *ConfigParser) ConfigFileUsed() string {
	return c.file
}

func (c *ConfigParser) searchPaths() []string {
	if len(c.paths) == 0 {
		return ConfigPaths()
	}
	return c.paths
}

func (c *ConfigParser) locate() string {
	if c.file != "" {
		return c.file
	}
	for _, dir := range c.searchPaths() {
		for _, ext := range configExts {
			candidate := filepath.Join(dir, c.name+"."+ext)
			if _, err := os.Stat(candidate); err == nil {
				c.file = candidate
				return candidate
			}
		}
	}
	return ""
}

// ReadInConfig reads the explicit config file or the first <name>.yaml or
// <name>.yml found on the search path.
func (c *ConfigParser) ReadInConfig() error {
	path := c.locate()
	if path == "" {
		return errors.Errorf("config file %s not found in %v", c.name, c.searchPaths())
	}

	logger.Debugf("Reading config file %s", path)
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.ReadConfig(f)
}

// ReadConfig parses YAML from in. Empty input yields an empty config.
func (c *ConfigParser) ReadConfig(in io.Reader) error {
	err := yaml.NewDecoder(in).Decode(c.config)
	if err == io.EOF {
		return nil
	}
	return errors.Wrap(err, "could not parse YAML config")
}

func (c *ConfigParser) envOverride(key string) string {
	if c.name != "" {
		key = c.name + "." + key
	}
	return os.Getenv(strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
}

// leaves walks node alongside the struct type typ, replacing values with
// their environment overrides. Fields of typ absent from the file are
// visited too, so an override can supply them.
func (c *ConfigParser) leaves(base string, node map[string]interface{}, typ reflect.Type) (map[string]interface{}, error) {
	fieldTypes := map[string]reflect.Type{}
	if typ != nil && typ.Kind() == reflect.Struct {
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			key := field.Name
			for k := range node {
				if strings.EqualFold(k, field.Name) {
					key = k
					break
				}
			}
			fieldTypes[key] = field.Type
			if _, ok := node[key]; !ok {
				node[key] = nil
			}
		}
	}

	out := map[string]interface{}{}
	for key, val := range node {
		path := base + key
		if override := c.envOverride(path); override != "" {
			val = override
		}

		switch v := val.(type) {
		case map[interface{}]interface{}:
			sub, err := stringKeys(path, v)
			if err != nil {
				return nil, err
			}
			if out[key], err = c.leaves(path+".", sub, fieldTypes[key]); err != nil {
				return nil, err
			}
		case map[string]interface{}:
			var err error
			if out[key], err = c.leaves(path+".", v, fieldTypes[key]); err != nil {
				return nil, err
			}
		case nil:
			ft := fieldTypes[key]
			if ft == nil || ft.Kind() != reflect.Struct {
				continue
			}
			sub, err := c.leaves(path+".", map[string]interface{}{}, ft)
			if err != nil {
				return nil, err
			}
			if len(sub) > 0 {
				out[key] = sub
			}
		default:
			out[key] = v
		}
	}
	return out, nil
}

func stringKeys(path string, m map[interface{}]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		s, ok := k.(string)
		if !ok {
			return nil, errors.Errorf("non-string key %v under %s", k, path)
		}
		out[s] = v
	}
	return out, nil
}

// sliceHook turns "[a, b, c]" strings, as set through the environment, into
// trimmed string slices.
func sliceHook(f, _ reflect.Type, data interface{}) (interface{}, error) {
	if f.Kind() != reflect.String {
		return data, nil
	}
	s := data.(string)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return data, nil
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

// bccspHook hands BCCSP sections to the factory decoder, which fills unset
// GM provider settings with the factory defaults.
func bccspHook(_, t reflect.Type, data interface{}) (interface{}, error) {
	if t != reflect.TypeOf(&factory.FactoryOpts{}) {
		return data, nil
	}
	opts, err := factory.DecodeConfig(data)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode bccsp type")
	}
	return opts, nil
}

// EnhancedExactUnmarshal decodes the config and its environment overrides
// into output, which must point to a struct. Keys without a matching field
// are an error. Durations and "[a, b]" lists are decoded from strings.
func (c *ConfigParser) EnhancedExactUnmarshal(output interface{}) error {
	typ := reflect.TypeOf(output)
	if typ.Kind() != reflect.Ptr {
		return errors.New("supplied output argument must be a pointer to a struct but is not pointer")
	}
	if typ.Elem().Kind() != reflect.Struct {
		return errors.New("supplied output argument must be a pointer to a struct, but it is pointer to something else")
	}

	leaves, err := c.leaves("", c.config, typ.Elem())
	if err != nil {
		return err
	}
	logger.Debugf("Decoding config %+v", leaves)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           output,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			bccspHook,
			mapstructure.StringToTimeDurationHookFunc(),
			sliceHook,
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(leaves)
}
