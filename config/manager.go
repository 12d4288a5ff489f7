package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manager resolves the effective configuration: defaults, then the config
// file, then environment variables prefixed with the upper-cased Name.
type Manager struct {
	store  Store
	Config Config
}

func NewManager(store Store) *Manager {
	configuration := store.ReadDefaults()

	userConfig, err := store.Read()
	if err == nil {
		configuration = replaceByConfigFile(configuration, userConfig)
	}

	return &Manager{store: store, Config: configuration}
}

func (m *Manager) WithEnvironment() *Manager {
	m.Config = replaceByEnvironment(m.Config)
	return m
}

func (m *Manager) APIKeyEnvVarName() string {
	return m.envPrefix() + "API_KEY"
}

// ResolveAPIKey returns the configured key, falling back to the contents of
// api_key_file when no key is set directly.
func (m *Manager) ResolveAPIKey() (string, error) {
	if m.Config.APIKey != "" {
		return m.Config.APIKey, nil
	}

	if m.Config.APIKeyFile == "" {
		return "", nil
	}

	key, err := ReadAPIKeyFile(m.Config.APIKeyFile)
	if err != nil {
		return "", err
	}
	m.Config.APIKey = key

	return key, nil
}

// ShowConfig serializes the current configuration to YAML, with the API key
// redacted.
func (m *Manager) ShowConfig() (string, error) {
	cfg := m.Config
	if cfg.APIKey != "" {
		cfg.APIKey = "<redacted>"
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Save persists the current configuration to the store.
func (m *Manager) Save() error {
	return m.store.Write(m.Config)
}

func (m *Manager) envPrefix() string {
	return strings.ToUpper(m.Config.Name) + "_"
}

func replaceByConfigFile(defaultConfig, userConfig Config) Config {
	t := reflect.TypeOf(defaultConfig)
	vDefault := reflect.ValueOf(&defaultConfig).Elem()
	vUser := reflect.ValueOf(userConfig)

	for i := 0; i < t.NumField(); i++ {
		defaultField := vDefault.Field(i)
		userField := vUser.Field(i)

		switch defaultField.Kind() {
		case reflect.String:
			if userStr := userField.String(); userStr != "" {
				defaultField.SetString(userStr)
			}
		case reflect.Int:
			if userInt := userField.Int(); userInt != 0 {
				defaultField.SetInt(userInt)
			}
		case reflect.Bool:
			defaultField.SetBool(userField.Bool())
		case reflect.Float64:
			if userFloat := userField.Float(); userFloat != 0.0 {
				defaultField.SetFloat(userFloat)
			}
		case reflect.Map:
			if userField.Len() > 0 {
				defaultField.Set(userField)
			}
		}
	}

	return defaultConfig
}

func replaceByEnvironment(configuration Config) Config {
	t := reflect.TypeOf(configuration)
	v := reflect.ValueOf(&configuration).Elem()

	prefix := strings.ToUpper(configuration.Name) + "_"
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "name" {
			continue
		}

		value := os.Getenv(prefix + strings.ToUpper(tag))
		if value == "" {
			continue
		}

		field := v.Field(i)

		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Int:
			if intValue, err := strconv.Atoi(value); err == nil {
				field.SetInt(int64(intValue))
			}
		case reflect.Bool:
			if boolValue, err := strconv.ParseBool(value); err == nil {
				field.SetBool(boolValue)
			}
		case reflect.Float64:
			if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
				field.SetFloat(floatValue)
			}
		}
	}

	return configuration
}
