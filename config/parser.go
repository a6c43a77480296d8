package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"admin-dash/constants"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const DashDir = "admin-dash"

const ConfigYamlFileName = "config.yaml"

const DEFAULT_XDG_CONFIG_DIRNAME = ".config"

var validate *validator.Validate

const (
	ResourceUsers      = "users"
	ResourceSites      = "sites"
	ResourceVendors    = "vendors"
	ResourceCategories = "categories"
	ResourceCivilians  = "civilians"
	ResourceUserTypes  = "user-types"
)

var AllResources = []string{
	ResourceUsers,
	ResourceSites,
	ResourceVendors,
	ResourceCategories,
	ResourceCivilians,
	ResourceUserTypes,
}

type Config struct {
	ApiUrl              string           `yaml:"api_url" validate:"required,url"`
	Token               string           `yaml:"token"`
	Language            string           `yaml:"language" validate:"omitempty,bcp47_language_tag"`
	PageSize            int              `yaml:"page_size" validate:"gte=1,lte=100"`
	SearchDebounce      time.Duration    `yaml:"search_debounce" validate:"gte=0"`
	RequestTimeout      time.Duration    `yaml:"request_timeout" validate:"gt=0"`
	GuardStaleResponses *bool            `yaml:"guard_stale_responses,omitempty"`
	LogFile             string           `yaml:"log_file,omitempty"`
	Resources           []ConfigResource `yaml:"resources" validate:"unique=Name,dive"`
}

type ConfigResource struct {
	Name string `yaml:"name" validate:"required,oneof=users sites vendors categories civilians user-types"`
	Path string `yaml:"path"`
	// Query parameter carrying the search term; the API is not consistent
	// across resources ("search" vs "PageSearch").
	SearchParam string `yaml:"search_param"`
	Permission  string `yaml:"permission"`
	PageSize    int    `yaml:"page_size" validate:"omitempty,gte=1,lte=100"`
}

func (c Config) StaleGuard() bool {
	return c.GuardStaleResponses == nil || *c.GuardStaleResponses
}

// Resource returns the settings of a resource with defaults filled in.
func (c Config) Resource(name string) (ConfigResource, bool) {
	for _, r := range c.Resources {
		if r.Name == name {
			return r.withDefaults(c), true
		}
	}
	return ConfigResource{}, false
}

func (r ConfigResource) withDefaults(c Config) ConfigResource {
	if r.Path == "" {
		r.Path = "/" + r.Name
	}
	if r.SearchParam == "" {
		r.SearchParam = "search"
	}
	if r.PageSize == 0 {
		r.PageSize = c.PageSize
	}
	return r
}

type configError struct {
	configDir string
	parser    ConfigParser
	err       error
}

type ConfigParser struct{}

func (parser ConfigParser) getDefaultConfig() Config {
	return Config{
		ApiUrl:         "http://localhost:8080/api",
		Token:          "",
		Language:       "en",
		PageSize:       constants.DefaultPageSize,
		SearchDebounce: constants.DefaultSearchDebounce,
		RequestTimeout: constants.DefaultRequestTimeout,
		Resources:      []ConfigResource{},
	}
}

func (parser ConfigParser) getDefaultConfigYamlContents() string {
	defaultConfig := parser.getDefaultConfig()
	for _, name := range AllResources {
		defaultConfig.Resources = append(defaultConfig.Resources, ConfigResource{Name: name})
	}
	yaml, _ := yaml.Marshal(defaultConfig)

	return string(yaml)
}

func (parser ConfigParser) writeDefaultConfigContents(
	newConfigFile *os.File,
) error {
	_, err := newConfigFile.WriteString(parser.getDefaultConfigYamlContents())
	return err
}

func (parser ConfigParser) createConfigFileIfMissing(
	configFilePath string,
) error {
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		newConfigFile, err := os.OpenFile(
			configFilePath,
			os.O_RDWR|os.O_CREATE|os.O_EXCL,
			0666,
		)
		if err != nil {
			return err
		}

		defer newConfigFile.Close()
		return parser.writeDefaultConfigContents(newConfigFile)
	}

	return nil
}

func (parser ConfigParser) getDefaultConfigFileOrCreateIfMissing() (string, error) {
	var configFilePath string

	dashConfig := os.Getenv("ADMIN_DASH_CONFIG")
	if dashConfig != "" {
		configFilePath = dashConfig
	} else {
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(homeDir, DEFAULT_XDG_CONFIG_DIRNAME)
		}

		dashConfigDir := filepath.Join(configDir, DashDir)
		configFilePath = filepath.Join(dashConfigDir, ConfigYamlFileName)
	}

	// Ensure directory exists before attempting to create file
	configDir := filepath.Dir(configFilePath)
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		if err = os.MkdirAll(configDir, os.ModePerm); err != nil {
			return "", configError{
				parser:    parser,
				configDir: configDir,
				err:       err,
			}
		}
	}

	if err := parser.createConfigFileIfMissing(configFilePath); err != nil {
		return "", configError{parser: parser, configDir: configDir, err: err}
	}

	return configFilePath, nil
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed parsing config.yaml: %v", e.err)
}

func (e parsingError) Unwrap() error {
	return e.err
}

func (e configError) Error() string {
	return fmt.Sprintf(
		`could not read the admin-dash configuration.
Create %s, point $ADMIN_DASH_CONFIG at a file, or pass --config.

A configuration listing every resource:
%s
cause: %v`,
		path.Join(e.configDir, ConfigYamlFileName),
		e.parser.getDefaultConfigYamlContents(),
		e.err,
	)
}

func (e configError) Unwrap() error {
	return e.err
}

func (parser ConfigParser) readConfigFile(path string) (Config, error) {
	config := parser.getDefaultConfig()
	contents, err := os.ReadFile(path)
	if err != nil {
		return config, configError{parser: parser, configDir: filepath.Dir(path), err: err}
	}

	if err := yaml.Unmarshal(contents, &config); err != nil {
		return config, fmt.Errorf("decoding %s: %w", path, err)
	}

	if len(config.Resources) == 0 {
		for _, name := range AllResources {
			config.Resources = append(config.Resources, ConfigResource{Name: name})
		}
	}

	err = validate.Struct(config)
	return config, err
}

func initParser() ConfigParser {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return ConfigParser{}
}

func ParseConfig(path string) (Config, error) {
	parser := initParser()

	var config Config
	var err error
	var configFilePath string

	if path == "" {
		configFilePath, err = parser.getDefaultConfigFileOrCreateIfMissing()
		if err != nil {
			return config, parsingError{err: err}
		}
	} else {
		configFilePath = path
	}

	config, err = parser.readConfigFile(configFilePath)
	if err != nil {
		return config, parsingError{err: err}
	}

	return config, nil
}

// DemoConfig is used when running against the local store.
func DemoConfig() Config {
	config := ConfigParser{}.getDefaultConfig()
	for _, name := range AllResources {
		config.Resources = append(config.Resources, ConfigResource{Name: name})
	}
	return config
}
