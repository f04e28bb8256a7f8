package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const defaultRouterTimeout = 10

type Config struct {
	Listen      string             `yaml:"listen" validate:"required"`
	ProbePath   string             `yaml:"probe_path" validate:"required"`
	MetricsPath string             `yaml:"metrics_path" validate:"required"`
	Timeout     float64            `yaml:"timeout" validate:"gt=0"`
	Global      Global             `yaml:"global"`
	Routers     map[string]*Router `yaml:"routers" validate:"required,dive,required"`
}

type Global struct {
	Username string  `yaml:"username"`
	Password string  `yaml:"password"`
	Options  Options `yaml:"options"`
}

type Router struct {
	Address  string   `yaml:"address" validate:"required"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	Timeout  float64  `yaml:"timeout" validate:"gte=0"`
	Options  *Options `yaml:"options"`
}

// Options select which collectors run during a probe.
type Options struct {
	ExportTraffic    bool `yaml:"traffic"`
	ExportDevices    bool `yaml:"devices"`
	ExportSystem     bool `yaml:"system"`
	ExportDeviceInfo bool `yaml:"device_info"`
	// UseDevices2 switches the device list to the keyed format newer
	// firmwares support.
	UseDevices2 bool `yaml:"devices_v2"`
}

func DefaultConfig() Config {
	return Config{
		Listen:      ":9143",
		ProbePath:   "/probe",
		MetricsPath: "/metrics",
		Timeout:     60,
		Global: Global{
			Options: DefaultOptions(),
		},
	}
}

func DefaultOptions() Options {
	return Options{
		ExportTraffic:    true,
		ExportDevices:    true,
		ExportSystem:     true,
		ExportDeviceInfo: true,
	}
}

func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*c = DefaultConfig()

	type plain Config
	if err := unmarshal((*plain)(c)); err != nil {
		return err
	}

	for _, router := range c.Routers {
		if router == nil {
			continue
		}
		if router.Username == "" {
			router.Username = c.Global.Username
		}
		if router.Password == "" {
			router.Password = c.Global.Password
		}
		if router.Timeout == 0 {
			router.Timeout = defaultRouterTimeout
		}
		if router.Options == nil {
			options := c.Global.Options
			router.Options = &options
		}
	}

	return nil
}

func (o *Options) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*o = DefaultOptions()

	type plain Options
	return unmarshal((*plain)(o))
}

var validate = validator.New()

// Validate runs after defaults and global fallbacks are applied, so a
// failure on a router field means neither the router nor global carried a
// value.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		messages = append(messages, fmt.Sprintf("%s: %s", fe.Namespace(), validationMessage(fe)))
	}
	return fmt.Errorf("invalid configuration:\n  %s", strings.Join(messages, "\n  "))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
