// Package config defines the data structures related to configuration and
// includes functions for loading the config and converting it into a loan request.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/mathutil"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. AMORTIZE_LOAN_PRINCIPAL.
const EnvPrefix = "AMORTIZE"

// Configuration holds all configuration for a schedule run.
type Configuration struct {
	Loan    LoanConfig    `yaml:"loan"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// LoanConfig holds the raw loan inputs as a person writes them. Rate is a
// percentage.
type LoanConfig struct {
	Principal            float64 `yaml:"principal"`
	Rate                 float64 `yaml:"rate"`
	DurationYears        int     `yaml:"durationYears"`
	Frequency            string  `yaml:"frequency"`
	ConstantAmortization bool    `yaml:"constantAmortization"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
	Locale string `yaml:"locale,omitempty"` // BCP 47 tag, e.g. en-US, fr-FR
}

// DefaultConfiguration returns the configuration used when no file is present.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Loan: DefaultLoanConfig(),
		Output: OutputConfig{
			Format: constants.OutputFormatPretty,
			Locale: constants.DefaultLocale,
		},
	}
}

// DefaultLoanConfig returns the loan shown when nothing else is specified.
func DefaultLoanConfig() LoanConfig {
	return LoanConfig{
		Principal:     constants.DefaultPrincipal,
		Rate:          constants.DefaultRatePercent,
		DurationYears: constants.DefaultDurationYears,
		Frequency:     constants.DefaultFrequency,
	}
}

// ToRequest converts the raw loan inputs into an engine request. The rate is
// divided by 100 and the frequency normalized; no validation happens here.
func (l LoanConfig) ToRequest() amortization.LoanRequest {
	return amortization.LoanRequest{
		Principal:            l.Principal,
		AnnualRate:           mathutil.PercentToFraction(l.Rate),
		DurationYears:        l.DurationYears,
		Frequency:            amortization.ParseFrequency(l.Frequency),
		ConstantAmortization: l.ConstantAmortization,
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	defaults := DefaultConfiguration()
	v.SetDefault("loan.principal", defaults.Loan.Principal)
	v.SetDefault("loan.rate", defaults.Loan.Rate)
	v.SetDefault("loan.durationYears", defaults.Loan.DurationYears)
	v.SetDefault("loan.frequency", defaults.Loan.Frequency)
	v.SetDefault("loan.constantAmortization", defaults.Loan.ConstantAmortization)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.locale", defaults.Output.Locale)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}
