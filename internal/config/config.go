// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/housing-advisor/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for housing-advisor.
type Configuration struct {
	Loan       LoanConfig       `mapstructure:"loan" yaml:"loan"`
	Property   PropertyConfig   `mapstructure:"property" yaml:"property"`
	Investment InvestmentConfig `mapstructure:"investment" yaml:"investment"`
	Household  HouseholdConfig  `mapstructure:"household" yaml:"household"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging,omitempty"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output,omitempty"`
}

// LoanConfig describes the mortgage.
type LoanConfig struct {
	Amount         float64 `mapstructure:"amount" yaml:"amount"`
	InterestRate   float64 `mapstructure:"interestRate" yaml:"interestRate"` // percent per year
	TermYears      int     `mapstructure:"termYears" yaml:"termYears"`
	MaintenanceFee float64 `mapstructure:"maintenanceFee" yaml:"maintenanceFee"` // per month
}

// PropertyConfig describes the purchased home.
type PropertyConfig struct {
	Value float64 `mapstructure:"value" yaml:"value"`
}

// InvestmentConfig describes the savings plan shared by both paths.
type InvestmentConfig struct {
	StartingCapital     float64 `mapstructure:"startingCapital" yaml:"startingCapital"`
	MonthlyContribution float64 `mapstructure:"monthlyContribution" yaml:"monthlyContribution"`
	AnnualReturn        float64 `mapstructure:"annualReturn" yaml:"annualReturn"` // percent per year
	ActiveYears         int     `mapstructure:"activeYears" yaml:"activeYears"`
	CurrentAge          int     `mapstructure:"currentAge" yaml:"currentAge"`
}

// HouseholdConfig holds the monthly rent alternative and income.
type HouseholdConfig struct {
	MonthlyRent float64 `mapstructure:"monthlyRent" yaml:"monthlyRent"`
	NetSalary   float64 `mapstructure:"netSalary" yaml:"netSalary"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv
}

// newViper returns a viper instance with defaults.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	setDefaults(v)
	return v
}

// newEnvViper adds environment overrides to newViper, e.g.
// HOUSING_LOAN_AMOUNT overrides loan.amount.
func newEnvViper() *viper.Viper {
	v := newViper()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("loan.amount", 300000.0)
	v.SetDefault("loan.interestRate", 3.0)
	v.SetDefault("loan.termYears", 25)
	v.SetDefault("loan.maintenanceFee", 100.0)
	v.SetDefault("property.value", 300000.0)
	v.SetDefault("investment.startingCapital", 0.0)
	v.SetDefault("investment.monthlyContribution", 500.0)
	v.SetDefault("investment.annualReturn", 5.0)
	v.SetDefault("investment.activeYears", 25)
	v.SetDefault("investment.currentAge", 30)
	v.SetDefault("household.monthlyRent", 1200.0)
	v.SetDefault("household.netSalary", 3000.0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("output.format", constants.OutputFormatPretty)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Keys missing from the file keep their defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newEnvViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r. Only the
// document and the defaults apply; environment overrides do not, so the
// same document always yields the same configuration.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}

	return decode(v)
}

// Default returns the default configuration with environment overrides applied.
func Default() (*Configuration, error) {
	return decode(newEnvViper())
}
