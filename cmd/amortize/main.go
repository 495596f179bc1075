package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/iwvelando/loan-amortization/internal/config"
	"github.com/iwvelando/loan-amortization/internal/logging"
	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/format"
	"github.com/iwvelando/loan-amortization/pkg/output"
	"github.com/iwvelando/loan-amortization/pkg/validation"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	locale := flag.String("locale", "", "locale override for currency and labels (en-US, fr-FR)")
	principal := flag.Float64("principal", 0, "loan principal override")
	rate := flag.Float64("rate", 0, "annual interest rate override, in percent")
	years := flag.Int("years", 0, "loan duration override, in years")
	frequency := flag.String("frequency", "", "repayment frequency override: monthly, quarterly, semiannual, annual")
	constant := flag.Bool("constant", false, "repay a constant share of principal each period")
	flag.Parse()

	conf, err := loadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Only flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "principal":
			conf.Loan.Principal = *principal
		case "rate":
			conf.Loan.Rate = *rate
		case "years":
			conf.Loan.DurationYears = *years
		case "frequency":
			conf.Loan.Frequency = *frequency
		case "constant":
			conf.Loan.ConstantAmortization = *constant
		case "locale":
			conf.Output.Locale = *locale
		case "output-format":
			conf.Output.Format = *outputFormatFlag
		}
	})

	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if err := render(os.Stdout, logger, conf, outputFormat); err != nil {
		var inputErr *amortization.InvalidInputError
		if errors.As(err, &inputErr) {
			logger.Fatal("invalid loan parameters",
				zap.String("op", "main"),
				zap.String("field", inputErr.Field),
				zap.String("constraint", inputErr.Constraint),
				zap.Error(err),
			)
		}
		logger.Fatal("failed to render amortization schedule",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// render computes the configured schedule and writes it to w in the given
// output format.
func render(w io.Writer, logger *zap.Logger, conf *config.Configuration, outputFormat string) error {
	result, err := amortization.NewScheduleGenerator(logger).Generate(conf.Loan.ToRequest())
	if err != nil {
		return err
	}

	loc := format.ResolveLocale(conf.Output.Locale)
	if loc.Tag == language.French {
		result = amortization.Relabel(result, amortization.FrenchLabels)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		return output.PrettyFormat(w, result, conf.Output.Locale)
	case constants.OutputFormatCSV:
		return output.CsvFormat(w, result)
	case constants.OutputFormatJSON:
		return output.JSONFormat(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// loadConfiguration reads the config file, falling back to the built-in
// defaults when the file does not exist.
func loadConfiguration(path string) (*config.Configuration, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config.DefaultConfiguration(), nil
	}
	return config.LoadConfiguration(path)
}
