package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/avrotype/internal/app"
	"github.com/vk/avrotype/resolver"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("avrotype", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
avrotype - Resolves Avro schema types to Go types.

Usage:
  avrotype [options] [SCHEMA_PATH...]

Arguments:
  SCHEMA_PATH
    Path to a schema file (.avsc, .json, .yaml, .yml) or a directory of them.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an .hcl config file or a directory of them.")
	nameFlag := flagSet.String("name", "", "Resolve and instantiate a single type name.")
	containerFlag := flagSet.String("container", "none", "Container for -name. Options: 'none', 'array' or 'map'.")
	servePortFlag := flagSet.Int("serve-port", 0, "Port for the HTTP resolver server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := flagSet.Args()
	if len(paths) == 0 && *nameFlag == "" {
		slog.Debug("No schema path or name provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	container, err := app.ParseContainer(strings.ToLower(*containerFlag))
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if container != resolver.None && *nameFlag == "" {
		return nil, false, &ExitError{Code: 2, Message: "-container requires -name"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SchemaPaths: paths,
		ConfigPath:  *configFlag,
		Name:        *nameFlag,
		Container:   container,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		ServePort:   *servePortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
