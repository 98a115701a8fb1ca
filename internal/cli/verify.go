package cli

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"github.com/spf13/cobra"
)

//go:embed schema.cue
var schemaCUE string

// SchemaError is a single scenario schema violation.
type SchemaError struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// VerifyResult holds schema validation results.
type VerifyResult struct {
	Valid  bool          `json:"valid"`
	Files  int           `json:"files"`
	Errors []SchemaError `json:"errors,omitempty"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <scenarios-dir>",
		Short: "Validate scenario files without running them",
		Long: `Validate scenario YAML files against the scenario schema.

Performs schema validation only - no store is touched and no steps run.
Faster than 'test' for catching malformed scenarios during editing.

Exit codes:
  0 - All scenario files are valid
  1 - One or more files violate the schema
  2 - Command error (directory not found, no files)

Examples:
  yieldpilot verify ./scenarios
  yieldpilot verify ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runVerify(opts *RootOptions, scenariosDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if info, err := os.Stat(scenariosDir); err != nil || !info.IsDir() {
		formatter.Error(ErrCodeGeneric, fmt.Sprintf("scenarios directory not found: %s", scenariosDir), nil)
		return NewExitError(ExitCommandError, "scenarios directory not found")
	}

	paths, err := filepath.Glob(filepath.Join(scenariosDir, "*.yaml"))
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list scenarios", err)
	}
	if len(paths) == 0 {
		formatter.Error(ErrCodeGeneric, fmt.Sprintf("no scenario files in %s", scenariosDir), nil)
		return NewExitError(ExitCommandError, "no scenario files")
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return WrapExitError(ExitCommandError, "internal schema error", err)
	}
	scenarioDef := schema.LookupPath(cue.ParsePath("#Scenario"))

	result := VerifyResult{Valid: true, Files: len(paths)}
	for _, path := range paths {
		formatter.VerboseLog("verifying %s", path)
		for _, msg := range verifyFile(ctx, scenarioDef, path) {
			result.Errors = append(result.Errors, SchemaError{File: filepath.Base(path), Message: msg})
			result.Valid = false
		}
	}

	if err := outputVerifyResult(formatter, result); err != nil {
		return err
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d schema violations", len(result.Errors)))
	}
	return nil
}

// verifyFile checks one scenario YAML file against the schema definition.
func verifyFile(ctx *cue.Context, scenarioDef cue.Value, path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("failed to read: %v", err)}
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return []string{fmt.Sprintf("failed to parse YAML: %v", err)}
	}

	value := ctx.BuildFile(file)
	if err := value.Err(); err != nil {
		return []string{err.Error()}
	}

	unified := scenarioDef.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cueErrors(err)
	}

	return nil
}

// cueErrors flattens a CUE error list into message strings.
func cueErrors(err error) []string {
	var msgs []string
	for _, e := range cueerrors.Errors(err) {
		msgs = append(msgs, e.Error())
	}
	if len(msgs) == 0 {
		msgs = []string{err.Error()}
	}
	return msgs
}

// outputVerifyResult renders the result in the configured format.
func outputVerifyResult(formatter *OutputFormatter, result VerifyResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, e := range result.Errors {
		fmt.Fprintf(formatter.Writer, "%s: %s\n", e.File, e.Message)
	}
	if result.Valid {
		fmt.Fprintf(formatter.Writer, "%d scenario files valid\n", result.Files)
	} else {
		fmt.Fprintf(formatter.Writer, "\n%d violations in %d files\n", len(result.Errors), result.Files)
	}
	return nil
}
