package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/yieldpilot/yieldpilot/internal/identity"
	"github.com/yieldpilot/yieldpilot/internal/record"
	"github.com/yieldpilot/yieldpilot/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation rejected (unauthorized, occupied slot, failed scenarios)
	ExitCommandError = 2 // Command error (invalid paths, database not found, etc.)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ErrCodeGeneric is the error code for failures without a domain code.
const ErrCodeGeneric = "E_GENERIC"

// errorCode maps a domain error to its CLI error code.
func errorCode(err error) string {
	switch {
	case record.IsUnauthorized(err):
		return string(record.ErrCodeUnauthorized)
	case store.IsSlotOccupied(err):
		return string(store.ErrCodeSlotOccupied)
	case store.IsRecordNotFound(err):
		return string(store.ErrCodeRecordNotFound)
	case identity.IsUnknownSigner(err):
		return string(identity.ErrCodeUnknownSigner)
	default:
		return ErrCodeGeneric
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// newFormatter builds the formatter for a command invocation.
func newFormatter(opts *RootOptions, out, errOut io.Writer) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    out,
		ErrWriter: errOut, // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // UNAUTHORIZED, SLOT_OCCUPIED, ...
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// RecordView is the CLI-facing shape of a yield record.
type RecordView struct {
	SlotID    string `json:"slot_id"`
	Authority string `json:"authority"`
	Protocol  uint8  `json:"protocol"`
	APYBps    uint16 `json:"apy_bps"`
}

// newRecordView builds a view from a record and its slot.
func newRecordView(slotID string, rec *record.YieldRecord) RecordView {
	return RecordView{
		SlotID:    record.CanonicalSlotID(slotID),
		Authority: rec.Authority.String(),
		Protocol:  rec.CurrentProtocol,
		APYBps:    rec.CurrentAPYBps,
	}
}

// String renders the record for text output.
func (v RecordView) String() string {
	return fmt.Sprintf("slot:      %s\nauthority: %s\nprotocol:  %d\napy_bps:   %d",
		v.SlotID, v.Authority, v.Protocol, v.APYBps)
}
