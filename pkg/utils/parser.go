package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fyerfyer/stuckat-atpg/pkg/circuit"
)

var (
	// ErrSourceUnavailable is returned when the netlist cannot be read
	ErrSourceUnavailable = errors.New("netlist source unavailable")
	// ErrSinkUnavailable is returned when test records cannot be written
	ErrSinkUnavailable = errors.New("result sink unavailable")
)

// ReadNetlistFile reads a netlist file and builds the circuit it describes.
// The circuit is named after the file without its extension.
func ReadNetlistFile(filename string) (*circuit.Circuit, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer file.Close()

	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	c, err := circuit.ParseNetlist(name, file)
	if err != nil {
		if errors.Is(err, circuit.ErrMalformedEquation) {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return c, nil
}

// ParseFaultString splits a fault string such as "net_f/1" or "net_f/SA0"
// into the node name and a fault type name ("SA0" or "SA1" for the digit
// forms). Any other kind is returned unchanged for ParseFaultType to
// validate.
func ParseFaultString(faultStr string) (string, string, error) {
	node, kind, found := strings.Cut(strings.TrimSpace(faultStr), "/")
	if !found || node == "" || kind == "" {
		return "", "", fmt.Errorf("invalid fault string format: %s (expected: net/0 or net/1)", faultStr)
	}

	switch kind {
	case "0":
		return node, "SA0", nil
	case "1":
		return node, "SA1", nil
	default:
		return node, kind, nil
	}
}

// FormatTestRecord renders one record as
// "[A, B] = [0, 1], Z = 1"
func FormatTestRecord(inputNames []string, outputName string, r circuit.TestRecord) string {
	var builder strings.Builder

	builder.WriteString("[")
	builder.WriteString(strings.Join(inputNames, ", "))
	builder.WriteString("] = [")
	for i, v := range r.Inputs {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(bit(v))
	}
	builder.WriteString("], ")
	builder.WriteString(outputName)
	builder.WriteString(" = ")
	builder.WriteString(bit(r.Output))

	return builder.String()
}

// WriteTestRecords writes one line per record, in the order given
func WriteTestRecords(w io.Writer, inputNames []string, outputName string, records []circuit.TestRecord) error {
	writer := bufio.NewWriter(w)

	for _, r := range records {
		if _, err := writer.WriteString(FormatTestRecord(inputNames, outputName, r) + "\n"); err != nil {
			return fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}
	return nil
}

// WriteTestFile writes test records to a file, replacing its contents
func WriteTestFile(filename string, inputNames []string, outputName string, records []circuit.TestRecord) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}

	if err := WriteTestRecords(file, inputNames, outputName, records); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}
	return nil
}

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
