package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// readConditions resolves a conditions argument: "-" reads stdin, text
// starting with '{' is taken inline, anything else is a file path.
func readConditions(arg string, stdin io.Reader) (json.RawMessage, error) {
	var data []byte
	var err error

	switch trimmed := bytes.TrimSpace([]byte(arg)); {
	case arg == "":
		return nil, errors.New("conditions are required")
	case arg == "-":
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading conditions from stdin: %w", err)
		}
	case len(trimmed) > 0 && trimmed[0] == '{':
		data = trimmed
	default:
		data, err = os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("reading conditions file: %w", err)
		}
	}

	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, errors.New("conditions are not valid JSON")
	}
	return json.RawMessage(data), nil
}
