package output

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONPrinter prints machine-readable JSON to stdout.
type JSONPrinter struct{}

// Print renders the value as indented JSON.
func (JSONPrinter) Print(v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(payload))
	return err
}
