package utils

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Remarshal converts input into output through its JSON form. Strings that
// are not valid UTF-8 are carried through with U+FFFD replacements instead
// of failing the whole conversion.
func Remarshal(input interface{}, output interface{}) error {
	b, err := json.Marshal(input, jsontext.AllowInvalidUTF8(true))
	if err != nil {
		return fmt.Errorf("remarshal encode %T: %w", input, err)
	}

	err = json.Unmarshal(b, output, jsontext.AllowInvalidUTF8(true))
	if err != nil {
		return fmt.Errorf("remarshal decode %T: %w", output, err)
	}

	return nil
}
