package format

import "encoding/json"

// ToJSON formats a value as indented JSON followed by a newline.
func ToJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
