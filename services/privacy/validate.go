// File: services/privacy/validate.go
package privacy

import "fmt"

// ValidationResult reports forbidden field names still present in a value.
type ValidationResult struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

// ValidateSanitized recursively scans a value and records the dotted path of
// every forbidden field name it finds. Intended as an output contract check.
func ValidateSanitized(value interface{}) ValidationResult {
	violations := scan(value, "")
	return ValidationResult{Valid: len(violations) == 0, Violations: violations}
}

func scan(value interface{}, path string) []string {
	var violations []string
	switch v := value.(type) {
	case map[string]interface{}:
		for key, val := range v {
			childPath := key
			if path != "" {
				childPath = path + "." + key
			}
			if _, ok := forbiddenFields[key]; ok {
				violations = append(violations, childPath)
			}
			violations = append(violations, scan(val, childPath)...)
		}
	case []interface{}:
		for i, elem := range v {
			violations = append(violations, scan(elem, fmt.Sprintf("%s.%d", path, i))...)
		}
	}
	return violations
}
