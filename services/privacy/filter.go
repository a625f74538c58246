// File: services/privacy/filter.go
package privacy

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role determines which filtering rules apply to a response.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEngineer Role = "engineer"
	RoleClient   Role = "client"
)

// Privileged reports whether the role bypasses forbidden-field stripping and
// masking. Sensitive content is encrypted for every role.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleEngineer
}

// Filter produces tenant-safe projections of arbitrary JSON-like values.
type Filter struct {
	cipher *Cipher
}

// NewFilter wires the filter to the process-wide cipher.
func NewFilter(cipher *Cipher) *Filter {
	return &Filter{cipher: cipher}
}

// Sanitize walks an arbitrary nested object/array and applies the
// classification rules for the given role. The input is never mutated; a new
// structure is returned. Any encryption error aborts the whole walk so no
// partially sanitized object can escape.
func (f *Filter) Sanitize(value interface{}, role Role) (interface{}, error) {
	switch v := value.(type) {
	case map[string]interface{}:
		return f.sanitizeObject(v, role)
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, elem := range v {
			s, err := f.Sanitize(elem, role)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		// Scalars and nulls pass through unchanged.
		return v, nil
	}
}

func (f *Filter) sanitizeObject(obj map[string]interface{}, role Role) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(obj))
	for key, val := range obj {
		switch Classify(key) {
		case Forbidden:
			if !role.Privileged() {
				continue
			}
			out[key] = val
			if _, ok := displayCompanionFields[key]; ok {
				out[key+"_display"] = MaskID(stringify(val))
			}
		case Masked:
			if !role.Privileged() {
				out[key] = maskValueForField(key, val)
				continue
			}
			out[key] = val
		case Encrypted:
			if val == nil {
				out[key] = nil
				continue
			}
			if stored, already := StoredPayload(val); already {
				out[key] = stored
				continue
			}
			payload, err := f.cipher.Encrypt(stringify(val))
			if err != nil {
				return nil, fmt.Errorf("failed to encrypt field %q: %w", key, err)
			}
			out[key] = payload
		default:
			sanitized, err := f.Sanitize(val, role)
			if err != nil {
				return nil, err
			}
			out[key] = sanitized
		}
	}
	return out, nil
}

// maskValueForField picks the masking function matching the field's shape.
// Null leaves pass through unchanged; anything else is masked from its string
// form so masking never fails.
func maskValueForField(field string, value interface{}) interface{} {
	if value == nil {
		return nil
	}
	s := stringify(value)
	switch {
	case strings.Contains(field, "phone") || strings.Contains(field, "number"):
		return MaskPhone(s)
	case strings.Contains(field, "email"):
		return MaskEmail(s)
	case strings.Contains(field, "name"):
		return MaskFullName(s)
	default:
		return MaskID(s)
	}
}

// stringify renders a value the way it would appear in a JSON document, so
// encryption of non-string leaves is deterministic.
func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
