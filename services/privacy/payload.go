// File: services/privacy/payload.go
package privacy

import "go.mongodb.org/mongo-driver/bson/primitive"

// StoredPayload reports whether a value is an encrypted payload in any of the
// shapes it takes after a round trip: the struct itself, a JSON-decoded map,
// or the ordered document Mongo produces for interface{} fields. A recognized
// payload is returned normalized so callers serve one canonical form and never
// encrypt ciphertext a second time.
func StoredPayload(value interface{}) (EncryptedPayload, bool) {
	switch v := value.(type) {
	case EncryptedPayload:
		return v, true
	case *EncryptedPayload:
		if v == nil {
			return EncryptedPayload{}, false
		}
		return *v, true
	case map[string]interface{}:
		return payloadFromMap(v)
	case primitive.M:
		return payloadFromMap(v)
	case primitive.D:
		m := make(map[string]interface{}, len(v))
		for _, elem := range v {
			m[elem.Key] = elem.Value
		}
		return payloadFromMap(m)
	default:
		return EncryptedPayload{}, false
	}
}

// payloadFromMap rebuilds the payload from a generic document. The encrypted
// marker alone decides recognition; an unexpected alg is preserved verbatim so
// Decrypt can refuse it rather than the ciphertext being re-wrapped here.
func payloadFromMap(m map[string]interface{}) (EncryptedPayload, bool) {
	enc, ok := m["encrypted"].(bool)
	if !ok || !enc {
		return EncryptedPayload{}, false
	}
	ciphertext, _ := m["ciphertext"].(string)
	iv, _ := m["iv"].(string)
	alg, _ := m["alg"].(string)
	return EncryptedPayload{Ciphertext: ciphertext, IV: iv, Encrypted: true, Alg: alg}, true
}
