package privacy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func newTestFilter(t *testing.T) *Filter {
	t.Helper()
	return NewFilter(newTestCipher(t))
}

func TestClassificationSetsAreDisjoint(t *testing.T) {
	for field := range forbiddenFields {
		_, inMasked := maskedFields[field]
		_, inEncrypted := encryptedFields[field]
		assert.False(t, inMasked, "%q in both forbidden and masked", field)
		assert.False(t, inEncrypted, "%q in both forbidden and encrypted", field)
	}
	for field := range maskedFields {
		_, inEncrypted := encryptedFields[field]
		assert.False(t, inEncrypted, "%q in both masked and encrypted", field)
	}
}

func TestSanitizeClientScenario(t *testing.T) {
	f := newTestFilter(t)

	in := map[string]interface{}{
		"full_name":        "Jane Doe",
		"external_call_id": "abc-123",
		"transcript":       "hello",
	}

	out, err := f.Sanitize(in, RoleClient)
	require.NoError(t, err)
	obj := out.(map[string]interface{})

	assert.Equal(t, "J.D.", obj["full_name"])
	assert.NotContains(t, obj, "external_call_id")

	payload, ok := obj["transcript"].(EncryptedPayload)
	require.True(t, ok, "transcript must be replaced by an encrypted payload")
	assert.Equal(t, AlgAESGCM, payload.Alg)
	assert.NotEqual(t, "hello", payload.Ciphertext)

	// Input must not be mutated.
	assert.Equal(t, "Jane Doe", in["full_name"])
	assert.Contains(t, in, "external_call_id")
}

func TestSanitizeStripsForbiddenAtAnyDepth(t *testing.T) {
	f := newTestFilter(t)

	in := map[string]interface{}{
		"campaign": map[string]interface{}{
			"internal_note": "do not share",
			"calls": []interface{}{
				map[string]interface{}{
					"external_call_id": "deep-1",
					"status":           "completed",
				},
				map[string]interface{}{
					"provider_cost": 1.25,
					"nested": map[string]interface{}{
						"api_key": "sk-xyz",
					},
				},
			},
		},
	}

	out, err := f.Sanitize(in, RoleClient)
	require.NoError(t, err)

	result := ValidateSanitized(out)
	assert.True(t, result.Valid, "violations: %v", result.Violations)

	calls := out.(map[string]interface{})["campaign"].(map[string]interface{})["calls"].([]interface{})
	assert.Equal(t, "completed", calls[0].(map[string]interface{})["status"])
}

func TestSanitizePrivilegedKeepsFieldsButEncryptsContent(t *testing.T) {
	f := newTestFilter(t)

	in := map[string]interface{}{
		"full_name":        "Jane Doe",
		"external_call_id": "abc-123-def-456",
		"summary":          "interested in the premium plan",
	}

	for _, role := range []Role{RoleAdmin, RoleEngineer} {
		out, err := f.Sanitize(in, role)
		require.NoError(t, err)
		obj := out.(map[string]interface{})

		assert.Equal(t, "Jane Doe", obj["full_name"], "masking skipped for %s", role)
		assert.Equal(t, "abc-123-def-456", obj["external_call_id"])
		assert.Equal(t, "abc-123-...", obj["external_call_id_display"])

		_, ok := obj["summary"].(EncryptedPayload)
		assert.True(t, ok, "content still encrypted for %s", role)
	}
}

func TestSanitizeKeepsStoredPayloadAcrossRoundTrips(t *testing.T) {
	f := newTestFilter(t)

	stored, err := f.cipher.Encrypt("agent: hello")
	require.NoError(t, err)

	// Handlers render records through JSON before filtering, so a stored
	// payload arrives as a plain map; records straight off Mongo carry it
	// as an ordered document. Both must pass through, not be re-encrypted.
	jsonBytes, err := json.Marshal(map[string]interface{}{"transcript": stored})
	require.NoError(t, err)
	var fromJSON map[string]interface{}
	require.NoError(t, json.Unmarshal(jsonBytes, &fromJSON))

	bsonBytes, err := bson.Marshal(bson.M{"transcript": stored})
	require.NoError(t, err)
	var fromBSON map[string]interface{}
	require.NoError(t, bson.Unmarshal(bsonBytes, &fromBSON))

	for name, doc := range map[string]map[string]interface{}{"json": fromJSON, "bson": fromBSON} {
		out, err := f.Sanitize(doc, RoleAdmin)
		require.NoError(t, err, name)
		obj := out.(map[string]interface{})

		payload, ok := obj["transcript"].(EncryptedPayload)
		require.True(t, ok, "%s round trip must normalize back to a payload", name)
		plaintext, err := f.cipher.Decrypt(payload)
		require.NoError(t, err, name)
		assert.Equal(t, "agent: hello", plaintext, name)
	}
}

func TestSanitizeNullAndScalarLeaves(t *testing.T) {
	f := newTestFilter(t)

	in := map[string]interface{}{
		"phone":   nil,
		"notes":   nil,
		"credits": float64(42),
		"active":  true,
	}

	out, err := f.Sanitize(in, RoleClient)
	require.NoError(t, err)
	obj := out.(map[string]interface{})

	assert.Nil(t, obj["phone"])
	assert.Nil(t, obj["notes"])
	assert.Equal(t, float64(42), obj["credits"])
	assert.Equal(t, true, obj["active"])

	// Top-level scalars and nils pass straight through.
	got, err := f.Sanitize(nil, RoleClient)
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = f.Sanitize("plain", RoleClient)
	require.NoError(t, err)
	assert.Equal(t, "plain", got)
}

func TestSanitizeMasksByFieldShape(t *testing.T) {
	f := newTestFilter(t)

	in := map[string]interface{}{
		"customer_phone": "9876543210",
		"email":          "jane.doe@example.com",
		"contact_name":   "Jane Q Doe",
	}

	out, err := f.Sanitize(in, RoleClient)
	require.NoError(t, err)
	obj := out.(map[string]interface{})

	assert.Equal(t, "******3210", obj["customer_phone"])
	assert.Equal(t, "j***@example.com", obj["email"])
	assert.Equal(t, "J.Q.D.", obj["contact_name"])
}

func TestValidateSanitizedReportsDottedPaths(t *testing.T) {
	in := map[string]interface{}{
		"call": map[string]interface{}{
			"external_call_id": "x",
			"history": []interface{}{
				map[string]interface{}{"api_key": "y"},
			},
		},
	}

	result := ValidateSanitized(in)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Violations, "call.external_call_id")
	assert.Contains(t, result.Violations, "call.history.0.api_key")
}
