// File: services/privacy/classifier.go
package privacy

// Classification buckets a field name into exactly one handling rule.
type Classification int

const (
	// Passthrough fields are returned unchanged.
	Passthrough Classification = iota
	// Forbidden fields are stripped from client responses entirely.
	Forbidden
	// Masked fields are replaced with a partially redacted display form.
	Masked
	// Encrypted fields are wrapped in an EncryptedPayload before leaving the
	// trusted path.
	Encrypted
)

// forbiddenFields never reach an external tenant, at any nesting depth.
var forbiddenFields = map[string]struct{}{
	"external_call_id":  {},
	"provider_call_id":  {},
	"provider_agent_id": {},
	"provider_number_id": {},
	"provider_cost":     {},
	"system_prompt":     {},
	"internal_note":     {},
	"internal_notes":    {},
	"admin_notes":       {},
	"api_key":           {},
	"webhook_secret":    {},
	"password_hash":     {},
	"fcm_token":         {},
	"razorpay_order_id": {},
	"payment_id":        {},
}

// maskedFields are shown to external tenants in redacted display form.
var maskedFields = map[string]struct{}{
	"phone":          {},
	"phone_number":   {},
	"customer_phone": {},
	"from_number":    {},
	"to_number":      {},
	"email":          {},
	"full_name":      {},
	"contact_name":   {},
}

// encryptedFields carry sensitive free-form content and are encrypted at rest
// and in transit for every role.
var encryptedFields = map[string]struct{}{
	"transcript": {},
	"summary":    {},
	"notes":      {},
	"call_notes": {},
}

// displayCompanionFields get a masked "<field>_display" sibling on the
// privileged (admin/engineer) path instead of being stripped.
var displayCompanionFields = map[string]struct{}{
	"external_call_id":  {},
	"provider_agent_id": {},
	"provider_number_id": {},
	"razorpay_order_id": {},
	"payment_id":        {},
}

// Classify returns the handling rule for a field name. The three sets are
// disjoint; membership is checked in order of severity.
func Classify(field string) Classification {
	if _, ok := forbiddenFields[field]; ok {
		return Forbidden
	}
	if _, ok := maskedFields[field]; ok {
		return Masked
	}
	if _, ok := encryptedFields[field]; ok {
		return Encrypted
	}
	return Passthrough
}
