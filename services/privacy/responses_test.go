package privacy

import (
	"testing"
	"time"

	"github.com/theaitel/loginaitel-sub003/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestClientCallResponseAllowList(t *testing.T) {
	f := newTestFilter(t)

	started := time.Now().Add(-2 * time.Minute)
	call := &models.Call{
		ID:              "call-1",
		ClientID:        "client-1",
		CampaignID:      "camp-1",
		LeadID:          "lead-1",
		CustomerPhone:   "9876543210",
		ExternalCallID:  "prov-abc",
		ProviderCost:    0.42,
		Status:          models.CallCompleted,
		DurationSeconds: 95,
		Transcript:      "agent: hello\ncustomer: hi",
		StartedAt:       &started,
	}

	resp, err := f.ClientCallResponse(call)
	require.NoError(t, err)

	assert.NotContains(t, resp, "external_call_id")
	assert.NotContains(t, resp, "provider_cost")
	assert.NotContains(t, resp, "client_id")
	assert.Equal(t, "******3210", resp["customer_phone"])

	payload, ok := resp["transcript"].(EncryptedPayload)
	require.True(t, ok)
	assert.Equal(t, AlgAESGCM, payload.Alg)

	assert.True(t, ValidateSanitized(resp).Valid)
}

func TestClientCallResponseKeepsStoredPayload(t *testing.T) {
	f := newTestFilter(t)

	stored, err := f.cipher.Encrypt("agent: hello")
	require.NoError(t, err)

	// Mongo decodes the interface{} transcript back as a generic document,
	// not as an EncryptedPayload, so go through a real BSON round trip.
	raw, err := bson.Marshal(&models.Call{ID: "call-2", Transcript: stored})
	require.NoError(t, err)
	var loaded models.Call
	require.NoError(t, bson.Unmarshal(raw, &loaded))

	resp, err := f.ClientCallResponse(&loaded)
	require.NoError(t, err)

	payload, ok := resp["transcript"].(EncryptedPayload)
	require.True(t, ok, "served transcript must be a single encrypted payload")
	plaintext, err := f.cipher.Decrypt(payload)
	require.NoError(t, err)
	assert.Equal(t, "agent: hello", plaintext, "stored payload must not be double-encrypted")
	assert.Nil(t, resp["summary"])
}

func TestClientLeadResponseKeepsStoredNotes(t *testing.T) {
	f := newTestFilter(t)

	stored, err := f.cipher.Encrypt("asked for a callback after 6pm")
	require.NoError(t, err)

	raw, err := bson.Marshal(&models.Lead{ID: "lead-11", Stage: models.LeadNew, Notes: stored})
	require.NoError(t, err)
	var loaded models.Lead
	require.NoError(t, bson.Unmarshal(raw, &loaded))

	resp, err := f.ClientLeadResponse(&loaded, true)
	require.NoError(t, err)

	payload, ok := resp["notes"].(EncryptedPayload)
	require.True(t, ok)
	plaintext, err := f.cipher.Decrypt(payload)
	require.NoError(t, err)
	assert.Equal(t, "asked for a callback after 6pm", plaintext)
}

func TestClientAgentResponseHidesProviderFields(t *testing.T) {
	f := newTestFilter(t)

	agent := &models.Agent{
		ID:              "agent-1",
		Name:            "Riya",
		Language:        "hi-IN",
		Voice:           "female-1",
		SystemPrompt:    "You are a persuasive sales agent...",
		ProviderAgentID: "prov-agent-9",
	}

	resp := f.ClientAgentResponse(agent)
	assert.NotContains(t, resp, "system_prompt")
	assert.NotContains(t, resp, "provider_agent_id")
	assert.Equal(t, "Riya", resp["name"])
}

func TestClientLeadResponseNonOwnerStub(t *testing.T) {
	f := newTestFilter(t)

	lead := &models.Lead{
		ID:       "lead-9",
		ClientID: "someone-else",
		FullName: "Jane Q Doe",
		Phone:    "9876543210",
		Email:    "jane.doe@example.com",
		Stage:    models.LeadInterested,
		Notes:    "private note",
	}

	resp, err := f.ClientLeadResponse(lead, false)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"id": "lead-9", "stage": models.LeadInterested}, resp)
}

func TestClientLeadResponseOwner(t *testing.T) {
	f := newTestFilter(t)

	lead := &models.Lead{
		ID:       "lead-10",
		FullName: "Jane Q Doe",
		Phone:    "9876543210",
		Email:    "jane.doe@example.com",
		Stage:    models.LeadNew,
		Notes:    "asked for a callback after 6pm",
	}

	resp, err := f.ClientLeadResponse(lead, true)
	require.NoError(t, err)

	assert.Equal(t, "J.Q.D.", resp["full_name"])
	assert.Equal(t, "******3210", resp["phone"])
	assert.Equal(t, "j***@example.com", resp["email"])
	_, ok := resp["notes"].(EncryptedPayload)
	assert.True(t, ok)
}

func TestClientOrderResponseHidesGatewayIdentifiers(t *testing.T) {
	f := newTestFilter(t)

	order := &models.CreditOrder{
		ID:              "ord-1",
		ClientID:        "client-1",
		Kind:            "credits",
		Credits:         100,
		AmountPaise:     50000,
		Currency:        "INR",
		RazorpayOrderID: "order_rzp_123",
		PaymentID:       "pay_rzp_456",
		Status:          "paid",
	}

	history := f.ClientOrderResponse(order, false)
	assert.NotContains(t, history, "razorpay_order_id")
	assert.NotContains(t, history, "payment_id")
	assert.NotContains(t, history, "client_id")
	assert.True(t, ValidateSanitized(history).Valid)

	// Checkout needs the gateway order id to open payment; the payment id
	// still never leaves.
	checkout := f.ClientOrderResponse(order, true)
	assert.Equal(t, "order_rzp_123", checkout["razorpay_order_id"])
	assert.NotContains(t, checkout, "payment_id")
}

func TestClientCampaignResponseNonOwnerForbidden(t *testing.T) {
	f := newTestFilter(t)

	campaign := &models.Campaign{ID: "camp-1", Name: "Diwali push", InternalNote: "VIP tenant"}
	resp := f.ClientCampaignResponse(campaign, false)
	assert.Equal(t, map[string]interface{}{"error": "Forbidden"}, resp)

	resp = f.ClientCampaignResponse(campaign, true)
	assert.Equal(t, "Diwali push", resp["name"])
	assert.NotContains(t, resp, "internal_note")
}
