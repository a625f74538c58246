// File: services/privacy/responses.go
package privacy

import "github.com/theaitel/loginaitel-sub003/models"

// The builders below assemble fixed allow-lists for the entity types exposed
// to tenants. They share the masking and encryption primitives with the
// generic filter; the allow-list is the outer contract, the filter the safety
// net behind it.

// ClientCallResponse shapes a call record for tenant consumption. Transcript
// and summary stay encrypted; the customer phone is masked; provider-side
// identifiers are omitted entirely.
func (f *Filter) ClientCallResponse(call *models.Call) (map[string]interface{}, error) {
	transcript, err := f.encryptedCopy(call.Transcript)
	if err != nil {
		return nil, err
	}
	summary, err := f.encryptedCopy(call.Summary)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":               call.ID,
		"campaign_id":      call.CampaignID,
		"lead_id":          call.LeadID,
		"status":           call.Status,
		"outcome":          call.Outcome,
		"duration_seconds": call.DurationSeconds,
		"customer_phone":   MaskPhone(call.CustomerPhone),
		"started_at":       call.StartedAt,
		"ended_at":         call.EndedAt,
		"transcript":       transcript,
		"summary":          summary,
		"created_at":       call.CreatedAt,
	}, nil
}

// ClientAgentResponse exposes only the descriptive agent fields. The system
// prompt and the provider-side agent ID never leave the trusted path.
func (f *Filter) ClientAgentResponse(agent *models.Agent) map[string]interface{} {
	return map[string]interface{}{
		"id":          agent.ID,
		"name":        agent.Name,
		"description": agent.Description,
		"language":    agent.Language,
		"voice":       agent.Voice,
		"created_at":  agent.CreatedAt,
	}
}

// ClientLeadResponse shapes a lead for tenant consumption. Non-owners get a
// minimal stub regardless of what the record contains — deny by default for
// cross-tenant access.
func (f *Filter) ClientLeadResponse(lead *models.Lead, isOwner bool) (map[string]interface{}, error) {
	if !isOwner {
		return map[string]interface{}{
			"id":    lead.ID,
			"stage": lead.Stage,
		}, nil
	}

	notes, err := f.encryptedCopy(lead.Notes)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":          lead.ID,
		"campaign_id": lead.CampaignID,
		"full_name":   MaskFullName(lead.FullName),
		"phone":       MaskPhone(lead.Phone),
		"email":       MaskEmail(lead.Email),
		"stage":       lead.Stage,
		"assigned_to": lead.AssignedTo,
		"callback_at": lead.CallbackAt,
		"notes":       notes,
		"created_at":  lead.CreatedAt,
	}, nil
}

// ClientCampaignResponse shapes a campaign for tenant consumption. Non-owners
// get an explicit refusal rather than any content.
func (f *Filter) ClientCampaignResponse(campaign *models.Campaign, isOwner bool) map[string]interface{} {
	if !isOwner {
		return map[string]interface{}{"error": "Forbidden"}
	}

	return map[string]interface{}{
		"id":           campaign.ID,
		"name":         campaign.Name,
		"description":  campaign.Description,
		"agent_id":     campaign.AgentID,
		"number_id":    campaign.NumberID,
		"status":       campaign.Status,
		"lead_count":   campaign.LeadCount,
		"calls_placed": campaign.CallsPlaced,
		"created_at":   campaign.CreatedAt,
	}
}

// ClientOrderResponse shapes a payment order for tenant consumption. The
// gateway payment id never leaves the trusted path. The gateway order id is
// exposed only on the create-order response, where the frontend must hand it
// to the checkout widget; order history does without it.
func (f *Filter) ClientOrderResponse(order *models.CreditOrder, forCheckout bool) map[string]interface{} {
	resp := map[string]interface{}{
		"id":           order.ID,
		"kind":         order.Kind,
		"amount_paise": order.AmountPaise,
		"currency":     order.Currency,
		"status":       order.Status,
		"created_at":   order.CreatedAt,
	}
	if order.Credits > 0 {
		resp["credits"] = order.Credits
	}
	if order.TargetPlanCode != "" {
		resp["target_plan_code"] = order.TargetPlanCode
	}
	if forCheckout {
		resp["razorpay_order_id"] = order.RazorpayOrderID
	}
	return resp
}

// encryptedCopy normalizes a stored sensitive value: already-encrypted
// payloads pass through in canonical form, nil stays nil, anything else is
// encrypted now.
func (f *Filter) encryptedCopy(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	if payload, ok := StoredPayload(value); ok {
		return payload, nil
	}
	return f.cipher.Encrypt(stringify(value))
}
