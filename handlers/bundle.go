// File: handlers/bundle.go
package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Auth     *AuthHandler
	Admin    *AdminHandler
	Tenant   *TenantHandler
	Campaign *CampaignHandler
	Billing  *BillingHandler
	Calls    *CallHandler
}
