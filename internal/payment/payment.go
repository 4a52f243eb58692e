// Package payment wraps the hosted-checkout payment processor. The
// processor owns the actual card flow; this package only creates sessions,
// reads back what was charged, and decodes webhook events.
package payment

// EventCheckoutSessionCompleted is the only event type the storefront acts
// on. Everything else is acknowledged and ignored.
const EventCheckoutSessionCompleted = "checkout.session.completed"

type Session struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentIntent string            `json:"payment_intent"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`
}

type SessionParams struct {
	CustomerEmail string            `json:"customer_email,omitempty"`
	SuccessURL    string            `json:"success_url"`
	CancelURL     string            `json:"cancel_url"`
	Metadata      map[string]string `json:"metadata"`
	LineItems     []SessionLineItem `json:"line_items"`
}

type SessionLineItem struct {
	Name   string   `json:"name"`
	Images []string `json:"images,omitempty"`
	// UnitAmount is in minor currency units (e.g. paise), as the processor
	// requires.
	UnitAmount int64             `json:"unit_amount"`
	Quantity   int               `json:"quantity"`
	Metadata   map[string]string `json:"metadata"`
}

// LineItem is what the processor reports as actually charged for a session.
// AmountTotal is the line total in minor units, which may differ from the
// cart's view after adjustable quantities or currency rounding.
type LineItem struct {
	Name        string            `json:"name"`
	Images      []string          `json:"images,omitempty"`
	Quantity    int               `json:"quantity"`
	AmountTotal int64             `json:"amount_total"`
	Metadata    map[string]string `json:"metadata"`
}

// ProductID returns the catalog identifier embedded in the line item's
// metadata at session-creation time.
func (li LineItem) ProductID() string {
	return li.Metadata["productId"]
}

// Event is the webhook envelope delivered by the processor.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

type EventData struct {
	Object Session `json:"object"`
}
