// Package integration contains the Integration bounded context.
// This context bridges marketplace orders to external commerce channels and
// reconciles channel-side state back into the marketplace's model.
//
// Key concepts:
//   - NormalizedOrder: the marketplace-side canonical order, independent of any channel
//   - MerchantConfig: per-request merchant toggles merged over fixed defaults
//   - OrderChannel: port interface for a commerce channel (Shopify)
//   - FulfillmentMap / CancellationMap: per-line reconciliation results
//   - RefundBatch: refund events extracted from the channel over a date range
//   - Transport / SchemaValidator: collaborators consumed as black boxes
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package integration
