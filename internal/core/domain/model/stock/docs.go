// Package stock implements seller inventory and the settlement ledger.
//
// Stock is keyed by (seller, item name). Sellers create entries that wait for
// admin approval; admins create pre-approved entries on a seller's behalf. A
// seller editing an entry sends it back for approval, an admin edit keeps the
// current approval. Quantity never goes below zero.
//
// Settlement records the outcome of decrementing stock for one delivered
// order: settled, or skipped with a reason. There is at most one settlement
// per order, which is what makes delivery settlement idempotent.
package stock
