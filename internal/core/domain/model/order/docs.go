// Package order provides the Order aggregate and its lifecycle rules.
//
// The package includes:
//   - Order: the aggregate root owning line items and total computation
//   - Item / ItemComplement: price-snapshot line items and their complements
//   - Payment: the single payment record taken for an order
//   - Status: the guarded state machine of the order lifecycle
//   - Mode, PaymentStatus, PaymentMethod: supporting enums
//
// Key business rules:
//   - total == subtotal + deliveryFee, subtotal == sum of item subtotals;
//     both are re-derived inside the aggregate on every item change
//   - item subtotal == (unit price + complements price) * quantity, with all
//     prices snapshotted at selection time
//   - status moves only along the transition table; delivered and cancelled
//     are terminal; enforcement is strict (invalid moves are rejected)
//   - cancellation is idempotent and records reason and timestamp; orders are
//     never hard-deleted
//   - courier assignment advances early-stage orders to waiting_motoboy and
//     never demotes an order already past it
package order
