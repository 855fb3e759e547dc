// Package order provides the Order aggregate of the restaurant point-of-sale
// system: its lines, payments, totals and lifecycle.
//
// The package includes:
//   - Order: the aggregate root owning lines and payments
//   - Line: an ordered menu item with name and price snapshots
//   - Payment: an append-only settlement record
//   - Status: the Draft -> Submitted -> Confirmed -> Paid state machine with Cancelled as a side exit
//   - Number: the day-scoped YYYYMMDD-NNNN order number
//   - Totals: subtotal, 5% tax, 10% dine-in service charge and their sum
//
// Key business rules:
//   - DineIn orders require a table number and a party size
//   - Lines change only while Draft or Submitted; totals are recomputed on every change
//   - Only Draft orders with at least one line can be submitted
//   - Payments are accepted only while Confirmed; covering the total makes the order Paid
//   - Paid orders cannot be cancelled and only Draft orders can be deleted
//
// Operations attempted from a status that does not allow them fail with
// errs.ErrInvalidState and leave the order unchanged.
package order
