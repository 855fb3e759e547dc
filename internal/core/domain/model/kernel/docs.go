// Package kernel provides the value objects shared by the restaurant domain model.
//
// The package includes:
//   - UUID: identifiers for orders, lines, payments, menu items and staff members
//   - Money: non-negative fixed-point amounts backed by shopspring/decimal
//   - BusinessDate: the calendar day used for price lookup and order numbering
//
// All types are immutable values and safe for concurrent use.
package kernel
