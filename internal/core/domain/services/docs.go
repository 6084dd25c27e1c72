// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the marketplace system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - OrderSplitter: A domain service for dividing an order into per-seller
//     sub-orders while preserving monetary totals
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
