// Package kernel contains the shared value objects of the domain model:
// UUID identifiers and non-negative Money amounts. Both are immutable, validate
// themselves on construction, and are used by every aggregate in the core.
package kernel
