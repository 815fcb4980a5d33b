// Package kernel provides shared value objects used across all domain
// aggregates: UUID identifiers and Money amounts.
//
// Both types are immutable and validated at construction, following the
// Domain-Driven Design practice of keeping primitive obsession out of the
// aggregates themselves.
package kernel
