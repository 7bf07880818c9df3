// Package models defines the core domain models for the bill splitting engine.
//
// # Overview
//
// A Bill is an immutable snapshot of everything needed to allocate a shared
// bill among a set of people: line items with per-person share counts, fees,
// discounts, a tip, recorded payments, and an optional receipt total used as
// the reconciliation target.
//
// # Design Principles
//
//  1. **Snapshot semantics**: a Bill is never mutated in place. State changes
//     go through the reducer package, which clones the snapshot and returns a
//     new one. Clone is the only mutation-adjacent helper defined here.
//  2. **Shares keyed by person ID**: item and discount shares are maps from
//     person ID to an integer share count, never positional arrays. Adding or
//     removing a person can therefore never desync share data.
//  3. **Single base currency**: all amounts are stored in the bill's base
//     currency. Display conversion is a multiplication by a supplied rate and
//     happens outside the engine.
//  4. **Avoid circular references**: relationships use ID strings, not pointers.
package models
