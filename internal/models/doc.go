// Package models defines the core domain models for Splitkaro.
//
// # Models
//
//   - User: a registered account, identified by a stable opaque ID
//   - Group: a named collection of members who share expenses
//   - Membership: a user's role and join info inside one group
//   - Transaction: a single expense or settlement recorded in a group
//
// Balances are intentionally NOT a model: they are a derived view,
// recomputed from a group's current transaction set by the ledger
// package every time they are requested. There is no stored balance
// with its own lifecycle.
//
// # Design Principles
//
// 1. **ID strings over pointers**: relationships use ID strings to avoid
// circular references between models.
// 2. **Provisional members**: people invited by phone number before they
// register are members too, keyed by their phone number and carrying a
// display-name snapshot taken at invite time.
// 3. **Currency-agnostic amounts**: amounts are plain float64 values with
// no currency attached; conversion is out of scope.
package models
