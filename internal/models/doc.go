// Package models defines the core domain models for gymdesk.
//
// # Ownership
//
// The renewal and ledger subsystem owns:
//   - Group: a membership-sharing group with one leader
//   - Payment: one renewal's billing record, shared by every renewed participant
//   - Transaction: an immutable ledger entry applied against a Payment
//
// It references, but does not own:
//   - Client: a gym client; renewals write its plan fields, groups write its GroupID
//   - MembershipPlan: read-only catalog entry
//
// # Design Principles
//
//  1. **Derived state is never accepted from callers**: Payment.Status is always
//     recomputed from PaidAmount and TotalAmount.
//  2. **IDs, not pointers**: relationships use ID strings, as rows do.
//  3. **Append-only ledger**: transactions are inserted, never updated.
package models
