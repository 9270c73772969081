/*
Package tranche implements an escrow that pays a fixed total to an ordered
list of recipients in equal installments.

The owner funds a contract at creation. Every distribution pays the next
recipient in line total/count, truncating. Integer division leaves a
remainder that stays in custody until the owner closes the contract. Close
returns everything still held to the owner, unpaid tranches included, and
removes the contract.

Distribution may be triggered by the owner or by any address listed in the
package configuration (see Configuration). Only the owner may close.
*/
package tranche
