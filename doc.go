/*
Package ledger defines the interfaces of the ledger runtime that the
extensions in this repository are built against, as well as
implementations of some of the simpler components (when interfaces would
be too much overhead).

The runtime provides what a contract needs from its host: key-value
storage with cache wraps for atomic execution, authenticated signers
carried in the Context, and routing of one Msg per transaction to one
Handler. Extensions live under x/ and never perform their own I/O.
*/
package ledger
