/*
Package errors implements custom error interfaces for the ledger runtime.

Error declarations should be generic and cover broad categories of
failures. Each root error carries a unique ABCI code, so every failure
surfaced by a handler can be reported to the client without leaking
internal details.

Use Register to declare a root error in an extension and Wrap (or Wrapf) to
add context while keeping the root error detectable with Is:

	var ErrNoTokens = errors.Register(1100, "no tokens")

	if balance == 0 {
		return errors.Wrapf(ErrNoTokens, "wallet %s", addr)
	}
*/
package errors
