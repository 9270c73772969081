/*
Package weavetest provides mocks and helpers for testing extensions: an
Authenticator that reports preset signers, counting handlers and
decorators, bare transactions and fresh keys.
*/
package weavetest
