/*
Package utils contains the decorators every transaction passes through
before it reaches a handler: panic recovery, logging, action tagging and
the savepoint that makes a failed transaction leave no trace.
*/
package utils
