/*
Package x holds the extensions the tranche daemon is assembled from.

Extensions implement common functionality (Handler, Decorator,
Initializer) and are combined together in the application stack.
This package itself only defines how an extension learns who signed
the transaction it processes.
*/
package x
