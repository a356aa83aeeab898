// Package core contains the client domain contracts shared by the query
// pipeline, the authenticator and the service bindings. Lower-level adapters
// depend on this package; core must not depend on transport or provider
// packages.
package core
