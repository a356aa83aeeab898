// Package providers groups the Twitch API families. helix and kraken each
// wrap a client.Client configured for their family and expose typed service
// bindings; devkit holds the scripted transport used by their tests.
package providers
