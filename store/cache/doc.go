// Package cache layers go-repository-cache over login lookups and credential
// reads.
package cache
