// Package kraken binds the legacy v5 REST resources. Kraken authenticates
// with "OAuth <token>" and joins list parameters with commas.
package kraken
