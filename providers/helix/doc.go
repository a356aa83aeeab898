// Package helix binds the Helix REST resources (users, channels, streams,
// tags, videos and search) to the authenticated query pipeline.
package helix
