package config

import (
	"os"
	"strings"
)

// LeaseSubmitLockEnabled serializes lease create/edit per business via a
// Redis lock, so two concurrent submissions cannot interleave their
// sub-entity upserts.
//
// Set via env:
// - LEASE_SUBMIT_LOCK=true
func LeaseSubmitLockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("LEASE_SUBMIT_LOCK")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// ThumbnailsEnabled controls whether image uploads also get a resized
// thumbnail object stored next to the original.
//
// Set via env:
// - UPLOAD_THUMBNAILS=true
func ThumbnailsEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("UPLOAD_THUMBNAILS")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
