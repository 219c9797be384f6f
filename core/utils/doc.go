// Package utils provides common utility functions for the duelbot application.
// It includes helper functions for type conversion of weakly typed feed and
// API payload values, and other shared logic that doesn't fit into
// domain-specific packages.
package utils
