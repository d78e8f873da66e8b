// Package naming computes target filenames: the sequential and pattern-based
// generators plus the collision resolver that keeps plans free of duplicate
// target names.
package naming
