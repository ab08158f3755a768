// Package discovery walks a media tree and produces candidate files for
// enqueueing. It filters out the store's own state directories, already
// disabled sources, and anything matched by gitignore-style .plexifyignore
// files found in the tree.
package discovery
