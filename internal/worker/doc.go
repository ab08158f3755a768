// Package worker runs the claim-process-resolve loop. Workers coordinate
// only through the state store's directory renames: claiming is attempting
// renames over an ordered candidate list until one succeeds, and losing a
// race is a normal outcome, not an error. Shutdown is cooperative; a worker
// finishes the transcode it started before it exits.
package worker
