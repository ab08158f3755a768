// Package media defines the job descriptor: the identity derived from a
// media file's relative path, the media kind, the encoding parameter
// snapshot, and the optional episodic sort key. Descriptors are pure data;
// all lifecycle state lives in the store.
package media
