package media

import (
	"path"
	"strings"
)

// Identity derives the stable job key for a media file. The key is the
// slash-separated path relative to the media root with the extension
// stripped, percent-escaped so it is a single flat filesystem name. Escaping
// both the separator and the escape character keeps distinct relative paths
// distinct: "a/b" and "a%2Fb" cannot collide.
func Identity(relPath string) string {
	stem := strings.TrimSuffix(relPath, path.Ext(relPath))
	stem = strings.ReplaceAll(stem, "%", "%25")
	return strings.ReplaceAll(stem, "/", "%2F")
}

// IdentitySourceStem reverses Identity back to the extension-less relative
// path, for display purposes.
func IdentitySourceStem(identity string) string {
	stem := strings.ReplaceAll(identity, "%2F", "/")
	return strings.ReplaceAll(stem, "%25", "%")
}
