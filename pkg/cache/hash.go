package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of data. FileCache names its entry
// files with it and DefaultKeyer uses it for artifact keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// artifactDigest returns "artifact:<format>:<digest>", where the digest
// covers the JSON encoding of opts. Fields encode in declaration order, so
// two requests for the same maze render share a key.
func artifactDigest(opts ArtifactKeyOpts) string {
	// ArtifactKeyOpts holds only strings, ints and bools.
	data, _ := json.Marshal(opts)
	return "artifact:" + opts.Format + ":" + Hash(data)
}
