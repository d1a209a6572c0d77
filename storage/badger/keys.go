package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/policymatch/core"
)

// Key prefixes for different data types
const (
	policyRecordPrefix = "polrec:"
	policyIDSeq        = "polseq"
	profilePrefix      = "profile:"
	embeddingPrefix    = "embvec:"
	buildInfoName      = "search"
)

// makePolicyKey generates a key for a policy record.
// Format: prefix:id, with the ID in BigEndian so iteration follows insertion order.
func makePolicyKey(id core.ID) []byte {
	prefixBytes := []byte(policyRecordPrefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeProfileKey generates a key for a user profile.
func makeProfileKey(userID string) []byte {
	return []byte(profilePrefix + userID)
}

// makeEmbeddingModelPrefix generates the shared prefix of every cached vector of a model.
// Format: prefix:model\x00
func makeEmbeddingModelPrefix(model string) []byte {
	return []byte(embeddingPrefix + model + "\x00")
}

// makeEmbeddingKey generates a composite key for a cached vector.
// Format: prefix:model\x00contentID
func makeEmbeddingKey(model, text string) []byte {
	prefixBytes := makeEmbeddingModelPrefix(model)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(text)))
	return buf
}

// makeBuildInfoKey generates a key for build metadata.
func makeBuildInfoKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:build", name))
}
