package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/sentinelkb/sentinel/core"
)

// Key prefixes for different data types
const (
	captureRecordPrefix = "caprec"
	captureDatePrefix   = "caprecd"
	captureStatusPrefix = "caprecs"
	captureIDSeq        = "caprecseq"
	insightRecordPrefix = "insrec"
	insightTagPrefix    = "insrect"
	tagRecordPrefix     = "tagrec"
)

// makeCaptureKey generates a key for a capture by ID.
func makeCaptureKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", captureRecordPrefix, id))
}

// makeCaptureDateKey generates a composite key for the capture date index.
// Format: prefix:timestamp:id
func makeCaptureDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := captureDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialCaptureDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialCaptureDateKey(timestamp time.Time) []byte {
	prefix := captureDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeCaptureStatusKey generates a composite key for the status index.
// Format: prefix:status:id
func makeCaptureStatusKey(status core.CaptureStatus, id core.ID) []byte {
	prefix := captureStatusPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 9 // 1 byte for status + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	buf[offset] = byte(status)
	offset++
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialCaptureStatusKey generates a partial key for status queries.
// Format: prefix:status
func makePartialCaptureStatusKey(status core.CaptureStatus) []byte {
	prefix := captureStatusPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 1 // 1 byte for status
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	buf[offset] = byte(status)
	return buf
}

// makeInsightKey generates a key for an insight by its capture ID.
func makeInsightKey(captureID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", insightRecordPrefix, captureID))
}

// makeInsightTagKey generates a composite key for the tag index.
// Format: prefix:tagID:captureID
func makeInsightTagKey(tagID, captureID core.ID) []byte {
	prefix := insightTagPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for tagID + 8 bytes for captureID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(tagID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(captureID))
	return buf
}

// makePartialInsightTagKey generates a partial key for tag queries.
// Format: prefix:tagID
func makePartialInsightTagKey(tagID core.ID) []byte {
	prefix := insightTagPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for tagID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(tagID))
	return buf
}

// makeTagKey generates a key for a tag by ID.
func makeTagKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", tagRecordPrefix, id))
}

// makeCheckpointKey generates a key for processor checkpoints.
func makeCheckpointKey(processorType string) []byte {
	return []byte(fmt.Sprintf("%s:chkpt", processorType))
}
