package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	siteID = uuid.NewString()
	seq    uint64
)

// SiteID identifies this running instance in feed messages.
func SiteID() string {
	return siteID
}

// NextSeq returns the next shape sequence number, starting at 1.
func NextSeq() uint64 {
	return atomic.AddUint64(&seq, 1)
}

// NewID returns a fresh identifier for a stroke or record.
func NewID() string {
	return uuid.NewString()
}
