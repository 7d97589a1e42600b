package services

import (
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet   = "0123456789abcdefghijklmnopqrstuvwxyz"
	idRandomSize = 11
)

// IDGenerator returns a fresh identifier on each call.
type IDGenerator func() string

// NewIDGenerator returns a generator of base-36 millisecond timestamps
// followed by a random base-36 suffix.
func NewIDGenerator(now func() time.Time) IDGenerator {
	return func() string {
		return strconv.FormatInt(now().UnixMilli(), 36) + gonanoid.MustGenerate(idAlphabet, idRandomSize)
	}
}
