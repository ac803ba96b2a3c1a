package tuya

import (
	"errors"

	"github.com/tmarsden/feedbox/pkg/feeder"
)

var (
	// ErrBadFrame aliases the feeder sentinel so callers can match on
	// either package.
	ErrBadFrame = feeder.ErrBadFrame

	// ErrCipher indicates payload encryption or decryption failed,
	// usually because the configured local key is wrong.
	ErrCipher = errors.New("payload cipher error")

	// ErrDeviceNAK indicates the device rejected a command with a
	// non-zero return code.
	ErrDeviceNAK = errors.New("device rejected command")
)
