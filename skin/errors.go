package skin

import "errors"

var (
	// ErrArchiveCorrupt marks an archive that cannot be opened at all.
	ErrArchiveCorrupt = errors.New("skin: archive corrupt")

	// ErrSkinInvalid marks an archive that opens but lacks the mandatory
	// skin files (main.bmp at minimum).
	ErrSkinInvalid = errors.New("skin: not a valid skin")

	// ErrSuperseded is returned by Manager.Load when a newer load
	// finished first; the superseded result is discarded unpublished.
	ErrSuperseded = errors.New("skin: load superseded")
)
