package gene

import "errors"

// Sentinel compilation/validation failures, named after the reference
// engine's termination codes (spec.md §4.4).
var (
	// ErrNoStart is returned when [BaseFirst,BaseFirst+3) is not the ATG
	// start codon. STGT_COMPILATION.
	ErrNoStart = errors.New("gene: compilation failed, no start codon (STGT_COMPILATION)")

	// ErrPrematureStop is returned when an in-frame STOP acid appears
	// before the final codon. STGT_COMPILATION.
	ErrPrematureStop = errors.New("gene: compilation failed, premature stop (STGT_COMPILATION)")

	// ErrNoTerminalStop is returned when the gene's span does not end on
	// a STOP codon. STGT_COMPILATION.
	ErrNoTerminalStop = errors.New("gene: compilation failed, missing terminal stop (STGT_COMPILATION)")

	// ErrNotWholeCodons is returned when the gene's span is not a whole
	// number of codons.
	ErrNotWholeCodons = errors.New("gene: compilation failed, span is not a whole number of codons")

	// ErrStrokeCountMismatch is returned when the gene's non-mark stroke
	// count does not equal the Han's stroke count.
	// STGT_VALIDATION / STGR_STROKES.
	ErrStrokeCountMismatch = errors.New("gene: validation failed, stroke count does not match Han (STGT_VALIDATION/STGR_STROKES)")

	// ErrStrokeSweepMismatch is returned when the Han and gene point
	// sequences for a stroke exhaust at different times during the
	// deviation sweep. STGR_STROKE.
	ErrStrokeSweepMismatch = errors.New("gene: stroke deviation sweep mismatch (STGR_STROKE)")
)
