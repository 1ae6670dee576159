package model

// Flag bits set by the measurement service on SourceRecord.Flags, above the
// low bits reserved for algorithm-defined shape flags.
const (
	FlagShapeFailed = 1 << 8
	FlagFluxFailed  = 1 << 9
)
