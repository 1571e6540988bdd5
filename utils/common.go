package utils

const (
	// NODETOL is the relative tolerance under which a geometric quantity is taken as zero
	NODETOL = 1.e-12
)
