package arena

// SizeInUse returns the total number of bytes currently carved from the arena,
// including internal fragmentation due to alignment.
func (a *Arena) SizeInUse() int {
	sum := 0
	for _, c := range a.chunks {
		sum += int(c.offset)
	}
	return sum
}

// NumChunks returns the number of chunks currently held by the arena.
func (a *Arena) NumChunks() int {
	return len(a.chunks)
}

// Capacity returns the total capacity (in bytes) of all chunks in the arena.
func (a *Arena) Capacity() int {
	return a.reserved
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// ChunkSize returns the default chunk size used by this arena.
func (a *Arena) ChunkSize() int {
	return a.chunkSize
}

// Limit returns the byte limit of the arena, 0 if unbounded.
func (a *Arena) Limit() int {
	return a.limit
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() Metrics {
	return Metrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		NumChunks:   a.NumChunks(),
		ChunkSize:   a.ChunkSize(),
		Limit:       a.Limit(),
		Utilization: a.Utilization(),
	}
}

// Metrics contains statistical information about an arena.
type Metrics struct {
	SizeInUse   int     // Bytes currently carved
	Capacity    int     // Total chunk bytes
	NumChunks   int     // Number of chunks
	ChunkSize   int     // Default chunk size
	Limit       int     // Byte limit, 0 if unbounded
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}
