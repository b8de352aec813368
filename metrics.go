package arraylist

import "unsafe"

// ListMetrics contains statistical information about a list.
type ListMetrics struct {
	Count         int     // Live elements
	Capacity      int     // Allocated slots
	ElemSize      int     // Bytes per slot
	BytesReserved int     // Capacity * ElemSize
	Utilization   float64 // Count / Capacity (0.0-1.0)
	Grows         int     // Successful reallocations since New
}

// Metrics returns a snapshot of list statistics.
func (l *List[T]) Metrics() ListMetrics {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	m := ListMetrics{
		Count:         l.count,
		Capacity:      len(l.data),
		ElemSize:      elemSize,
		BytesReserved: len(l.data) * elemSize,
		Grows:         l.grows,
	}
	if m.Capacity > 0 {
		m.Utilization = float64(m.Count) / float64(m.Capacity)
	}
	return m
}
