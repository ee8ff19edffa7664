package ports

// BulkEndpoint is the consumer side of the pipeline: the USB bulk-IN
// endpoint the transfer engine feeds. Descriptor and enumeration plumbing
// are out of scope; the core only needs to reclaim descriptors.
type BulkEndpoint interface {
	// Flush discards queued transfers and reclaims USB-side descriptors.
	// Skipping this across repeated start/stop cycles exhausts the
	// descriptor pool.
	Flush() error
}
