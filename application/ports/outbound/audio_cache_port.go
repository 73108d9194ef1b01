package outbound

// AudioCachePort stores finished audio buffers keyed by the request's cache
// key. Entries are immutable once inserted; the store owns eviction.
type AudioCachePort interface {
	Get(key string) ([]byte, bool)
	Put(key string, audio []byte)
}
