package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered        uint64
	LoginSuccesses         uint64
	LoginFailures          uint64
	ProductsCreated        uint64
	ProductListCacheHits   uint64
	ProductListCacheMisses uint64
	UploadsStored          uint64
	UploadsRejected        uint64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	usersRegistered        uint64
	loginSuccesses         uint64
	loginFailures          uint64
	productsCreated        uint64
	productListCacheHits   uint64
	productListCacheMisses uint64
	uploadsStored          uint64
	uploadsRejected        uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:        atomic.LoadUint64(&m.usersRegistered),
		LoginSuccesses:         atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:          atomic.LoadUint64(&m.loginFailures),
		ProductsCreated:        atomic.LoadUint64(&m.productsCreated),
		ProductListCacheHits:   atomic.LoadUint64(&m.productListCacheHits),
		ProductListCacheMisses: atomic.LoadUint64(&m.productListCacheMisses),
		UploadsStored:          atomic.LoadUint64(&m.uploadsStored),
		UploadsRejected:        atomic.LoadUint64(&m.uploadsRejected),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncProductCreated increments the product creation counter.
func (m *InMemoryRecorder) IncProductCreated() {
	atomic.AddUint64(&m.productsCreated, 1)
}

// IncProductListCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncProductListCacheHit() {
	atomic.AddUint64(&m.productListCacheHits, 1)
}

// IncProductListCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncProductListCacheMiss() {
	atomic.AddUint64(&m.productListCacheMisses, 1)
}

// IncUploadStored increments the stored upload counter.
func (m *InMemoryRecorder) IncUploadStored() {
	atomic.AddUint64(&m.uploadsStored, 1)
}

// IncUploadRejected increments the rejected upload counter.
func (m *InMemoryRecorder) IncUploadRejected() {
	atomic.AddUint64(&m.uploadsRejected, 1)
}
