package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncLoginSuccess is a no-op.
func (n *NoopRecorder) IncLoginSuccess() {}

// IncLoginFailure is a no-op.
func (n *NoopRecorder) IncLoginFailure() {}

// IncProductCreated is a no-op.
func (n *NoopRecorder) IncProductCreated() {}

// IncProductListCacheHit is a no-op.
func (n *NoopRecorder) IncProductListCacheHit() {}

// IncProductListCacheMiss is a no-op.
func (n *NoopRecorder) IncProductListCacheMiss() {}

// IncUploadStored is a no-op.
func (n *NoopRecorder) IncUploadStored() {}

// IncUploadRejected is a no-op.
func (n *NoopRecorder) IncUploadRejected() {}
