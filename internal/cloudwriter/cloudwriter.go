package cloudwriter

import (
	"bytes"
	"path"
	"sync"
)

// CloudWriter buffers an object and uploads it on Close.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}

// ObjectKey joins a configured prefix and a file name into an object key.
func ObjectKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// MemoryWriterFactory keeps closed objects in memory, keyed by bucket/key.
type MemoryWriterFactory struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryWriterFactory() *MemoryWriterFactory {
	return &MemoryWriterFactory{objects: make(map[string][]byte)}
}

func (f *MemoryWriterFactory) NewWriter(bucket, objectPath string) (CloudWriter, error) {
	return &memoryWriter{factory: f, key: path.Join(bucket, objectPath)}, nil
}

func (f *MemoryWriterFactory) Object(bucket, objectPath string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[path.Join(bucket, objectPath)]
	return data, ok
}

type memoryWriter struct {
	factory *MemoryWriterFactory
	key     string
	buffer  bytes.Buffer
}

func (w *memoryWriter) Write(data []byte) (int, error) {
	return w.buffer.Write(data)
}

func (w *memoryWriter) Close() error {
	w.factory.mu.Lock()
	defer w.factory.mu.Unlock()
	w.factory.objects[w.key] = append([]byte(nil), w.buffer.Bytes()...)
	return nil
}
