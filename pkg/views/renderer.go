package views

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/iot-manager/console/pkg/navigation"
	"github.com/iot-manager/console/pkg/routetable"
)

// BufferRenderer mounts a view by rendering it into memory. The last
// mounted entry and its markup stay available until the next mount.
type BufferRenderer struct {
	mu      sync.Mutex
	entry   routetable.Entry
	mounted bool
	buf     bytes.Buffer
}

var _ navigation.Renderer = (*BufferRenderer)(nil)

// NewBufferRenderer creates an empty renderer.
func NewBufferRenderer() *BufferRenderer {
	return &BufferRenderer{}
}

// Mount implements navigation.Renderer. The previous view is unmounted
// only if the new one renders successfully.
func (r *BufferRenderer) Mount(ctx context.Context, e routetable.Entry) error {
	var out bytes.Buffer
	if err := e.View.Render(ctx, &out); err != nil {
		return fmt.Errorf("render %s: %w", e.Path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entry = e
	r.mounted = true
	r.buf.Reset()
	r.buf.Write(out.Bytes())
	return nil
}

// Mounted returns the currently mounted entry.
func (r *BufferRenderer) Mounted() (routetable.Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entry, r.mounted
}

// HTML returns the markup of the mounted view.
func (r *BufferRenderer) HTML() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String()
}
