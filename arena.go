// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import (
	"math/big"
	"reflect"
	"sync"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultArenaCapacity is the region size used when WithCapacity is not given.
const DefaultArenaCapacity = 1 << 20

// Arena is a bump Allocator over one anonymous memory region outside the
// garbage-collected heap.
//
// Only pointer-free types may live in an arena: the collector does not scan
// the region. Alloc panics with ErrPointerType for any other type and with
// ErrArenaExhausted when the region is full. Free reclaims space only for
// the most recent allocation; Reset reclaims everything at once.
type Arena struct {
	mu      sync.Mutex
	buf     []byte
	off     int
	live    int
	blocks  map[int]int // offset -> size of each live block
	closed  bool
	logger  log.Logger
	reg     prometheus.Registerer
	metrics *arenaMetrics
}

// ArenaStats is a snapshot of arena usage in bytes.
type ArenaStats struct {
	Capacity int
	Used     int
	Live     int
}

type arenaOptions struct {
	capacity int
	name     string
	logger   log.Logger
	reg      prometheus.Registerer
}

// ArenaOption configures NewArena.
type ArenaOption func(*arenaOptions)

// WithCapacity sets the region size in bytes.
func WithCapacity(n int) ArenaOption {
	return func(o *arenaOptions) { o.capacity = n }
}

// WithName sets the arena label attached to its metrics.
func WithName(name string) ArenaOption {
	return func(o *arenaOptions) { o.name = name }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l log.Logger) ArenaOption {
	return func(o *arenaOptions) { o.logger = l }
}

// WithRegisterer registers the arena metrics with reg. Arenas sharing a
// registerer need distinct names.
func WithRegisterer(reg prometheus.Registerer) ArenaOption {
	return func(o *arenaOptions) { o.reg = reg }
}

// NewArena maps a fresh region.
func NewArena(opts ...ArenaOption) (*Arena, error) {
	o := arenaOptions{
		capacity: DefaultArenaCapacity,
		name:     "default",
		logger:   log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity <= 0 {
		return nil, errors.Errorf("emplace: invalid arena capacity %d", o.capacity)
	}

	buf, err := mapRegion(o.capacity)
	if err != nil {
		return nil, errors.Wrapf(err, "emplace: map %s arena", humanize.IBytes(uint64(o.capacity)))
	}

	logger := log.With(o.logger, "arena", o.name)
	level.Debug(logger).Log("msg", "arena mapped", "capacity", humanize.IBytes(uint64(len(buf))))

	return &Arena{
		buf:     buf,
		blocks:  make(map[int]int),
		logger:  logger,
		reg:     o.reg,
		metrics: newArenaMetrics(o.reg, o.name),
	}, nil
}

func (a *Arena) Alloc(typ reflect.Type, n int) unsafe.Pointer {
	if hasPointers(typ) {
		fatalf(ErrPointerType, "%s", typ)
	}
	if n < 0 {
		fatalf(ErrOutOfRange, "%d values of %s", n, typ)
	}
	elem := int(typ.Size())
	align := typ.Align()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		fatal(ErrArenaClosed)
	}
	if elem == 0 || n == 0 {
		return unsafe.Pointer(unsafe.SliceData(a.buf))
	}
	start := (a.off + align - 1) &^ (align - 1)
	avail := len(a.buf) - start
	if avail < 0 || n > avail/elem {
		need := humanize.BigIBytes(new(big.Int).Mul(big.NewInt(int64(elem)), big.NewInt(int64(n))))
		free := humanize.IBytes(uint64(len(a.buf) - a.off))
		level.Error(a.logger).Log("msg", "arena exhausted", "type", typ, "count", n, "need", need, "free", free)
		fatalf(ErrArenaExhausted, "need %s for %d %s, %s free of %s",
			need, n, typ, free, humanize.IBytes(uint64(len(a.buf))))
	}
	size := elem * n
	clear(a.buf[start : start+size])
	a.off = start + size
	a.live += size
	a.blocks[start] = size
	a.metrics.allocations.Inc()
	a.metrics.bytesInUse.Add(float64(size))
	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(a.buf)), start)
}

func (a *Arena) Adopt(unsafe.Pointer, reflect.Type, int) {
	a.metrics.adoptions.Inc()
}

// Free releases the accounting of the block and reclaims its space if it
// is the most recent allocation. Empty blocks and blocks the arena does not
// track, such as those discarded by Reset, are ignored.
func (a *Arena) Free(p unsafe.Pointer, typ reflect.Type, n int) {
	if typ.Size() == 0 || n <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	start := int(uintptr(p) - uintptr(unsafe.Pointer(unsafe.SliceData(a.buf))))
	size, ok := a.blocks[start]
	if !ok {
		return
	}
	delete(a.blocks, start)
	a.live -= size
	a.metrics.frees.Inc()
	a.metrics.bytesInUse.Sub(float64(size))
	if start+size == a.off {
		a.off = start
	}
}

// Reset discards every allocation. Values constructed in the arena must
// not be used afterwards; freeing them is a no-op.
func (a *Arena) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.metrics.bytesInUse.Sub(float64(a.live))
	a.off = 0
	a.live = 0
	clear(a.blocks)
}

// Stats returns the current usage.
func (a *Arena) Stats() ArenaStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ArenaStats{Capacity: len(a.buf), Used: a.off, Live: a.live}
}

// Close unmaps the region. Values constructed in the arena must not be
// used afterwards. Close is idempotent.
func (a *Arena) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	if a.live > 0 {
		level.Warn(a.logger).Log("msg", "arena closed with live allocations", "live", humanize.IBytes(uint64(a.live)))
	}
	if a.reg != nil {
		a.metrics.unregister(a.reg)
	}
	buf := a.buf
	a.buf = nil
	return errors.Wrap(unmapRegion(buf), "emplace: unmap arena")
}

// hasPointers reports whether values of t hold anything the garbage
// collector must trace.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
