package file

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/text/encoding/unicode"

	"github.com/webtools-dev/tsdiag/internal/protocol"
)

// DiskStore reads documents from the filesystem, with in-memory overlays
// for open/unsaved editor content layered on top.
//
// Source files are decoded with a UTF-8 BOM-aware transformer: editors on
// Windows routinely save TypeScript/JavaScript files with a leading byte
// order mark, and leaving it in place would shift every UTF-16 column by
// one on the first line of the document.
type DiskStore struct {
	mu       sync.RWMutex
	overlays map[protocol.DocumentURI]*overlay
}

type overlay struct {
	content []byte
	version int32
}

// NewDiskStore returns an empty DiskStore.
func NewDiskStore() *DiskStore {
	return &DiskStore{overlays: make(map[protocol.DocumentURI]*overlay)}
}

// SetOverlay records in-memory content for specifier, as reported by the
// editor's didOpen/didChange notifications. A nil content clears the
// overlay, reverting to on-disk content.
func (s *DiskStore) SetOverlay(specifier protocol.DocumentURI, content []byte, version int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if content == nil {
		delete(s.overlays, specifier)
		return
	}
	s.overlays[specifier] = &overlay{content: content, version: version}
}

// ReadFile implements Store.
func (s *DiskStore) ReadFile(ctx context.Context, specifier protocol.DocumentURI) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	ov, hasOverlay := s.overlays[specifier]
	s.mu.RUnlock()

	if hasOverlay {
		return &handle{
			specifier: specifier,
			content:   ov.content,
			version:   ov.version,
			onDisk:    false,
			kind:      KindForPath(specifier.Path()),
		}, nil
	}

	path := specifier.Path()
	if path == "" {
		return &handle{specifier: specifier, readErr: fmt.Errorf("not a file:// specifier: %s", specifier)}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return &handle{specifier: specifier, readErr: err, kind: KindForPath(path)}, nil
	}

	content, err := stripBOM(raw)
	if err != nil {
		content = raw
	}

	return &handle{
		specifier: specifier,
		content:   content,
		onDisk:    true,
		kind:      KindForPath(path),
	}, nil
}

// stripBOM decodes content as UTF-8, removing a leading byte order mark if
// present; non-BOM content passes through unchanged.
func stripBOM(content []byte) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return decoder.Bytes(content)
}

type handle struct {
	specifier protocol.DocumentURI
	content   []byte
	version   int32
	onDisk    bool
	kind      Kind
	readErr   error
}

func (h *handle) Specifier() protocol.DocumentURI { return h.specifier }

func (h *handle) Identity() Identity {
	if h.readErr != nil {
		return Identity{Specifier: h.specifier}
	}
	return Identity{Specifier: h.specifier, Hash: HashOf(h.content)}
}

func (h *handle) SameContentsOnDisk() bool { return h.onDisk }

func (h *handle) Version() int32 { return h.version }

func (h *handle) Kind() Kind { return h.kind }

func (h *handle) Content() ([]byte, error) {
	if h.readErr != nil {
		return nil, h.readErr
	}
	return h.content, nil
}
