// Package daemon runs the protocol's three cooperating tasks: an
// updater task that accepts one TCP client at a time and patches
// a shared root scene node, an event task that opportunistically
// forwards observed input events back over the current connection, and
// a thin seam (WithRoot/SubmitEvents) for whatever owns the actual
// window and render loop — both out of scope here — to plug into.
package daemon

import (
	"sync"

	"github.com/sceneproto/scene/scene"
)

// Root is the shared scene-graph cell: a process-wide node guarded by a
// mutex, held briefly by readers (the UI task, for one draw) and by the
// updater (for one patch). There is no nested locking.
type Root struct {
	mu   sync.Mutex
	node scene.Node
}

// NewRoot creates a Root holding initial.
func NewRoot(initial scene.Node) *Root {
	return &Root{node: initial}
}

// WithLock calls fn with the current root node held under the lock,
// exactly as long as fn takes to run. Used by a draw loop to read the
// tree without letting the updater mutate it mid-frame.
func (r *Root) WithLock(fn func(scene.Node)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.node)
}

// Reset replaces the root with a fresh default node, used after any
// protocol error.
func (r *Root) Reset(initial scene.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.node = initial
}

// patch runs fn (ordinarily scene.Patch bound to one incoming group)
// against the current root under the lock and stores its result. On
// error the root is left untouched here — the caller is responsible for
// resetting it, since a decode error also means the connection is about
// to be closed.
func (r *Root) patch(fn func(scene.Node) (scene.Node, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next, err := fn(r.node)
	if err != nil {
		return err
	}
	r.node = next
	return nil
}
