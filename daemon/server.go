package daemon

import (
	"context"
	"io"
	"net"

	"github.com/op/go-logging"
	uuid "github.com/satori/go.uuid"

	"github.com/sceneproto/scene/codec"
	"github.com/sceneproto/scene/codec/text"
	"github.com/sceneproto/scene/scene"
)

// Server owns the listener, the shared Root, and the two
// protocol-internal tasks (updater, event). It exposes WithRoot and
// SubmitEvents as the seam a window/render loop (out of scope) drives
// from its own goroutine, playing the part of the UI task.
type Server struct {
	addr string
	log  *logging.Logger

	root     *Root
	tagNames *scene.TagNames

	events        chan []scene.Event
	writerHandoff chan io.Writer
}

// NewServer builds a Server listening on addr once Run is called, with
// root initialised to initial.
func NewServer(addr string, log *logging.Logger, initial scene.Node) *Server {
	return &Server{
		addr:          addr,
		log:           log,
		root:          NewRoot(initial),
		tagNames:      scene.NewTagNames(128),
		events:        make(chan []scene.Event, 16),
		writerHandoff: make(chan io.Writer, 1),
	}
}

// WithRoot gives fn locked read access to the current root node, for a
// draw loop to use without racing the updater.
func (s *Server) WithRoot(fn func(scene.Node)) {
	s.root.WithLock(fn)
}

// SubmitEvents hands a batch of observed input events to the event
// task. A full events channel drops the batch rather than blocking the
// caller's render loop, which must never block on the socket.
func (s *Server) SubmitEvents(batch []scene.Event) {
	if len(batch) == 0 {
		return
	}
	select {
	case s.events <- batch:
	default:
		s.log.Warning("event channel full, dropping batch of", len(batch), "events")
	}
}

// Run starts the updater and event tasks and blocks until ctx is
// cancelled or the listener fails to bind.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	done := make(chan struct{})
	go func() {
		s.runEventTask(ctx)
		close(done)
	}()

	err = s.runUpdater(ctx, ln)
	<-done
	return err
}

// runUpdater is the updater task: accepts one client at a time, hands
// its writable half to the event task, and patches the root for each
// top-level group until the connection closes or a decode error forces
// a reset.
func (s *Server) runUpdater(ctx context.Context, ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Error("accept:", err)
			continue
		}

		id := uuid.NewV4()
		s.log.Notice("connection", id, "from", conn.RemoteAddr())

		select {
		case s.writerHandoff <- conn:
		case <-ctx.Done():
			conn.Close()
			return ctx.Err()
		}

		s.handleConnection(conn, id)
	}
}

func (s *Server) handleConnection(conn net.Conn, id uuid.UUID) {
	defer conn.Close()
	reader := codec.New(text.NewReader(conn))

	for {
		started, err := reader.ExpectStartOrEnd()
		if err != nil {
			s.log.Error("connection", id, "decode error:", err)
			s.root.Reset(scene.NewNode(scene.TagGroup))
			return
		}
		if !started {
			s.log.Notice("connection", id, "closed")
			return
		}

		tag, err := reader.ExpectTag()
		if err != nil {
			s.log.Error("connection", id, "decode error:", err)
			s.root.Reset(scene.NewNode(scene.TagGroup))
			return
		}

		patchErr := s.root.patch(func(n scene.Node) (scene.Node, error) {
			return scene.Patch(reader, tag, n)
		})
		if patchErr != nil {
			s.log.Error("connection", id, "patch error on", s.tagNames.Name(tag), ":", patchErr)
			s.root.Reset(scene.NewNode(scene.TagGroup))
			return
		}
	}
}

// runEventTask is the event task: it relays event batches to whatever
// connection most recently handed off its writer, opportunistically
// swapping in a newer handle, and drops the handle on a write failure
// rather than blocking further batches.
func (s *Server) runEventTask(ctx context.Context) {
	var w io.Writer
	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-s.events:
			if !ok {
				return
			}
			select {
			case nw := <-s.writerHandoff:
				w = nw
			default:
			}
			if w == nil {
				continue
			}
			if err := scene.EncodeEvents(w, batch); err != nil {
				s.log.Warning("event write failed, dropping handle:", err)
				w = nil
			}
		}
	}
}
