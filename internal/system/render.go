package system

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/l1jgo/ecscore/internal/component"
	"github.com/l1jgo/ecscore/internal/core/ecs"
	coresys "github.com/l1jgo/ecscore/internal/core/system"
	"go.uber.org/zap"
)

// VisibleTag marks entities that RenderSystem draws.
const VisibleTag = "visible"

// RenderSystem draws every visible entity with a Sprite and a Position into a
// fixed character grid and writes one frame per draw pass. The draw batch is
// the visible tag query itself; membership changes only flag it for a Z sort.
type RenderSystem[C any] struct {
	world  *ecs.World[C]
	stores *component.Stores
	out    *bufio.Writer
	log    *zap.Logger

	width, height int
	grid          [][]rune
	batch         *ecs.TagQuery
	dirty         bool
	frame         int
	drawn         int
	unsubscribe   []func()
}

func NewRenderSystem[C any](world *ecs.World[C], stores *component.Stores, out io.Writer, width, height int) *RenderSystem[C] {
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
	}
	return &RenderSystem[C]{
		world:  world,
		stores: stores,
		out:    bufio.NewWriter(out),
		log:    world.Logger().Named("render"),
		width:  width,
		height: height,
		grid:   grid,
	}
}

func (s *RenderSystem[C]) Name() string         { return "render" }
func (s *RenderSystem[C]) Phase() coresys.Phase { return coresys.PhaseDraw }

func (s *RenderSystem[C]) Initialize(_ coresys.Host[C], _ C) {
	q, err := s.world.TagQuery(VisibleTag)
	if err != nil {
		panic(fmt.Errorf("render system: %w", err))
	}
	s.batch = q
	s.dirty = q.Len() > 0
	s.unsubscribe = append(s.unsubscribe,
		q.EntityAdded.Subscribe(func(*ecs.Entity) { s.dirty = true }),
		q.EntityRemoved.Subscribe(func(*ecs.Entity) { s.dirty = true }),
	)
}

// Close detaches the system from its query.
func (s *RenderSystem[C]) Close() {
	for _, fn := range s.unsubscribe {
		fn()
	}
	s.unsubscribe = nil
}

func (s *RenderSystem[C]) PreUpdate(_ C, _ time.Duration) {
	for _, row := range s.grid {
		for x := range row {
			row[x] = '.'
		}
	}
	s.drawn = 0
}

func (s *RenderSystem[C]) Update(_ time.Duration) {
	if s.batch == nil {
		return
	}
	var members []*ecs.Entity
	if s.dirty {
		members = s.batch.Entities(s.byZ)
		s.dirty = false
	} else {
		members = s.batch.Entities(nil)
	}

	for _, e := range members {
		sp, ok := s.stores.Sprites.Get(e.ID())
		if !ok {
			continue
		}
		pos, ok := s.stores.Positions.Get(e.ID())
		if !ok {
			continue
		}
		x, y := int(math.Floor(pos.X())), int(math.Floor(pos.Y()))
		if x < 0 || y < 0 || x >= s.width || y >= s.height {
			continue
		}
		s.grid[y][x] = sp.Glyph
		s.drawn++
	}
}

func (s *RenderSystem[C]) PostUpdate(_ C, _ time.Duration) {
	s.frame++
	fmt.Fprintf(s.out, "frame %d (%d drawn)\n", s.frame, s.drawn)
	for _, row := range s.grid {
		s.out.WriteString(string(row))
		s.out.WriteByte('\n')
	}
	if err := s.out.Flush(); err != nil {
		s.log.Warn("frame write failed", zap.Int("frame", s.frame), zap.Error(err))
	}
}

// Frames returns the number of frames written.
func (s *RenderSystem[C]) Frames() int { return s.frame }

func (s *RenderSystem[C]) byZ(a, b *ecs.Entity) int {
	return cmp.Compare(s.z(a), s.z(b))
}

func (s *RenderSystem[C]) z(e *ecs.Entity) int {
	if sp, ok := s.stores.Sprites.Get(e.ID()); ok {
		return sp.Z
	}
	return 0
}
