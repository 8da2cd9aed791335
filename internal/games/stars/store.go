package stars

import (
	"math/rand"

	"github.com/vovakirdan/star-catcher/internal/canvas"
	"github.com/vovakirdan/star-catcher/internal/config"
	"github.com/vovakirdan/star-catcher/internal/core"
)

// FallingStar is an active star: its polygon on the surface and the
// number of pixels it falls per tick.
type FallingStar struct {
	Shape canvas.Handle
	Speed int
}

// Store keeps the active stars in spawn order.
type Store struct {
	surface *canvas.Surface
	rng     *rand.Rand
	cfg     config.StarSpawnConfig
	stars   []FallingStar
}

// NewStore creates an empty store drawing onto s.
func NewStore(s *canvas.Surface, rng *rand.Rand, cfg config.StarSpawnConfig) *Store {
	return &Store{surface: s, rng: rng, cfg: cfg}
}

// Spawn adds a star at a random position above the field with a random
// speed and color.
func (st *Store) Spawn() FallingStar {
	x := randInt(st.rng, st.cfg.MinX, st.cfg.MaxX)
	y := randInt(st.rng, st.cfg.MinY, st.cfg.MaxY)
	speed := randInt(st.rng, st.cfg.MinSpeed, st.cfg.MaxSpeed)
	return st.SpawnAt(float64(x), float64(y), speed, RandomBrightColor(st.rng))
}

// SpawnAt adds a star centered at (x, y).
func (st *Store) SpawnAt(x, y float64, speed int, c core.RGB) FallingStar {
	fs := FallingStar{
		Shape: st.surface.CreatePolygon(StarPolygon(x, y), canvas.Solid(c), TagStar),
		Speed: speed,
	}
	st.stars = append(st.stars, fs)
	return fs
}

// Remove drops the star drawn by shape and deletes the shape.
// It reports whether the star was active.
func (st *Store) Remove(shape canvas.Handle) bool {
	for i, fs := range st.stars {
		if fs.Shape == shape {
			st.stars = append(st.stars[:i], st.stars[i+1:]...)
			st.surface.Delete(shape) //nolint:errcheck
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the active stars, safe to iterate while the
// store changes.
func (st *Store) Snapshot() []FallingStar {
	return append([]FallingStar(nil), st.stars...)
}

// Len returns the number of active stars.
func (st *Store) Len() int {
	return len(st.stars)
}

// Bounds returns the bounding box of a star's polygon.
func (st *Store) Bounds(fs FallingStar) (canvas.Box, error) {
	return st.surface.Bounds(fs.Shape)
}
