// Package arch models the immutable, read-only-after-load description of a
// neutral-atom trap architecture: storage zones, entanglement-site pairs,
// the AOD descriptor and the Rydberg/atom-distance parameters (spec.md §3).
package arch

import (
	"errors"
	"fmt"
)

// ZoneKind distinguishes storage sites (idle parking) from entanglement
// sites (Rydberg-capable, paired).
type ZoneKind int

const (
	Storage ZoneKind = iota
	Entanglement
)

// SLM is one spatial-light-modulator region: a rectangular grid of fixed
// trap sites with a base location and a per-site separation.
type SLM struct {
	ID       uint32
	Zone     ZoneKind
	ZoneID   uint32 // index into Architecture.StorageZones / EntanglementZones
	Rows     int
	Cols     int
	BaseX    float64
	BaseY    float64
	DX       float64
	DY       float64
	PairWith uint32 // for entanglement SLMs: the SLM id of the paired "other side"; 0 if none (storage)
	HasPair  bool
}

// Site identifies one trap location: which SLM it belongs to, and its
// (row, col) within that SLM's grid.
type Site struct {
	SLMID uint32
	Row   int
	Col   int
}

// Coords returns the exact (x, y) coordinate of a site: base + (col*dx, row*dy).
func (a *Architecture) Coords(s Site) (x, y float64, err error) {
	slm, ok := a.slmByID[s.SLMID]
	if !ok {
		return 0, 0, fmt.Errorf("arch: unknown slm id %d", s.SLMID)
	}
	if s.Row < 0 || s.Row >= slm.Rows || s.Col < 0 || s.Col >= slm.Cols {
		return 0, 0, fmt.Errorf("arch: site %+v out of bounds for slm %d (rows=%d cols=%d)", s, s.SLMID, slm.Rows, slm.Cols)
	}
	return slm.BaseX + float64(s.Col)*slm.DX, slm.BaseY + float64(s.Row)*slm.DY, nil
}

// Rectangle is an axis-aligned [min, max] box, used for entangling-zone and
// no-interaction-radius style ranges.
type Rectangle struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether (x, y) lies within the (inclusive) rectangle.
func (r Rectangle) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// AOD describes the acousto-optic deflector's parallelism limits: the
// maximum number of rows and columns it can hold in one activation.
type AOD struct {
	ID       uint32
	MaxRows  int
	MaxCols  int
	DX, DY   float64
}

// Architecture is the immutable, process-wide hardware description built
// once from an architecture JSON file and shared by reference
// thereafter (spec.md §5 "shared resource policy").
type Architecture struct {
	Name string

	StorageSLMs      []SLM
	EntanglementSLMs []SLM // stored as bound pairs, consecutive (2i, 2i+1)

	AODs []AOD

	RydbergRanges []Rectangle

	MinAtomDistance   float64
	InteractionRadius float64
	NoInteractionRadius float64

	slmByID map[uint32]*SLM
}

// ErrInvalidArchitecture is returned when the architecture description is
// malformed or internally inconsistent (spec.md §7).
type ErrInvalidArchitecture struct{ Reason string }

func (e ErrInvalidArchitecture) Error() string {
	return "arch: invalid architecture: " + e.Reason
}

// New validates and freezes an Architecture built from its constituent
// parts. Callers normally reach this indirectly through na/archio.
func New(name string, storage, entanglement []SLM, aods []AOD, rydberg []Rectangle, minAtomDistance, interactionRadius, noInteractionRadius float64) (*Architecture, error) {
	if len(entanglement)%2 != 0 {
		return nil, ErrInvalidArchitecture{Reason: "entanglement SLMs must come in pairs"}
	}
	a := &Architecture{
		Name:                name,
		StorageSLMs:         storage,
		EntanglementSLMs:    entanglement,
		AODs:                aods,
		RydbergRanges:       rydberg,
		MinAtomDistance:     minAtomDistance,
		InteractionRadius:   interactionRadius,
		NoInteractionRadius: noInteractionRadius,
		slmByID:             make(map[uint32]*SLM),
	}
	for i := range a.StorageSLMs {
		a.StorageSLMs[i].Zone = Storage
		s := &a.StorageSLMs[i]
		if _, dup := a.slmByID[s.ID]; dup {
			return nil, ErrInvalidArchitecture{Reason: fmt.Sprintf("duplicate slm id %d", s.ID)}
		}
		a.slmByID[s.ID] = s
	}
	for i := 0; i < len(a.EntanglementSLMs); i += 2 {
		a.EntanglementSLMs[i].Zone = Entanglement
		a.EntanglementSLMs[i+1].Zone = Entanglement
		a.EntanglementSLMs[i].PairWith = a.EntanglementSLMs[i+1].ID
		a.EntanglementSLMs[i].HasPair = true
		a.EntanglementSLMs[i+1].PairWith = a.EntanglementSLMs[i].ID
		a.EntanglementSLMs[i+1].HasPair = true
		for _, s := range a.EntanglementSLMs[i : i+2] {
			if _, dup := a.slmByID[s.ID]; dup {
				return nil, ErrInvalidArchitecture{Reason: fmt.Sprintf("duplicate slm id %d", s.ID)}
			}
		}
		a.slmByID[a.EntanglementSLMs[i].ID] = &a.EntanglementSLMs[i]
		a.slmByID[a.EntanglementSLMs[i+1].ID] = &a.EntanglementSLMs[i+1]
	}
	if len(a.StorageSLMs) == 0 && len(a.EntanglementSLMs) == 0 {
		return nil, ErrInvalidArchitecture{Reason: "architecture has no sites"}
	}
	return a, nil
}

var errNoSites = errors.New("arch: zone has no sites")

// AllStorageSites enumerates every site across every storage SLM.
func (a *Architecture) AllStorageSites() []Site {
	return a.sitesOf(a.StorageSLMs)
}

// AllEntanglementSites enumerates every site across every entanglement SLM
// (both sides of every pair).
func (a *Architecture) AllEntanglementSites() []Site {
	return a.sitesOf(a.EntanglementSLMs)
}

func (a *Architecture) sitesOf(slms []SLM) []Site {
	var out []Site
	for _, slm := range slms {
		for r := 0; r < slm.Rows; r++ {
			for c := 0; c < slm.Cols; c++ {
				out = append(out, Site{SLMID: slm.ID, Row: r, Col: c})
			}
		}
	}
	return out
}

// Distance returns the squared Euclidean distance between two sites, per
// spec.md §3's distance query contract.
func (a *Architecture) Distance(s1, s2 Site) (float64, error) {
	x1, y1, err := a.Coords(s1)
	if err != nil {
		return 0, err
	}
	x2, y2, err := a.Coords(s2)
	if err != nil {
		return 0, err
	}
	dx, dy := x1-x2, y1-y2
	return dx*dx + dy*dy, nil
}

// NearestStorageSite returns the free storage site closest (by squared
// Euclidean distance) to the given site, restricted to candidates not in
// occupied. Returns errNoSites if every storage site is occupied.
func (a *Architecture) NearestStorageSite(from Site, occupied map[Site]bool) (Site, error) {
	return a.nearestFrom(from, a.AllStorageSites(), occupied)
}

func (a *Architecture) nearestFrom(from Site, candidates []Site, occupied map[Site]bool) (Site, error) {
	x0, y0, err := a.Coords(from)
	if err != nil {
		return Site{}, err
	}
	best := Site{}
	bestD := -1.0
	found := false
	for _, c := range candidates {
		if occupied != nil && occupied[c] {
			continue
		}
		x, y, err := a.Coords(c)
		if err != nil {
			continue
		}
		dx, dy := x-x0, y-y0
		d := dx*dx + dy*dy
		if !found || d < bestD {
			bestD = d
			best = c
			found = true
		}
	}
	if !found {
		return Site{}, errNoSites
	}
	return best, nil
}

// OtherEntanglementSite returns the paired site on the opposite SLM of an
// entanglement-zone pair, at the same (row, col).
func (a *Architecture) OtherEntanglementSite(s Site) (Site, error) {
	slm, ok := a.slmByID[s.SLMID]
	if !ok || slm.Zone != Entanglement || !slm.HasPair {
		return Site{}, fmt.Errorf("arch: site %+v is not a paired entanglement site", s)
	}
	return Site{SLMID: slm.PairWith, Row: s.Row, Col: s.Col}, nil
}

// NearestEntanglementSite returns the entanglement-site pair nearest to
// the midpoint of site1 and site2.
func (a *Architecture) NearestEntanglementSite(site1, site2 Site, occupied map[Site]bool) (Site, Site, error) {
	x1, y1, err := a.Coords(site1)
	if err != nil {
		return Site{}, Site{}, err
	}
	x2, y2, err := a.Coords(site2)
	if err != nil {
		return Site{}, Site{}, err
	}
	mx, my := (x1+x2)/2, (y1+y2)/2

	var bestA, bestB Site
	bestD := -1.0
	found := false
	for i := 0; i < len(a.EntanglementSLMs); i += 2 {
		slmA, slmB := a.EntanglementSLMs[i], a.EntanglementSLMs[i+1]
		for r := 0; r < slmA.Rows; r++ {
			for c := 0; c < slmA.Cols; c++ {
				sa := Site{SLMID: slmA.ID, Row: r, Col: c}
				sb := Site{SLMID: slmB.ID, Row: r, Col: c}
				if occupied != nil && (occupied[sa] || occupied[sb]) {
					continue
				}
				ax, ay, _ := a.Coords(sa)
				bx, by, _ := a.Coords(sb)
				cx, cy := (ax+bx)/2, (ay+by)/2
				dx, dy := cx-mx, cy-my
				d := dx*dx + dy*dy
				if !found || d < bestD {
					bestD = d
					bestA, bestB = sa, sb
					found = true
				}
			}
		}
	}
	if !found {
		return Site{}, Site{}, errNoSites
	}
	return bestA, bestB, nil
}

// SLMByID returns the SLM descriptor for the given id.
func (a *Architecture) SLMByID(id uint32) (SLM, bool) {
	s, ok := a.slmByID[id]
	if !ok {
		return SLM{}, false
	}
	return *s, true
}

// InEntanglingRange reports whether (x, y) falls inside any configured
// Rydberg/entangling range rectangle.
func (a *Architecture) InEntanglingRange(x, y float64) bool {
	for _, r := range a.RydbergRanges {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}
