// Package archio loads Architecture descriptions from the external JSON
// format and the SMT-variant CSV grid format described in spec.md §6,
// through an afero.Fs so callers can swap in an in-memory filesystem for
// tests.
package archio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kegliz/naqc/na/arch"
	"github.com/spf13/afero"
)

// jsonSLM mirrors one entry of an architecture JSON's "slms" list.
type jsonSLM struct {
	ID              uint32     `json:"id"`
	SiteSeparation  [2]float64 `json:"site_separation"`
	R               int        `json:"r"`
	C               int        `json:"c"`
	Location        [2]float64 `json:"location"`
}

type jsonZone struct {
	ZoneID    uint32    `json:"zone_id"`
	SLMs      []jsonSLM `json:"slms"`
	Offset    [2]float64 `json:"offset"`
	Dimension [2]float64 `json:"dimension"`
}

type jsonAOD struct {
	ID             uint32     `json:"id"`
	SiteSeparation [2]float64 `json:"site_separation"`
	R              int        `json:"r"`
	C              int        `json:"c"`
}

type jsonArchitecture struct {
	Name             string         `json:"name"`
	StorageZones     []jsonZone     `json:"storage_zones"`
	EntanglementZones []jsonZone    `json:"entanglement_zones"`
	AODs             []jsonAOD      `json:"aods"`
	RydbergRange     [][2][2]float64 `json:"rydberg_range"`
}

// LoadJSON parses an architecture JSON document from path on fs and
// returns a validated, immutable Architecture.
func LoadJSON(fs afero.Fs, path string) (*arch.Architecture, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("archio: open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeJSON(f)
}

// DecodeJSON parses an architecture JSON document from an arbitrary reader.
func DecodeJSON(r io.Reader) (*arch.Architecture, error) {
	var doc jsonArchitecture
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, arch.ErrInvalidArchitecture{Reason: "malformed json: " + err.Error()}
	}

	storage := slmsFromZones(doc.StorageZones)
	entanglement := slmsFromZones(doc.EntanglementZones)

	var aods []arch.AOD
	for _, a := range doc.AODs {
		aods = append(aods, arch.AOD{
			ID:      a.ID,
			MaxRows: a.R,
			MaxCols: a.C,
			DX:      a.SiteSeparation[0],
			DY:      a.SiteSeparation[1],
		})
	}

	var rydberg []arch.Rectangle
	for _, rect := range doc.RydbergRange {
		rydberg = append(rydberg, arch.Rectangle{
			MinX: rect[0][0], MinY: rect[0][1],
			MaxX: rect[1][0], MaxY: rect[1][1],
		})
	}

	return arch.New(doc.Name, storage, entanglement, aods, rydberg, 0, 0, 0)
}

func slmsFromZones(zones []jsonZone) []arch.SLM {
	var out []arch.SLM
	for _, z := range zones {
		for _, s := range z.SLMs {
			out = append(out, arch.SLM{
				ID:     s.ID,
				ZoneID: z.ZoneID,
				Rows:   s.R,
				Cols:   s.C,
				BaseX:  s.Location[0],
				BaseY:  s.Location[1],
				DX:     s.SiteSeparation[0],
				DY:     s.SiteSeparation[1],
			})
		}
	}
	return out
}

// GridSite is one row of the SMT-variant "Architecture grid CSV": a bare
// enumeration of integer (x, y) site coordinates.
type GridSite struct {
	X, Y int
}

// LoadGridCSV reads the header `x,y` and following integer-coordinate rows
// of the architecture grid CSV used by the SMT encoder's architecture
// variant (spec.md §6).
func LoadGridCSV(fs afero.Fs, path string) ([]GridSite, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("archio: open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeGridCSV(f)
}

// DecodeGridCSV parses an architecture grid CSV from an arbitrary reader.
func DecodeGridCSV(r io.Reader) ([]GridSite, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("archio: reading csv header: %w", err)
	}
	if len(header) < 2 || header[0] != "x" || header[1] != "y" {
		return nil, arch.ErrInvalidArchitecture{Reason: "csv grid header must be \"x,y\""}
	}

	var sites []GridSite
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("archio: reading csv row: %w", err)
		}
		if len(rec) < 2 {
			return nil, arch.ErrInvalidArchitecture{Reason: "csv grid row must have 2 columns"}
		}
		x, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, arch.ErrInvalidArchitecture{Reason: "non-integer x: " + rec[0]}
		}
		y, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, arch.ErrInvalidArchitecture{Reason: "non-integer y: " + rec[1]}
		}
		sites = append(sites, GridSite{X: x, Y: y})
	}
	return sites, nil
}
