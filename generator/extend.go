package generator

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/pentis/grid"
	"github.com/plus3/pentis/piece"
)

// ExtendPiece returns every piece that adds one in-grid neighbour to p,
// keeping one representative per congruence class. Pieces already at
// piece.MaxShapeCells cannot grow and yield nothing.
func ExtendPiece(p *piece.Piece) []*piece.Piece {
	return extendInto(nil, intmap.NewSet[piece.Shape](4*p.Len()), p)
}

// ExtendLibrary applies ExtendPiece to every input piece and deduplicates
// the union, so a shape reached through different growth paths appears once.
func ExtendLibrary(pieces []*piece.Piece) []*piece.Piece {
	seen := intmap.NewSet[piece.Shape](4 * len(pieces))
	var out []*piece.Piece
	for _, p := range pieces {
		out = extendInto(out, seen, p)
	}
	return out
}

func extendInto(out []*piece.Piece, seen *intmap.Set[piece.Shape], p *piece.Piece) []*piece.Piece {
	if p.Len() >= piece.MaxShapeCells {
		return out
	}
	coords := p.Coordinates()
	for _, n := range frontier(p) {
		grown, err := piece.New(append(coords[:len(coords):len(coords)], n)...)
		if err != nil {
			continue
		}
		if seen.Add(grown.Shape()) {
			out = append(out, grown)
		}
	}
	return out
}

// frontier lists the empty in-grid cells adjacent to p, each once, in
// square order.
func frontier(p *piece.Piece) []grid.Coordinates {
	seen := intmap.NewSet[grid.Key](4 * p.Len())
	var out []grid.Coordinates
	for _, c := range p.Coordinates() {
		for _, n := range c.Neighbours() {
			if !p.Contains(n) && seen.Add(n.Key()) {
				out = append(out, n)
			}
		}
	}
	return out
}
