package lexisphere

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// LayoutScale is the radius, in world units, of a term's synonym
// neighborhood as produced by the force layout.
const LayoutScale = 100.0

// LinkedSynonym is one resolved synonym of a term record: the display text,
// the id of the term it links to, and its layout position relative to the
// record's own term. Records that have not been through the positioning
// pass carry all-zero coordinates.
type LinkedSynonym struct {
	Term string  `json:"term"`
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

// TermRecord is a lemma entry: a term, its part of speech and definition,
// and its synonyms split into resolved links and unresolved leftovers.
type TermRecord struct {
	ID           string          `json:"id"`
	Term         string          `json:"term"`
	PartOfSpeech string          `json:"part_of_speech"`
	Definition   string          `json:"definition"`
	Synonyms     []LinkedSynonym `json:"linked_synonyms"`
	Unlinked     []string        `json:"unlinked_synonyms,omitempty"`
}

// positioned reports whether any synonym carries stored layout coordinates.
func (r *TermRecord) positioned() bool {
	for _, syn := range r.Synonyms {
		if syn.X != 0 || syn.Y != 0 || syn.Z != 0 {
			return true
		}
	}
	return false
}

// synonymOffsets returns one layout-space offset per synonym, relative to
// the record's own term. Stored coordinates are used when present;
// otherwise a seeded force layout of the record's star graph fills in.
func synonymOffsets(record *TermRecord) []Vector3 {
	offsets := make([]Vector3, len(record.Synonyms))
	if record.positioned() {
		for i, syn := range record.Synonyms {
			offsets[i] = Vector3{syn.X, syn.Y, syn.Z}
		}
		return offsets
	}

	// Star graph: the term at index 0, connected to every synonym.
	edges := make([][2]int, len(record.Synonyms))
	for i := range record.Synonyms {
		edges[i] = [2]int{0, i + 1}
	}
	pos := SpringLayout3D(len(record.Synonyms)+1, edges, LayoutScale, layoutSeed)
	for i := range offsets {
		offsets[i] = pos[i+1].Sub(pos[0])
	}
	return offsets
}

// BuildGraph replaces the scene's node set with the given record's
// neighborhood: the record's term at the layout origin, its synonyms
// arranged around it. Returns the center node, which becomes the focus.
func (s *Scene) BuildGraph(record *TermRecord) *Node {
	for _, n := range s.nodes {
		n.Dispose()
	}
	s.sweepDisposed()

	center := NewNode(record.ID, record.Term)
	center.PartOfSpeech = record.PartOfSpeech
	center.Definition = record.Definition
	s.AddNode(center)

	offsets := synonymOffsets(record)
	for i, syn := range record.Synonyms {
		n := NewNode(syn.ID, syn.Term)
		n.LocalPos = offsets[i]
		s.AddNode(n)
	}

	s.setFocus(center)
	return center
}

// beginExpansion builds the expansion timeline for a transition onto
// target: synonyms of the freshly loaded record enter around the target's
// layout position (alpha and scale animating up from zero), while current
// nodes that are not part of the new neighborhood fade out and are disposed
// when the timeline completes.
func (s *Scene) beginExpansion(record *TermRecord, target *Node, duration float32) *expandTimeline {
	keep := map[string]bool{target.ID: true}
	for _, syn := range record.Synonyms {
		keep[syn.ID] = true
	}

	tl := &expandTimeline{}

	offsets := synonymOffsets(record)
	for i, syn := range record.Synonyms {
		if existing := s.NodeByID(syn.ID); existing != nil {
			// Already on screen from the previous neighborhood; leave it
			// where it is rather than teleporting it.
			continue
		}
		n := NewNode(syn.ID, syn.Term)
		n.LocalPos = target.LocalPos.Add(offsets[i])
		n.Alpha = 0
		n.Scale = 0
		s.AddNode(n)
		tl.entering = append(tl.entering, &nodeFade{
			node:  n,
			alpha: gween.New(0, 1, duration, ease.OutQuad),
			scale: gween.New(0, 1, duration, ease.OutQuad),
		})
	}

	for _, n := range s.nodes {
		if n.IsDisposed() || keep[n.ID] {
			continue
		}
		tl.departing = append(tl.departing, &nodeFade{
			node:  n,
			alpha: gween.New(float32(n.Alpha), 0, duration, ease.OutQuad),
		})
	}

	// The target inherits the freshly loaded metadata.
	target.PartOfSpeech = record.PartOfSpeech
	target.Definition = record.Definition

	return tl
}
