package lexisphere

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
)

// ExportGLTF writes the current graph as a glTF 2.0 document: one node
// per live term node, positioned at its current world-space coordinates
// (layout position with the scene orientation applied). Term metadata
// rides along in each node's extras, so the exported scene can be
// inspected in any glTF viewer or re-imported elsewhere.
//
// The extension of path selects the container: .glb writes binary,
// anything else writes JSON glTF.
func (s *Scene) ExportGLTF(path string) error {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "lexisphere"

	for _, n := range s.nodes {
		if n.IsDisposed() {
			continue
		}
		world := n.WorldPosition(s.orientation)
		gn := &gltf.Node{
			Name: n.Term,
			Translation: [3]float64{
				world.X,
				world.Y,
				world.Z,
			},
			Extras: map[string]interface{}{
				"id":             n.ID,
				"part_of_speech": n.PartOfSpeech,
				"definition":     n.Definition,
			},
		}
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes))
		doc.Nodes = append(doc.Nodes, gn)
	}

	save := gltf.Save
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		save = gltf.SaveBinary
	}
	if err := save(doc, path); err != nil {
		return fmt.Errorf("lexisphere: export %s: %w", path, err)
	}
	return nil
}
