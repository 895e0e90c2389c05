// Lexisphere is an interactive 3D thesaurus viewer: serve term records
// from a local store, link synonym edges, and explore the graph by
// dragging, hovering, and clicking through neighborhoods.
package main

import "github.com/phanxgames/lexisphere/cmd/lexisphere/cmd"

func main() {
	cmd.Execute()
}
