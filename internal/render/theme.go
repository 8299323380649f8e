package render

// Theme holds colors for block tree rendering.
type Theme struct {
	Background string
	NodeFill   string
	NodeBorder string
	TextColor  string

	// Edge colors by kind.
	EdgeTaken  string // conditional branch taken (T)
	EdgeFall   string // conditional fall-through (F)
	EdgeDirect string // unconditional branch or plain fall-through
	EdgeSwitch string // switch case

	// Node accents.
	EntryBorder string // first block of the method
	TermFill    string // blocks without successors

	// Cluster fills by scope kind.
	TryFill     string
	HandlerFill string
	FilterFill  string
	FinallyFill string // finally and fault handlers

	// Cluster styling.
	ClusterBorder string // subgraph cluster border
	ClusterLabel  string // subgraph cluster label text
}

// NASA is the NASA/Bauhaus theme: geometric, monochrome, sparse color.
var NASA = Theme{
	Background: "#F5F5F5",
	NodeFill:   "white",
	NodeBorder: "#1A1A1A",
	TextColor:  "#1A1A1A",

	EdgeTaken:  "#0B3D91", // NASA blue
	EdgeFall:   "#FC3D21", // NASA red
	EdgeDirect: "#424242", // dark gray
	EdgeSwitch: "#00695C", // teal

	EntryBorder: "#0B3D91",
	TermFill:    "#ECEFF1", // blue-gray 50

	TryFill:     "#E3F2FD",
	HandlerFill: "#FFF3E0",
	FilterFill:  "#F3E5F5",
	FinallyFill: "#E8F5E9",

	ClusterBorder: "#BDBDBD",
	ClusterLabel:  "#757575",
}

// Mono renders without fills, for printing.
var Mono = Theme{
	Background:    "white",
	NodeFill:      "white",
	NodeBorder:    "black",
	TextColor:     "black",
	EdgeTaken:     "black",
	EdgeFall:      "#757575",
	EdgeDirect:    "black",
	EdgeSwitch:    "black",
	EntryBorder:   "black",
	TermFill:      "white",
	TryFill:       "white",
	HandlerFill:   "white",
	FilterFill:    "white",
	FinallyFill:   "white",
	ClusterBorder: "black",
	ClusterLabel:  "black",
}

// ThemeByName returns the named theme; unknown names get NASA.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return Mono
	}
	return NASA
}
