package presentation

// Chart kinds understood by the browser-side renderer.
const (
	KindLine      = "line"
	KindPie       = "pie"
	KindBar       = "bar"
	KindHBar      = "hbar"
	KindTreemap   = "treemap"
	KindHistogram = "histogram"
	KindScatter   = "scatter"
	KindHeatmap   = "heatmap"
	KindSunburst  = "sunburst"
)

// Chart is a render-ready chart request. Exactly one of Series, Tree or
// Matrix carries the data, depending on Kind.
type Chart struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	Title      string     `json:"title"`
	XLabel     string     `json:"xLabel,omitempty"`
	YLabel     string     `json:"yLabel,omitempty"`
	ValueFmt   string     `json:"valueFormat,omitempty"`
	ColorScale string     `json:"colorScale,omitempty"`
	Bins       int        `json:"bins,omitempty"`
	Height     int        `json:"height"`
	ShowLegend bool       `json:"showLegend"`
	Series     []Series   `json:"series,omitempty"`
	Tree       []TreeNode `json:"tree,omitempty"`
	Matrix     *Matrix    `json:"matrix,omitempty"`
}

type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Point is one datum. Bar, pie and line charts use Label and Value;
// scatter charts add X and Size.
type Point struct {
	Label string  `json:"label"`
	X     float64 `json:"x,omitempty"`
	Value float64 `json:"value"`
	Size  float64 `json:"size,omitempty"`
}

// TreeNode is a node of a treemap or sunburst. Parent is empty for roots.
type TreeNode struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Parent string  `json:"parent"`
	Value  float64 `json:"value"`
}

type Matrix struct {
	X []string    `json:"x"`
	Y []string    `json:"y"`
	Z [][]float64 `json:"z"`
}

type KPICard struct {
	ID    string `json:"id"`
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Value string `json:"value"`
}

type Summary struct {
	Insights        []string `json:"insights"`
	Opportunities   []string `json:"opportunities"`
	Recommendations []string `json:"recommendations"`
}

// View is everything the page needs for one filter state.
type View struct {
	Empty        bool      `json:"empty"`
	Message      string    `json:"message,omitempty"`
	Transactions string    `json:"transactions"`
	DateRange    string    `json:"dateRange"`
	KPIs         []KPICard `json:"kpis"`
	Charts       []Chart   `json:"charts"`
	Summary      *Summary  `json:"summary,omitempty"`
}
