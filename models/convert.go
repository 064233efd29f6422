package models

// Kind tags which artifact variety a conversion produces.
type Kind string

const (
	KindAnimation Kind = "animation"
	KindDocument  Kind = "document"
)

// MaxImages is the upper bound on input images per conversion request.
const MaxImages = 50

// Options carries the caller-selected parameters for one conversion.
// The routing layer is responsible for bounds-checking; the pipeline
// applies defaults for zero values.
type Options struct {
	Width         int    // target frame width in pixels
	Height        int    // target frame height in pixels
	DelayMS       int    // per-frame delay in milliseconds
	Loop          int    // animation loop count, 0 = forever
	Tier          string // quality tier name (low, medium, high, ultra)
	PageFormat    string // document page format name
	EmbedQuality  int    // 1-100 lossy quality for document embedding
	Optimize      bool   // downscale frames to page resolution before embedding
	PanelsPerPage int    // 0 = one frame per page, 1 = panel mode at the default group size
	PageNumbers   bool   // draw a page number on each document page
}

// Settings echoes the effective parameters an artifact was produced with.
type Settings struct {
	Tier       string `json:"tier"`
	Colors     int    `json:"colors"`
	DelayMS    int    `json:"delay_ms,omitempty"`
	Loop       int    `json:"loop,omitempty"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Backend    string `json:"backend,omitempty"`
	Static     bool   `json:"static,omitempty"`
	PageFormat string `json:"page_format,omitempty"`
	Quality    int    `json:"quality,omitempty"`
}

// EncodedArtifact is a finished conversion output. Immutable once produced.
type EncodedArtifact struct {
	Kind     Kind
	Data     []byte
	Size     int
	Frames   int // frame count for animations, page count for documents
	Settings Settings
}
