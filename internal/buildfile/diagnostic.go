package buildfile

// Kind classifies a load diagnostic. The classification is informational;
// every kind aborts the load the same way.
type Kind int

const (
	// KindIO means the input file could not be read.
	KindIO Kind = iota
	// KindStream means the file did not contain exactly one parseable
	// YAML document.
	KindStream
	// KindStructure means a syntax-tree node had the wrong kind where a
	// mapping, sequence, or scalar was required.
	KindStructure
	// KindSchema means a section was missing, misordered, or otherwise
	// violated the document schema.
	KindSchema
	// KindSemantic means the delegate or an entity rejected a
	// configuration call.
	KindSemantic
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindStream:
		return "stream"
	case KindStructure:
		return "structure"
	case KindSchema:
		return "schema"
	case KindSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// Diagnostic describes the first (and only) failure of a load.
type Diagnostic struct {
	Filename string
	Kind     Kind
	Message  string
}
