package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// HistoryStrategy represents how cumulative added/deleted totals are retrieved.
	HistoryStrategy string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
	YAMLOut OutputMode = "yaml"
)

// All history strategies supported.
const (
	// PerEmailStrategy runs one non-merge log per (author, email) pair.
	PerEmailStrategy HistoryStrategy = "per-email" // default

	// SinglePassStrategy runs one repository-wide non-merge log and routes
	// the totals to authors by email.
	SinglePassStrategy HistoryStrategy = "single-pass"
)

// Column headers of the author table, in display order.
const (
	HeaderName    = "Name"
	HeaderLOC     = "LOC"
	HeaderCommits = "Commits"
	HeaderFiles   = "files"
	HeaderAdded   = "+LOC"
	HeaderDeleted = "-LOC"
	HeaderOwn     = "OWN"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
	YAMLOut: {},
}

// ValidHistoryStrategies lists all valid history strategies.
var ValidHistoryStrategies = map[HistoryStrategy]struct{}{
	PerEmailStrategy:   {},
	SinglePassStrategy: {},
}

// RawLogHeaders returns the raw identity table header row.
func RawLogHeaders() []string {
	return []string{HeaderName, HeaderCommits, HeaderAdded, HeaderDeleted, HeaderOwn}
}

// AuthorHeaders returns the author table header row.
func AuthorHeaders() []string {
	return []string{HeaderName, HeaderLOC, HeaderCommits, HeaderFiles, HeaderAdded, HeaderDeleted}
}
