package models

// Result describes a single cleaned URL.
type Result struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
	Output     string `json:"output"`
	Host       string `json:"host"`
	// Domain is the registrable domain of Host (eTLD+1), if known.
	Domain string `json:"domain,omitempty"`
	Amazon bool   `json:"amazon"`
	ASIN   string `json:"asin,omitempty"`
	// Removed lists the names of dropped query parameters in input order,
	// main query first, then the fragment query.
	Removed  []string `json:"removed,omitempty"`
	Fallback bool     `json:"fallback,omitempty"`
}

// BatchResult is the outcome for one line of a batch run
type BatchResult struct {
	Line   int     `json:"line"`
	Input  string  `json:"input"`
	Output string  `json:"output"`
	Result *Result `json:"result,omitempty"`
	// Message is Error as text, for serialized reports.
	Message string `json:"error,omitempty"`
	Error   error  `json:"-"`
}

// LinkRewrite records one href changed in an HTML document
type LinkRewrite struct {
	From string `json:"from"`
	To   string `json:"to"`
}
