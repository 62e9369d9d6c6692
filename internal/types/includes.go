package types

type (
	// FileIncludes holds the local includes found in one file.
	FileIncludes struct {
		Path     string   `json:"path" yaml:"path"`
		Includes []string `json:"includes" yaml:"includes"`
		Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
		// Err is the last error reported while scanning Path, if any.
		Err error `json:"-" yaml:"-"`
	}

	// Report is the outcome of a collect run.
	Report struct {
		MainFile  string         `json:"mainFile" yaml:"main_file"`
		SourceDir string         `json:"sourceDir" yaml:"source_dir"`
		OutDir    string         `json:"outDir" yaml:"out_dir"`
		Files     []FileEntry    `json:"files" yaml:"files"`
		Includes  []string       `json:"includes" yaml:"includes"`
		Scanned   []FileIncludes `json:"scanned,omitempty" yaml:"scanned,omitempty"`
		Errors    []string       `json:"errors,omitempty" yaml:"errors,omitempty"`
	}
)
