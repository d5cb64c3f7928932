package logging

// Keys for structured log fields. Keeping them in one place keeps the
// output greppable across commands.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"
	FieldEvent      = "event"

	FieldConfig = "config"
	FieldFlavor = "flavor"
	FieldFormat = "format"
	FieldJobs   = "jobs"

	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	FieldSeverity    = "severity"
	FieldAliases     = "aliases"
	FieldDescription = "description"
)
