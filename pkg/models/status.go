package models

// FileStatus is the outcome of processing one document
type FileStatus string

const (
	FileStatusUnset     FileStatus = ""          // Zero value = unset/unknown
	FileStatusUnchanged FileStatus = "unchanged" // TOC already up to date
	FileStatusChanged   FileStatus = "changed"   // TOC inserted or updated
	FileStatusSkipped   FileStatus = "skipped"   // Content matches the recorded output
	FileStatusFailure   FileStatus = "failure"   // Reading, generating or writing failed
	FileStatusNotFound  FileStatus = "not_found" // Document not in the state store
	FileStatusDBError   FileStatus = "db_error"  // State store error occurred
)

// String implements fmt.Stringer for logging
func (s FileStatus) String() string {
	if s == "" {
		return "unset"
	}
	return string(s)
}

// IsValid returns true if the status is a known processing outcome
func (s FileStatus) IsValid() bool {
	switch s {
	case FileStatusUnchanged, FileStatusChanged, FileStatusSkipped, FileStatusFailure:
		return true
	}
	return false
}
