package source

// FileID indexes a file inside the FileSet that loaded it.
type FileID uint32

// FileFlags records how a file's bytes were obtained and normalized.
type FileFlags uint8

const (
	// FileVirtual marks content added from memory rather than read from disk.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded source. Content is already normalized and LineIdx holds
// the offset of every '\n' in it.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol is a 1-based position. Col counts runes, not bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}
