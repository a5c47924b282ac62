package port

type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

type FileInfo struct {
	Path    string
	ModTime int64
	Size    int64
}

// FileReader loads a document as UTF-8 text. Failures are *domain.ReadError.
type FileReader interface {
	ReadFile(path string) (string, error)
}
