package server

// Options configures server creation.
type Options struct {
	// StorageDir is where the daemon keeps its temporary workspace. Empty
	// means the system temp directory.
	StorageDir string
}
