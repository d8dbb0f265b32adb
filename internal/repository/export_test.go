package repository

// SetStagingDir points the pending files of s to dir.
func SetStagingDir(s *JSONStore, dir string) {
	s.stagingDir = dir
}
