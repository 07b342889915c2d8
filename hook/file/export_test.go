package file

// Writes reports how many times the document has been replaced on disk
func (r *Repository) Writes() uint64 {
	return r.writes.Load()
}

// SetBeforeWrite installs fn to run at the start of every disk write
func (r *Repository) SetBeforeWrite(fn func()) {
	r.beforeWrite = fn
}
