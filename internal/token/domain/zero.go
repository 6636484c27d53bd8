package domain

// Zero overwrites b with zeros. Used on key material that is no longer needed.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
