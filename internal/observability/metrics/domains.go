package metrics

// Mint records a mint attempt outcome.
func Mint(status string) {
	if !enabled {
		return
	}
	mintTotal.WithLabelValues(status).Inc()
}

// Verification records a verification outcome ("valid", "invalid", "error").
func Verification(result string) {
	if !enabled {
		return
	}
	verificationTotal.WithLabelValues(result).Inc()
}

// Extraction records a certificate extraction outcome.
func Extraction(status string) {
	if !enabled {
		return
	}
	extractionTotal.WithLabelValues(status).Inc()
}

// Lookup records a find-by-hash outcome.
func Lookup(status string) {
	if !enabled {
		return
	}
	lookupTotal.WithLabelValues(status).Inc()
}

// Email records a notification attempt outcome.
func Email(status string) {
	if !enabled {
		return
	}
	emailTotal.WithLabelValues(status).Inc()
}
