package core

// RetrievalStatus represents the state of a retrieval call
type RetrievalStatus int

const (
	StatusPending   RetrievalStatus = iota // Not yet started
	StatusFetching                         // Requesting messages from the mailbox API
	StatusScanning                         // Scanning fetched messages for a code
	StatusFound                            // A verification code was extracted
	StatusFailed                           // Final-attempt fetch error propagated
	StatusExhausted                        // Attempt budget spent without a code
)

// String returns the string representation of RetrievalStatus
func (s RetrievalStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFetching:
		return "fetching"
	case StatusScanning:
		return "scanning"
	case StatusFound:
		return "found"
	case StatusFailed:
		return "failed"
	case StatusExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if the status is a final state
func (s RetrievalStatus) IsTerminal() bool {
	switch s {
	case StatusFound, StatusFailed, StatusExhausted:
		return true
	default:
		return false
	}
}

// IsSuccess returns true if the status indicates a code was found
func (s RetrievalStatus) IsSuccess() bool {
	return s == StatusFound
}

// ErrorCategory classifies the type of error for better debugging and reporting
type ErrorCategory int

const (
	ErrCategoryNone      ErrorCategory = iota // No error
	ErrCategoryFetch                          // Transport or HTTP failure reaching the mailbox API
	ErrCategoryExhausted                      // All attempts consumed without a code
	ErrCategoryConfig                         // Invalid configuration, missing required field
)

// String returns the string representation of ErrorCategory
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryFetch:
		return "fetch"
	case ErrCategoryExhausted:
		return "exhausted"
	case ErrCategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}
