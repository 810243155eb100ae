package analysis

import (
	"github.com/rotisserie/eris"

	"github.com/AngelCh415/adspend/internal/ingest"
)

// Input errors. Each of them is the caller's fault and maps to a 400.
var (
	ErrInvalidBody       = eris.New("invalid request body")
	ErrNoData            = eris.New("no data detected: rawData must be a non-empty array of rows")
	ErrIncompleteContext = eris.New("incomplete business context")
	ErrNoExploitableRows = ingest.ErrNoExploitableRows
)

// IsInputError reports whether err was caused by the request content.
func IsInputError(err error) bool {
	for _, target := range []error{ErrInvalidBody, ErrNoData, ErrIncompleteContext, ErrNoExploitableRows} {
		if eris.Is(err, target) {
			return true
		}
	}
	return false
}
