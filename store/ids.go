package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const enquiryIDPrefix = "enq"

// newID builds "<prefix>-<unix nanos>-<9 random hex chars>". Stores run per
// client session without a shared sequence, so uniqueness comes from the
// timestamp plus random suffix.
func newID(prefix string, at time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s-%d-%s", prefix, at.UnixNano(), suffix)
}
