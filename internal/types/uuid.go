package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex viol_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

// initializeSID initializes the shortid generator once
func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a short ID with a prefix.
// Total length is capped at 12 characters, e.g., `INVxYZ12A8Q`.
// Used for human-facing invoice numbers.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")

	availableLen := 12 - len(prefix)
	if availableLen <= 0 {
		return ""
	}

	if len(id) > availableLen {
		id = id[:availableLen]
	}

	return strings.ToUpper(fmt.Sprintf("%s%s", prefix, id))
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_OWNER              = "owner"
	UUID_PREFIX_USER               = "user"
	UUID_PREFIX_VIOLATION          = "viol"
	UUID_PREFIX_VIOLATION_NOTICE   = "notice"
	UUID_PREFIX_APPEAL             = "appeal"
	UUID_PREFIX_ARC_REQUEST        = "arc"
	UUID_PREFIX_ARC_REVIEW         = "review"
	UUID_PREFIX_ARC_CONDITION      = "cond"
	UUID_PREFIX_ARC_ATTACHMENT     = "attach"
	UUID_PREFIX_ARC_INSPECTION     = "insp"
	UUID_PREFIX_ELECTION           = "elec"
	UUID_PREFIX_CANDIDATE          = "cand"
	UUID_PREFIX_BALLOT             = "ballot"
	UUID_PREFIX_VOTE               = "vote"
	UUID_PREFIX_BUDGET             = "budget"
	UUID_PREFIX_BUDGET_LINE_ITEM   = "line"
	UUID_PREFIX_RESERVE_PLAN_ITEM  = "resv"
	UUID_PREFIX_BUDGET_APPROVAL    = "appr"
	UUID_PREFIX_LEDGER_ENTRY       = "ledg"
	UUID_PREFIX_AUDIT_LOG          = "audit"
	UUID_PREFIX_NOTIFICATION       = "notif"
	UUID_PREFIX_FINE_SCHEDULE      = "fine"
	UUID_PREFIX_INVOICE_NUMBER     = "INV"
)
