package order

import (
	"fmt"
	"strconv"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// MaxSequence is the largest per-day sequence an order number can carry.
const MaxSequence = 9999

// Number is the human-facing order number YYYYMMDD-NNNN. NNNN is a 1-based
// sequence that restarts every business date.
type Number struct {
	date     kernel.BusinessDate
	sequence int
}

// NewNumber fails with ValueIsOutOfRange when sequence is outside 1..MaxSequence.
func NewNumber(date kernel.BusinessDate, sequence int) (Number, error) {
	if date.IsZero() {
		return Number{}, errs.NewValueIsRequiredError("order number date")
	}
	if sequence < 1 || sequence > MaxSequence {
		return Number{}, errs.NewValueIsOutOfRangeError("order number sequence", sequence, 1, MaxSequence)
	}
	return Number{date: date, sequence: sequence}, nil
}

// ParseNumber parses the YYYYMMDD-NNNN form.
func ParseNumber(s string) (Number, error) {
	datePart, seqPart, ok := strings.Cut(s, "-")
	if !ok || len(datePart) != 8 || len(seqPart) != 4 {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%q is not in YYYYMMDD-NNNN form", s))
	}
	date, err := kernel.BusinessDateFromCompact(datePart)
	if err != nil {
		return Number{}, err
	}
	seq, err := strconv.Atoi(seqPart)
	if err != nil {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%q: %w", s, err))
	}
	return NewNumber(date, seq)
}

func (n Number) Date() kernel.BusinessDate {
	return n.date
}

func (n Number) Sequence() int {
	return n.sequence
}

func (n Number) String() string {
	return fmt.Sprintf("%s-%04d", n.date.Compact(), n.sequence)
}

func (n Number) IsZero() bool {
	return n.sequence == 0
}
