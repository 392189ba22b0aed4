// Package payload turns a fully validated order draft plus its resolved
// product into the fixed-order value sequence the submission sink expects.
package payload

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-intake/pkg/catalog"
	"github.com/goliatone/go-intake/pkg/draft"
)

// ValueCount is the exact number of scalar values in a submission row.
const ValueCount = 21

// emptyOptional is the literal written for optional fields the customer left
// blank. The sheet consumers rely on it; never emit an empty string instead.
const emptyOptional = "N/A"

// Storage sizes at or below this are assumed to be expressed in terabytes.
// This is a display heuristic, not a unit conversion.
const terabyteCutoff = 3

// Payload is the normalized submission handed to the sink: the ordered row
// values plus a side channel with the resolved colour's raw swatch value.
type Payload struct {
	Values   []string
	ColorHex string
}

// Build resolves the draft's selections against the supplied product and
// produces the submission payload. The product must be the draft's currently
// selected product; dangling colour or storage references abort the build.
// The submission date column uses now, not the draft's stored timestamp.
func Build(o draft.Order, product catalog.Product, now time.Time) (Payload, error) {
	if product.ID == "" || product.ID != o.SelectedProductID {
		return Payload{}, fmt.Errorf("payload: draft selects product %q but %q was resolved", o.SelectedProductID, product.ID)
	}

	color, ok := product.Color(o.SelectedColorID)
	if !ok {
		return Payload{}, fmt.Errorf("payload: colour %q is not an option of product %q", o.SelectedColorID, product.ID)
	}
	storage, ok := product.Storage(o.SelectedStorageID)
	if !ok {
		return Payload{}, fmt.Errorf("payload: storage %q is not an option of product %q", o.SelectedStorageID, product.ID)
	}

	dob, err := time.Parse("2006-01-02", strings.TrimSpace(o.DateOfBirth))
	if err != nil {
		return Payload{}, fmt.Errorf("payload: parse date of birth: %w", err)
	}

	values := []string{
		o.FirstName,
		o.LastName,
		o.MobileNumber,
		FormatDate(dob),
		o.Email,
		o.Address,
		o.PostCode,
		o.HouseNumber,
		product.Title,
		color.ID,
		FormatStorage(storage.SizeValue),
		o.Network,
		FormatDate(now),
		orEmpty(o.DirectDebitDay),
		orEmpty(o.SortCode),
		orEmpty(o.AccountNumber),
		orEmpty(o.NameOnCard),
		orEmpty(o.TimeWithBankBucket),
		orEmpty(o.CardNumber),
		orEmpty(o.CardExpiry),
		orEmpty(o.CardCvv),
	}
	if len(values) != ValueCount {
		return Payload{}, fmt.Errorf("payload: built %d values, want %d", len(values), ValueCount)
	}

	return Payload{Values: values, ColorHex: color.ColorValue}, nil
}

// FormatDate renders a date as "D/Mon/YYYY": day without a leading zero,
// three-letter month, four-digit year.
func FormatDate(t time.Time) string {
	return t.Format("2/Jan/2006")
}

// FormatStorage renders a unit-less storage size for display. Sizes of 3 and
// below read as terabytes, everything larger as gigabytes.
func FormatStorage(size float64) string {
	unit := "GB"
	if size <= terabyteCutoff {
		unit = "TB"
	}
	return strconv.FormatFloat(size, 'f', -1, 64) + " " + unit
}

func orEmpty(value string) string {
	if strings.TrimSpace(value) == "" {
		return emptyOptional
	}
	return value
}
