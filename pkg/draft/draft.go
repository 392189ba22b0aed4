package draft

import (
	"time"

	"github.com/google/uuid"
)

// Canonical field names. These are the keys used by the validation rule set,
// the rendered form controls, and the controller's change handlers.
const (
	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldEmail        = "email"
	FieldMobileNumber = "mobileNumber"
	FieldDateOfBirth  = "dateOfBirth"

	FieldAddress     = "address"
	FieldPostCode    = "postCode"
	FieldHouseNumber = "houseNumber"

	FieldProduct = "selectedProductId"
	FieldColor   = "selectedColorId"
	FieldStorage = "selectedStorageId"
	FieldNetwork = "network"

	FieldDirectDebitDay = "directDebitDay"
	FieldSortCode       = "sortCode"
	FieldAccountNumber  = "accountNumber"
	FieldNameOnCard     = "nameOnCard"
	FieldTimeWithBank   = "timeWithBankBucket"
	FieldCardNumber     = "cardNumber"
	FieldCardExpiry     = "cardExpiry"
	FieldCardCvv        = "cardCvv"
)

// Fields lists every user-editable field in form order. Handlers that apply a
// whole submission iterate this slice so the product selection is always
// processed before its dependent colour/storage fields.
var Fields = []string{
	FieldProduct,
	FieldColor,
	FieldStorage,
	FieldNetwork,
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldMobileNumber,
	FieldDateOfBirth,
	FieldAddress,
	FieldPostCode,
	FieldHouseNumber,
	FieldDirectDebitDay,
	FieldSortCode,
	FieldAccountNumber,
	FieldNameOnCard,
	FieldTimeWithBank,
	FieldCardNumber,
	FieldCardExpiry,
	FieldCardCvv,
}

// Order is the in-progress, unsubmitted order. All user-editable values are
// kept as raw strings; interpretation happens in validation and formatting.
type Order struct {
	Reference string

	FirstName    string
	LastName     string
	Email        string
	MobileNumber string
	DateOfBirth  string

	Address     string
	PostCode    string
	HouseNumber string

	SelectedProductID string
	SelectedColorID   string
	SelectedStorageID string
	Network           string

	DirectDebitDay     string
	SortCode           string
	AccountNumber      string
	NameOnCard         string
	TimeWithBankBucket string

	CardNumber string
	CardExpiry string
	CardCvv    string

	SubmissionDate time.Time
}

// New returns an empty draft stamped with the construction time and a fresh
// order reference.
func New(now time.Time) Order {
	return Order{
		Reference:      uuid.NewString(),
		SubmissionDate: now,
	}
}

// Get reads a field by its canonical name. Unknown names read as empty.
func (o Order) Get(field string) string {
	switch field {
	case FieldFirstName:
		return o.FirstName
	case FieldLastName:
		return o.LastName
	case FieldEmail:
		return o.Email
	case FieldMobileNumber:
		return o.MobileNumber
	case FieldDateOfBirth:
		return o.DateOfBirth
	case FieldAddress:
		return o.Address
	case FieldPostCode:
		return o.PostCode
	case FieldHouseNumber:
		return o.HouseNumber
	case FieldProduct:
		return o.SelectedProductID
	case FieldColor:
		return o.SelectedColorID
	case FieldStorage:
		return o.SelectedStorageID
	case FieldNetwork:
		return o.Network
	case FieldDirectDebitDay:
		return o.DirectDebitDay
	case FieldSortCode:
		return o.SortCode
	case FieldAccountNumber:
		return o.AccountNumber
	case FieldNameOnCard:
		return o.NameOnCard
	case FieldTimeWithBank:
		return o.TimeWithBankBucket
	case FieldCardNumber:
		return o.CardNumber
	case FieldCardExpiry:
		return o.CardExpiry
	case FieldCardCvv:
		return o.CardCvv
	default:
		return ""
	}
}

// Set writes a field by its canonical name and reports whether the name was
// recognised. Set performs no side effects; derived behaviour (normalization,
// dependent resets) belongs to the controller.
func (o *Order) Set(field, value string) bool {
	switch field {
	case FieldFirstName:
		o.FirstName = value
	case FieldLastName:
		o.LastName = value
	case FieldEmail:
		o.Email = value
	case FieldMobileNumber:
		o.MobileNumber = value
	case FieldDateOfBirth:
		o.DateOfBirth = value
	case FieldAddress:
		o.Address = value
	case FieldPostCode:
		o.PostCode = value
	case FieldHouseNumber:
		o.HouseNumber = value
	case FieldProduct:
		o.SelectedProductID = value
	case FieldColor:
		o.SelectedColorID = value
	case FieldStorage:
		o.SelectedStorageID = value
	case FieldNetwork:
		o.Network = value
	case FieldDirectDebitDay:
		o.DirectDebitDay = value
	case FieldSortCode:
		o.SortCode = value
	case FieldAccountNumber:
		o.AccountNumber = value
	case FieldNameOnCard:
		o.NameOnCard = value
	case FieldTimeWithBank:
		o.TimeWithBankBucket = value
	case FieldCardNumber:
		o.CardNumber = value
	case FieldCardExpiry:
		o.CardExpiry = value
	case FieldCardCvv:
		o.CardCvv = value
	default:
		return false
	}
	return true
}

// Values returns the draft as a field-name map, useful for re-rendering a form
// with sticky values.
func (o Order) Values() map[string]string {
	out := make(map[string]string, len(Fields))
	for _, field := range Fields {
		out[field] = o.Get(field)
	}
	return out
}
