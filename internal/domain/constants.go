package domain

// Default settings values
const (
	DefaultTaxRatePercent = 13
	DefaultAdvancePercent = 30
	DefaultCurrency       = "NPR"
	DefaultCurrencySymbol = "Rs."
)

// Business validation constants
const (
	MinGuests                 = 1
	MaxGuests                 = 10000
	MaxCustomerNameLength     = 200
	MaxPhoneLength            = 20
	MaxEventTypeLength        = 100
	MaxSpecialRequestsLength  = 2000
	MaxServiceQuantity        = 100
	MaxBookingNumberSeq       = 9999
	DefaultServiceQuantity    = 1
)

// Time format constants
const (
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	BookingDateFormat = "20060102"   // YYYYMMDD внутри номера бронирования
)

// AllShifts все допустимые смены, в порядке дня
var AllShifts = []Shift{ShiftMorning, ShiftAfternoon, ShiftEvening, ShiftFullDay}
