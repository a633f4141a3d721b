package update_booking

import "errors"

var (
	ErrInvalidInput            = errors.New("update_booking: invalid input")
	ErrBookingNotFound         = errors.New("update_booking: booking not found")
	ErrBookingNotEditable      = errors.New("update_booking: booking in terminal status")
	ErrHallNotFound            = errors.New("update_booking: hall not found")
	ErrHallInactive            = errors.New("update_booking: hall is inactive")
	ErrCapacityExceeded        = errors.New("update_booking: guests exceed hall capacity")
	ErrMenuNotFound            = errors.New("update_booking: menu not found")
	ErrMenuNotAssigned         = errors.New("update_booking: menu is not assigned to hall")
	ErrServiceNotFound         = errors.New("update_booking: service not found")
	ErrInvalidDate             = errors.New("update_booking: event date is in the past")
	ErrSlotNotAvailable        = errors.New("update_booking: hall is already booked for this date and shift")
	ErrInvalidStatusTransition = errors.New("update_booking: booking status transition is not allowed")
	ErrInternal                = errors.New("update_booking: internal error")
)
