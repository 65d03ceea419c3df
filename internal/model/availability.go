package model

import "time"

// Availability is a roommate post: either an offer of a room or a search
// for one, depending on PostType. The User field is the joined owner
// profile (not always populated).
type Availability struct {
	ID                  int64      `json:"id"`
	UserID              int64      `json:"user_id"`
	HousingProperty     string     `json:"housing_property"`
	ApartmentPlan       string     `json:"apartment_plan"`
	RoommatesPreferred  int        `json:"number_of_roommates_preferred"`
	GenderPreference    string     `json:"gender_preference"`
	CostPreferenceMin   float64    `json:"cost_preference_min"`
	CostPreferenceMax   float64    `json:"cost_preference_max"`
	LeaseTerm           string     `json:"lease_term"`
	DietaryRestrictions string     `json:"dietary_restrictions,omitempty"`
	CourseProgram       string     `json:"course_program,omitempty"`
	Community           string     `json:"community,omitempty"`
	Miscellaneous       string     `json:"miscellaneous,omitempty"`
	Status              string     `json:"status"`
	FilledAt            *time.Time `json:"filled_at,omitempty"`
	PostType            string     `json:"post_type"`
	CreatedAt           time.Time  `json:"created_at"`

	// Joined owner profile (not always populated).
	User *User `json:"user,omitempty"`
}

// Availability statuses.
const (
	AvailabilityStatusAvailable   = "available"
	AvailabilityStatusBookingFast = "booking_fast"
	AvailabilityStatusFilledUp    = "filled_up"
)

// Post types.
const (
	PostTypeOffer = "post_availability"
	PostTypeSeek  = "seek_availability"
)

// Gender preferences. A post carrying GenderAny matches every filter value.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderAny    = "Any"
)

// ValidAvailabilityStatus reports whether s is a known availability status.
func ValidAvailabilityStatus(s string) bool {
	switch s {
	case AvailabilityStatusAvailable, AvailabilityStatusBookingFast, AvailabilityStatusFilledUp:
		return true
	}
	return false
}

// ValidPostType reports whether s is a known post type.
func ValidPostType(s string) bool {
	return s == PostTypeOffer || s == PostTypeSeek
}

// ValidGenderPreference reports whether s is a known gender preference.
func ValidGenderPreference(s string) bool {
	switch s {
	case GenderMale, GenderFemale, GenderAny:
		return true
	}
	return false
}
