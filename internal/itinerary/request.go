// README: Trip request submitted by the multi-step form, with validation and derived values.
package itinerary

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// ErrInvalidRequest is wrapped by every TripRequest validation failure.
var ErrInvalidRequest = errors.New("invalid trip request")

const dateLayout = "2006-01-02"

// TripRequest is the user's trip intent. Dates use YYYY-MM-DD; when they are
// absent Duration carries a free-text length such as "5 days".
type TripRequest struct {
	Destination       string   `json:"destination" binding:"required"`
	StartDate         string   `json:"start_date,omitempty"`
	EndDate           string   `json:"end_date,omitempty"`
	Duration          string   `json:"duration,omitempty"`
	Budget            string   `json:"budget,omitempty"`
	BudgetAmount      int      `json:"budget_amount,omitempty" binding:"gte=0"`
	Accommodation     string   `json:"accommodation,omitempty"`
	Travelers         string   `json:"travelers,omitempty"`
	NumberOfTravelers int      `json:"number_of_travelers,omitempty" binding:"gte=0"`
	DietaryPreference string   `json:"dietary_preference,omitempty"`
	Interests         []string `json:"interests,omitempty"`
	TravelStyle       string   `json:"travel_style,omitempty"`
	Email             string   `json:"email,omitempty"`
}

// Validate normalises whitespace and checks the request. All errors wrap ErrInvalidRequest.
func (r *TripRequest) Validate() error {
	r.Destination = strings.TrimSpace(r.Destination)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.Duration = strings.TrimSpace(r.Duration)
	r.Email = strings.TrimSpace(r.Email)

	interests := r.Interests[:0]
	for _, i := range r.Interests {
		if s := strings.TrimSpace(i); s != "" {
			interests = append(interests, s)
		}
	}
	r.Interests = interests

	if r.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}

	switch {
	case r.StartDate != "" || r.EndDate != "":
		start, end, err := r.dates()
		if err != nil {
			return err
		}
		if end.Before(start) {
			return fmt.Errorf("%w: end_date is before start_date", ErrInvalidRequest)
		}
	case r.Duration == "":
		return fmt.Errorf("%w: either start_date/end_date or duration is required", ErrInvalidRequest)
	}

	if r.BudgetAmount < 0 || r.NumberOfTravelers < 0 {
		return fmt.Errorf("%w: budget_amount and number_of_travelers must not be negative", ErrInvalidRequest)
	}

	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return fmt.Errorf("%w: email is not a valid address", ErrInvalidRequest)
		}
	}
	return nil
}

func (r *TripRequest) dates() (time.Time, time.Time, error) {
	if r.StartDate == "" || r.EndDate == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date and end_date must be given together", ErrInvalidRequest)
	}
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidRequest)
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidRequest)
	}
	return start, end, nil
}

// HasDates reports whether the request carries a date range.
func (r TripRequest) HasDates() bool {
	return r.StartDate != "" && r.EndDate != ""
}

// DayCount is the inclusive number of days in the date range, or 0 without dates.
func (r TripRequest) DayCount() int {
	if !r.HasDates() {
		return 0
	}
	start, end, err := r.dates()
	if err != nil || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// DurationText is the human duration, e.g. "5 days".
func (r TripRequest) DurationText() string {
	n := r.DayCount()
	switch {
	case n == 1:
		return "1 day"
	case n > 1:
		return fmt.Sprintf("%d days", n)
	}
	return r.Duration
}

// DateRangeText formats the dates as "Mar 3, 2026 - Mar 7, 2026", or "" without dates.
func (r TripRequest) DateRangeText() string {
	if !r.HasDates() {
		return ""
	}
	start, end, err := r.dates()
	if err != nil {
		return ""
	}
	return start.Format("Jan 2, 2006") + " - " + end.Format("Jan 2, 2006")
}

// TravelersText describes the traveling party.
func (r TripRequest) TravelersText() string {
	switch {
	case r.Travelers != "" && r.NumberOfTravelers > 0:
		return fmt.Sprintf("%s (%d)", r.Travelers, r.NumberOfTravelers)
	case r.NumberOfTravelers == 1:
		return "1 traveler"
	case r.NumberOfTravelers > 1:
		return fmt.Sprintf("%d travelers", r.NumberOfTravelers)
	}
	return r.Travelers
}

// BudgetText describes the budget tier and/or amount.
func (r TripRequest) BudgetText() string {
	switch {
	case r.Budget != "" && r.BudgetAmount > 0:
		return fmt.Sprintf("%s (about $%d USD)", r.Budget, r.BudgetAmount)
	case r.BudgetAmount > 0:
		return fmt.Sprintf("$%d USD", r.BudgetAmount)
	}
	return r.Budget
}
