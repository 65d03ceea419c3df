package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sawantaditi24/RoomSync/internal/model"
)

// AvailabilityFilter selects availability posts. Nil fields impose no
// constraint; all set fields are AND-combined. Pointers mark presence
// explicitly so that zero values (cost_max=0, roommates=0) still filter.
type AvailabilityFilter struct {
	PostType        *string
	HousingProperty *string
	Community       *string

	// Matches posts whose preference equals the value or is "Any"
	// (the post carries the wildcard, not the filter).
	GenderPreference *string

	// Upper bound on the post's cost_preference_max.
	CostMax *float64

	LeaseTerm     *string
	ApartmentPlan *string
	Roommates     *int

	// Case-sensitive substring containment.
	CourseProgram *string

	Status *string
}

const availabilityColumns = `a.id, a.user_id, a.housing_property, a.apartment_plan,
	       a.number_of_roommates_preferred, a.gender_preference,
	       a.cost_preference_min, a.cost_preference_max, a.lease_term,
	       a.dietary_restrictions, a.course_program, a.community, a.miscellaneous,
	       a.status, a.filled_at, a.post_type, a.created_at,
	       u.id, u.name, u.email, u.contact, u.created_at`

// CreateAvailability inserts a new availability post. The owner must exist;
// ErrNotFound is returned and nothing inserted otherwise.
func CreateAvailability(ctx context.Context, db *sql.DB, a *model.Availability) (*model.Availability, error) {
	owner, err := GetUser(ctx, db, a.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("availability owner %d: %w", a.UserID, ErrNotFound)
	}

	status := a.Status
	if status == "" {
		status = model.AvailabilityStatusAvailable
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO availabilities (
		     user_id, housing_property, apartment_plan, number_of_roommates_preferred,
		     gender_preference, cost_preference_min, cost_preference_max, lease_term,
		     dietary_restrictions, course_program, community, miscellaneous,
		     status, post_type
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.UserID, a.HousingProperty, a.ApartmentPlan, a.RoommatesPreferred,
		a.GenderPreference, a.CostPreferenceMin, a.CostPreferenceMax, a.LeaseTerm,
		a.DietaryRestrictions, a.CourseProgram, a.Community, a.Miscellaneous,
		status, a.PostType,
	)
	if err != nil {
		return nil, fmt.Errorf("creating availability: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting availability id: %w", err)
	}

	return GetAvailability(ctx, db, id)
}

// GetAvailability returns an availability post by ID, joined with its owner.
// A post whose owner no longer exists reads as absent.
func GetAvailability(ctx context.Context, db *sql.DB, id int64) (*model.Availability, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+availabilityColumns+`
		 FROM availabilities a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.id = ?`, id,
	)

	a, err := scanAvailability(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting availability: %w", err)
	}
	return a, nil
}

// ListAvailabilities returns all availability posts matching the filter,
// each joined with its owner's profile, in insertion order. The inner join
// drops posts whose owner disappeared between sweep and read.
func ListAvailabilities(ctx context.Context, db *sql.DB, f AvailabilityFilter) ([]model.Availability, error) {
	query := `SELECT ` + availabilityColumns + `
	 FROM availabilities a
	 JOIN users u ON u.id = a.user_id`

	var conds []string
	var args []any
	if f.PostType != nil {
		conds = append(conds, "a.post_type = ?")
		args = append(args, *f.PostType)
	}
	if f.HousingProperty != nil {
		conds = append(conds, "a.housing_property = ?")
		args = append(args, *f.HousingProperty)
	}
	if f.Community != nil {
		conds = append(conds, "a.community = ?")
		args = append(args, *f.Community)
	}
	if f.GenderPreference != nil {
		conds = append(conds, "(a.gender_preference = ? OR a.gender_preference = ?)")
		args = append(args, *f.GenderPreference, model.GenderAny)
	}
	if f.CostMax != nil {
		conds = append(conds, "a.cost_preference_max <= ?")
		args = append(args, *f.CostMax)
	}
	if f.LeaseTerm != nil {
		conds = append(conds, "a.lease_term = ?")
		args = append(args, *f.LeaseTerm)
	}
	if f.ApartmentPlan != nil {
		conds = append(conds, "a.apartment_plan = ?")
		args = append(args, *f.ApartmentPlan)
	}
	if f.Roommates != nil {
		conds = append(conds, "a.number_of_roommates_preferred = ?")
		args = append(args, *f.Roommates)
	}
	if f.CourseProgram != nil {
		// instr is case-sensitive, unlike LIKE.
		conds = append(conds, "instr(a.course_program, ?) > 0")
		args = append(args, *f.CourseProgram)
	}
	if f.Status != nil {
		conds = append(conds, "a.status = ?")
		args = append(args, *f.Status)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY a.id"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing availabilities: %w", err)
	}
	defer rows.Close()

	var posts []model.Availability
	for rows.Next() {
		a, err := scanAvailability(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning availability: %w", err)
		}
		posts = append(posts, *a)
	}
	return posts, rows.Err()
}

// SetAvailabilityStatus updates a post's status. Setting filled_up stamps
// filled_at with the current time; leaving filled_up does not clear it, so
// the retention prune keeps working for posts that cycle back in.
func SetAvailabilityStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE availabilities
		 SET status = ?,
		     filled_at = CASE WHEN ? = ? THEN CURRENT_TIMESTAMP ELSE filled_at END
		 WHERE id = ?`,
		status, status, model.AvailabilityStatusFilledUp, id,
	)
	if err != nil {
		return fmt.Errorf("updating availability status: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking availability update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("availability %d: %w", id, ErrNotFound)
	}
	return nil
}

// scanAvailability scans one joined availability row.
func scanAvailability(scan func(...any) error) (*model.Availability, error) {
	a := &model.Availability{User: &model.User{}}
	var dietary, course, community, misc sql.NullString
	err := scan(
		&a.ID, &a.UserID, &a.HousingProperty, &a.ApartmentPlan,
		&a.RoommatesPreferred, &a.GenderPreference,
		&a.CostPreferenceMin, &a.CostPreferenceMax, &a.LeaseTerm,
		&dietary, &course, &community, &misc,
		&a.Status, &a.FilledAt, &a.PostType, &a.CreatedAt,
		&a.User.ID, &a.User.Name, &a.User.Email, &a.User.Contact, &a.User.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.DietaryRestrictions = dietary.String
	a.CourseProgram = course.String
	a.Community = community.String
	a.Miscellaneous = misc.String
	return a, nil
}
