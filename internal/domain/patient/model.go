// Package patient holds the registry's central subject: one row per person,
// addressable by id from every dependent record kind. Full names are unique
// case-insensitively across the whole patient set.
package patient

import (
	"fmt"
	"strings"
	"time"
)

type Patient struct {
	ID         int64      `json:"id"`
	FullName   string     `json:"full_name"`
	BirthPlace *string    `json:"birth_place"`
	BirthDate  *time.Time `json:"birth_date"`
	BloodGroup *string    `json:"blood_group"`
	Rhesus     *string    `json:"rhesus"`
	Gender     *string    `json:"gender"`
	Occupation *string    `json:"occupation"`
	Education  *string    `json:"education"`
	Address    *string    `json:"address"`
	Phone      *string    `json:"phone"`
	Province   *string    `json:"province"`
	City       *string    `json:"city"`
	Note       *string    `json:"note"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Ref is the minimal (id, name) projection used by name-based resolution.
type Ref struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

// NormalizeName is the canonical form used for uniqueness and lookup.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DuplicateNameError reports a full-name collision together with the patient
// that already owns the name.
type DuplicateNameError struct {
	ID       int64
	FullName string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("patient %q already exists with id %d", e.FullName, e.ID)
}
