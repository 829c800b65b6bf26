package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when a row addressed by id (or another unique
	// key) does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUsernameTaken is returned when a user insert violates the unique
	// username constraint.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrEmailTaken is returned when a user insert or update violates the
	// unique email constraint.
	ErrEmailTaken = errors.New("email already exists")

	// ErrAlreadyExists is returned for any other unique violation: a
	// duplicate location or category name, a second share of the same
	// resource with the same user, an OAuth id linked twice.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrReferenceNotFound is returned when an insert or update points a
	// foreign key at a row that does not exist.
	ErrReferenceNotFound = errors.New("referenced record not found")

	// ErrHasDependents is returned when a delete is refused because other
	// rows still reference the target (a location that still holds boxes).
	ErrHasDependents = errors.New("record is still referenced")

	// ErrConstraintViolated is returned when a CHECK constraint rejects a
	// row. Input validation in the service layer normally prevents it.
	ErrConstraintViolated = errors.New("check constraint violated")

	// ErrCredentialNotFound is returned by the client credential store when
	// nothing has been persisted yet.
	ErrCredentialNotFound = errors.New("no stored credential")

	// ErrSettingNotFound is returned by the client settings store for an
	// unknown key.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrImageNotFound is returned when an image file is missing on disk.
	ErrImageNotFound = errors.New("image file not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
