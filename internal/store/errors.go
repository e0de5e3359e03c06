package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when a user is inserted or renamed
	// to a username that is already taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrUserHasEvents is returned when deleting a user that still organizes
	// events.
	ErrUserHasEvents = errors.New("user still organizes events")

	// ErrLocationNameAlreadyExists is returned on a duplicate location name.
	ErrLocationNameAlreadyExists = errors.New("location name already exists")

	// ErrLocationNotFound is returned when no location matches the id.
	ErrLocationNotFound = errors.New("location was not found")

	// ErrLocationInUse is returned when deleting a location events still
	// take place at.
	ErrLocationInUse = errors.New("location is used by events")

	// ErrEventNotFound is returned when no event matches the id.
	ErrEventNotFound = errors.New("event was not found")

	// ErrNotEnoughTickets is returned when an availability change would
	// make the number of tickets left negative.
	ErrNotEnoughTickets = errors.New("not enough tickets available")

	// ErrTicketNotFound is returned when no ticket matches the id.
	ErrTicketNotFound = errors.New("ticket was not found")

	// ErrWishlistEntryNotFound is returned when removing an event that is not
	// in the user's wishlist.
	ErrWishlistEntryNotFound = errors.New("event is not in wishlist")

	// ErrReferencedRowNotFound is returned when an insert or update refers
	// to a user, event or location that does not exist.
	ErrReferencedRowNotFound = errors.New("referenced row does not exist")

	// ErrInvalidData is returned when a row violates a check constraint.
	ErrInvalidData = errors.New("data violates table constraints")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
