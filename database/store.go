package database

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// Row is a stored record in its raw column/value form. The repositories map
// rows to and from the external model shapes.
type Row map[string]interface{}

// Collection names for the two flat collections the application persists.
const (
	CollectionDonations = "donations"
	CollectionFriends   = "donation_friends"
)

var collections = map[string]bool{
	CollectionDonations: true,
	CollectionFriends:   true,
}

var (
	ErrNoRows        = errors.New("no matching row")
	ErrMultipleRows  = errors.New("more than one matching row")
	ErrBadCollection = errors.New("unknown collection")
	ErrBadColumn     = errors.New("invalid column name")
)

// StoreError is returned by every adapter operation that fails, carrying the
// operation and collection for the log line. The underlying cause stays
// reachable through errors.Is/As.
type StoreError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoRows)
}

// IsConflict reports whether err was caused by a constraint violation, such
// as inserting a duplicate primary key.
func IsConflict(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.Code == sqlite3.ErrConstraint
}

func storeErr(op, collection string, err error) error {
	return &StoreError{Op: op, Collection: collection, Err: err}
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// quoteIdent validates and quotes an identifier before it is interpolated
// into SQL. Quoting is mandatory here: the donations collection has a column
// literally named "Check".
func quoteIdent(name string) (string, error) {
	if !identPattern.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrBadColumn, name)
	}
	return `"` + name + `"`, nil
}

func checkCollection(collection string) error {
	if !collections[collection] {
		return fmt.Errorf("%w: %q", ErrBadCollection, collection)
	}
	return nil
}

// FetchAll returns every row in the collection.
func FetchAll(collection string) ([]Row, error) {
	const op = "fetch all"
	if err := checkCollection(collection); err != nil {
		return nil, storeErr(op, collection, err)
	}

	rows, err := DB.Queryx(`SELECT * FROM "` + collection + `"`)
	if err != nil {
		return nil, storeErr(op, collection, err)
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		r := Row{}
		if err := rows.MapScan(r); err != nil {
			return nil, storeErr(op, collection, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, collection, err)
	}
	return out, nil
}

// FetchOne returns the single row matching id. Zero matches and multiple
// matches are both errors; callers that only care about existence can test
// the result with IsNotFound.
func FetchOne(collection, id string) (Row, error) {
	const op = "fetch one"
	if err := checkCollection(collection); err != nil {
		return nil, storeErr(op, collection, err)
	}

	rows, err := DB.Queryx(`SELECT * FROM "`+collection+`" WHERE id = ?`, id)
	if err != nil {
		return nil, storeErr(op, collection, err)
	}
	defer rows.Close()

	var matched []Row
	for rows.Next() {
		r := Row{}
		if err := rows.MapScan(r); err != nil {
			return nil, storeErr(op, collection, err)
		}
		matched = append(matched, r)
		if len(matched) > 1 {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, collection, err)
	}

	switch len(matched) {
	case 0:
		return nil, storeErr(op, collection, ErrNoRows)
	case 1:
		return matched[0], nil
	default:
		return nil, storeErr(op, collection, ErrMultipleRows)
	}
}

// Insert stores one row and returns it as stored, including the id the store
// assigned when the payload carried none.
func Insert(collection string, payload Row) (Row, error) {
	const op = "insert"
	if err := checkCollection(collection); err != nil {
		return nil, storeErr(op, collection, err)
	}

	cols := make([]string, 0, len(payload))
	for col := range payload {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	quoted := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	placeholders := make([]string, len(cols))
	for i, col := range cols {
		q, err := quoteIdent(col)
		if err != nil {
			return nil, storeErr(op, collection, err)
		}
		quoted[i] = q
		args[i] = payload[col]
		placeholders[i] = "?"
	}

	query := `INSERT INTO "` + collection + `" (` + strings.Join(quoted, ", ") + `) VALUES (` + strings.Join(placeholders, ", ") + `)`
	res, err := DB.Exec(query, args...)
	if err != nil {
		return nil, storeErr(op, collection, err)
	}

	if id, ok := payload["id"]; ok {
		return FetchOne(collection, fmt.Sprint(id))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, storeErr(op, collection, err)
	}
	return FetchOne(collection, strconv.FormatInt(id, 10))
}

// UpdateByID updates the fields present in payload for the row matching id
// and returns the updated row. Updating a missing row is an error.
func UpdateByID(collection, id string, payload Row) (Row, error) {
	const op = "update"
	if err := checkCollection(collection); err != nil {
		return nil, storeErr(op, collection, err)
	}

	cols := make([]string, 0, len(payload))
	for col := range payload {
		if col == "id" {
			continue
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	if len(cols) == 0 {
		return FetchOne(collection, id)
	}

	sets := make([]string, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for i, col := range cols {
		q, err := quoteIdent(col)
		if err != nil {
			return nil, storeErr(op, collection, err)
		}
		sets[i] = q + " = ?"
		args = append(args, payload[col])
	}
	args = append(args, id)

	res, err := DB.Exec(`UPDATE "`+collection+`" SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, storeErr(op, collection, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, storeErr(op, collection, err)
	}
	if affected == 0 {
		return nil, storeErr(op, collection, ErrNoRows)
	}

	return FetchOne(collection, id)
}

// DeleteByID removes the row matching id. Deleting an id that does not exist
// is not an error; the caller never observes a miss on delete.
func DeleteByID(collection, id string) error {
	const op = "delete"
	if err := checkCollection(collection); err != nil {
		return storeErr(op, collection, err)
	}

	if _, err := DB.Exec(`DELETE FROM "`+collection+`" WHERE id = ?`, id); err != nil {
		return storeErr(op, collection, err)
	}
	return nil
}
