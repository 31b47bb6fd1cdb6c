package query

import (
	"errors"
	"fmt"
	"strings"
)

// SubqueryNotValidError reports a conversion to a subquery of a select
// that orders or paginates. The remote dialect rejects both inside a
// nested statement.
type SubqueryNotValidError struct {
	Reasons []string // "order by", "limit", "offset"
}

func (e *SubqueryNotValidError) Error() string {
	return fmt.Sprintf("select is not a valid subquery: %s is set", strings.Join(e.Reasons, ", "))
}

// ErrNilPath is recorded by Join when it receives a nil path.
var ErrNilPath = errors.New("join: nil path")

// RootMismatchError reports a path whose root is not the selected entity.
type RootMismatchError struct {
	Selected string
	Root     string
	Op       string // builder operation that received the path
}

func (e *RootMismatchError) Error() string {
	return fmt.Sprintf("%s: path starts at %s, select is from %s", e.Op, e.Root, e.Selected)
}
