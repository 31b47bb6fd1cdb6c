package soql

// Op is a binary or unary operator token.
type Op string

// Operators understood by the remote dialect.
const (
	OpAnd      Op = "AND"
	OpOr       Op = "OR"
	OpNot      Op = "NOT"
	OpEq       Op = "="
	OpLt       Op = "<"
	OpLte      Op = "<="
	OpGt       Op = ">"
	OpGte      Op = ">="
	OpNe       Op = "!="
	OpIn       Op = "IN"
	OpNotIn    Op = "NOT IN"
	OpIs       Op = "IS"
	OpIsNot    Op = "IS NOT"
	OpLike     Op = "LIKE"
	OpIncludes Op = "INCLUDES"
	OpExcludes Op = "EXCLUDES"
)

// Ops lists every operator in declaration order.
var Ops = []Op{
	OpAnd, OpOr, OpNot,
	OpEq, OpLt, OpLte, OpGt, OpGte, OpNe,
	OpIn, OpNotIn, OpIs, OpIsNot,
	OpLike, OpIncludes, OpExcludes,
}

// ParseOp returns the operator spelled s.
func ParseOp(s string) (Op, bool) {
	for _, op := range Ops {
		if string(op) == s {
			return op, true
		}
	}
	return "", false
}

// Reserved words.
const (
	KwSelect  = "SELECT"
	KwFrom    = "FROM"
	KwWhere   = "WHERE"
	KwGroupBy = "GROUP BY" // reserved; statements never emit it
	KwOrderBy = "ORDER BY"
	KwLimit   = "LIMIT"
	KwOffset  = "OFFSET"
	KwNull    = "NULL"
	KwTrue    = "TRUE"
	KwFalse   = "FALSE"
)

// Function names.
type Function string

const (
	FnAvg           Function = "AVG"
	FnCount         Function = "COUNT"
	FnCountDistinct Function = "COUNT_DISTINCT"
	FnMin           Function = "MIN"
	FnMax           Function = "MAX"
	FnSum           Function = "SUM"
)
