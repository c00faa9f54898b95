package schema

// ColumnType is the type tag a column enforces against inserted values.
// Every tag except TypeDate is the Go runtime type name of the accepted value.
type ColumnType string

const (
	TypeString ColumnType = "string"
	TypeInt    ColumnType = "int"
	TypeFloat  ColumnType = "float64"
	TypeBool   ColumnType = "bool"
	TypeDate   ColumnType = "date" // accepts time.Time, stored as YYYY-MM-DD
)

// Valid reports whether t is one of the supported type tags
func (t ColumnType) Valid() bool {
	switch t {
	case TypeString, TypeInt, TypeFloat, TypeBool, TypeDate:
		return true
	}
	return false
}

// Column is one entry of a table schema
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}
