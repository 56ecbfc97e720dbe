package collection

import "fmt"

// Op is the kind of mutation requested against a collection.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// IsValid checks if the mutation op is valid.
func (o Op) IsValid() bool {
	switch o {
	case OpCreate, OpUpdate, OpDelete:
		return true
	default:
		return false
	}
}

// String returns the string representation of the op.
func (o Op) String() string {
	return string(o)
}

// ParseOp parses a string into an Op.
func ParseOp(s string) (Op, error) {
	o := Op(s)
	if !o.IsValid() {
		return "", fmt.Errorf("invalid mutation op: %s", s)
	}
	return o, nil
}

// Mutation is a tagged request to create, update, or delete one record.
type Mutation struct {
	Op     Op
	ID     string         // target record id; empty for creates
	Fields map[string]any // full fields for creates, partial for updates
}

// NewCreate builds a create mutation.
func NewCreate(fields map[string]any) Mutation {
	return Mutation{Op: OpCreate, Fields: fields}
}

// NewUpdate builds a partial update mutation for the given record id.
func NewUpdate(id string, fields map[string]any) Mutation {
	return Mutation{Op: OpUpdate, ID: id, Fields: fields}
}

// NewDelete builds a delete mutation for the given record id.
func NewDelete(id string) Mutation {
	return Mutation{Op: OpDelete, ID: id}
}

// Validate checks the mutation for internal consistency.
func (m Mutation) Validate() error {
	if !m.Op.IsValid() {
		return fmt.Errorf("invalid mutation op: %s", m.Op)
	}
	switch m.Op {
	case OpCreate:
		if len(m.Fields) == 0 {
			return fmt.Errorf("create mutation requires fields")
		}
	case OpUpdate:
		if m.ID == "" {
			return fmt.Errorf("update mutation requires a record id")
		}
		if len(m.Fields) == 0 {
			return fmt.Errorf("update mutation requires fields")
		}
	case OpDelete:
		if m.ID == "" {
			return fmt.Errorf("delete mutation requires a record id")
		}
	}
	return nil
}
