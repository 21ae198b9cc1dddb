package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ── PostgreSQL TEXT[] ──

// StringArray maps a PostgreSQL TEXT[] column to a set of strings.
// Elements are trimmed, empty elements dropped and duplicates removed.
type StringArray []string

// NewStringArray normalises values into a StringArray.
func NewStringArray(values []string) StringArray {
	out := make(StringArray, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Contains reports whether v is an element of the set.
func (a StringArray) Contains(v string) bool {
	for _, s := range a {
		if s == v {
			return true
		}
	}
	return false
}

// Without returns a copy with v removed.
func (a StringArray) Without(v string) StringArray {
	out := make(StringArray, 0, len(a))
	for _, s := range a {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

// Replace returns a copy with old renamed to new; the set stays duplicate-free.
func (a StringArray) Replace(old, new string) StringArray {
	out := make([]string, 0, len(a))
	for _, s := range a {
		if s == old {
			s = new
		}
		out = append(out, s)
	}
	return NewStringArray(out)
}

// Scan parses the {a,"b c"} text form. Anything that is not an array literal
// is read as an empty set.
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = StringArray{}
		return nil
	}
	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("StringArray.Scan: unsupported type %T", src)
	}
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		*a = StringArray{}
		return nil
	}
	*a = NewStringArray(splitArrayLiteral(s[1 : len(s)-1]))
	return nil
}

// Value serialises the set as a {"a","b"} literal; nil becomes {}.
func (a StringArray) Value() (driver.Value, error) {
	parts := make([]string, 0, len(a))
	for _, v := range a {
		v = strings.ReplaceAll(v, `\`, `\\`)
		v = strings.ReplaceAll(v, `"`, `\"`)
		parts = append(parts, `"`+v+`"`)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// GormDataType implements schema.GormDataTypeInterface.
func (StringArray) GormDataType() string { return "text[]" }

// GormDBDataType keeps the column portable to the SQLite test database.
func (StringArray) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func splitArrayLiteral(body string) []string {
	var (
		out     []string
		cur     strings.Builder
		quoted  bool
		escaped bool
	)
	for _, r := range body {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 || len(out) > 0 {
		out = append(out, cur.String())
	}
	return out
}

// BaseModel audit columns embedded by every table
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// ensureID fills an empty primary key before insert.
func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
