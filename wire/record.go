package wire

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AjayBarot7035/secret-santa/types"
)

// GiverNaming selects the JSON field names used for the giver side of a pairing.
type GiverNaming int

const (
	// GiverNamingEmployee encodes employee_name and employee_email.
	GiverNamingEmployee GiverNaming = iota

	// GiverNamingSanta encodes santa_name and santa_email.
	GiverNamingSanta
)

// String returns the field prefix of the naming.
func (n GiverNaming) String() string {
	if n == GiverNamingSanta {
		return "santa"
	}

	return "employee"
}

// AssignmentRecord is one giver → receiver pairing on the wire.
type AssignmentRecord struct {
	GiverName     string
	GiverEmail    string
	ReceiverName  string
	ReceiverEmail string

	// Naming controls the giver field names on encode. Decode records which
	// shape was read.
	Naming GiverNaming
}

// rawRecord carries every accepted field name.
type rawRecord struct {
	EmployeeName     string `json:"employee_name,omitempty" yaml:"employee_name,omitempty"`
	EmployeeEmail    string `json:"employee_email,omitempty" yaml:"employee_email,omitempty"`
	SantaName        string `json:"santa_name,omitempty" yaml:"santa_name,omitempty"`
	SantaEmail       string `json:"santa_email,omitempty" yaml:"santa_email,omitempty"`
	SecretChildName  string `json:"secret_child_name" yaml:"secret_child_name"`
	SecretChildEmail string `json:"secret_child_email" yaml:"secret_child_email"`
}

func (r rawRecord) record() AssignmentRecord {
	rec := AssignmentRecord{
		GiverName:     r.EmployeeName,
		GiverEmail:    r.EmployeeEmail,
		ReceiverName:  r.SecretChildName,
		ReceiverEmail: r.SecretChildEmail,
	}
	if rec.GiverName == "" && rec.GiverEmail == "" {
		rec.GiverName = r.SantaName
		rec.GiverEmail = r.SantaEmail
		if r.SantaName != "" || r.SantaEmail != "" {
			rec.Naming = GiverNamingSanta
		}
	}

	return rec
}

// MarshalJSON encodes the record with the giver field names selected by Naming.
func (a AssignmentRecord) MarshalJSON() ([]byte, error) {
	type employeeShape struct {
		EmployeeName     string `json:"employee_name"`
		EmployeeEmail    string `json:"employee_email"`
		SecretChildName  string `json:"secret_child_name"`
		SecretChildEmail string `json:"secret_child_email"`
	}
	type santaShape struct {
		SantaName        string `json:"santa_name"`
		SantaEmail       string `json:"santa_email"`
		SecretChildName  string `json:"secret_child_name"`
		SecretChildEmail string `json:"secret_child_email"`
	}

	switch a.Naming {
	case GiverNamingEmployee:
		return json.Marshal(employeeShape{a.GiverName, a.GiverEmail, a.ReceiverName, a.ReceiverEmail})
	case GiverNamingSanta:
		return json.Marshal(santaShape{a.GiverName, a.GiverEmail, a.ReceiverName, a.ReceiverEmail})
	default:
		return nil, fmt.Errorf("unknown giver naming %d", int(a.Naming))
	}
}

// UnmarshalJSON decodes either giver shape. employee_* wins when both are present.
func (a *AssignmentRecord) UnmarshalJSON(data []byte) error {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = raw.record()

	return nil
}

// UnmarshalYAML decodes either giver shape from YAML input files.
func (a *AssignmentRecord) UnmarshalYAML(value *yaml.Node) error {
	var raw rawRecord
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*a = raw.record()

	return nil
}

// NewRecord converts an assignment to a wire record.
func NewRecord(a types.Assignment, naming GiverNaming) AssignmentRecord {
	return AssignmentRecord{
		GiverName:     a.GiverName,
		GiverEmail:    a.GiverEmail,
		ReceiverName:  a.ReceiverName,
		ReceiverEmail: a.ReceiverEmail,
		Naming:        naming,
	}
}

// Assignment converts the record back to a core assignment.
func (a AssignmentRecord) Assignment() types.Assignment {
	return types.Assignment{
		GiverName:     a.GiverName,
		GiverEmail:    a.GiverEmail,
		ReceiverName:  a.ReceiverName,
		ReceiverEmail: a.ReceiverEmail,
	}
}

// ForbiddenPairs converts previous-period records to forbidden pairs.
//
// Surrounding whitespace is trimmed from every field so history recorded
// from untrimmed input still matches trimmed participants.
//
// Parameters:
//   - records: Previous assignments
//
// Returns:
//   - []types.ForbiddenPair: One pair per record, in order
func ForbiddenPairs(records []AssignmentRecord) []types.ForbiddenPair {
	pairs := make([]types.ForbiddenPair, 0, len(records))
	for _, r := range records {
		pairs = append(pairs, types.ForbiddenPair{
			GiverName:    strings.TrimSpace(r.GiverName),
			GiverEmail:   strings.TrimSpace(r.GiverEmail),
			ReceiverName: strings.TrimSpace(r.ReceiverName),
		})
	}

	return pairs
}
