package client

// Condition operations
const (
	OpEQ  = "EQ"
	OpIN  = "IN"
	OpGT  = "GT"
	OpGTE = "GTE"
	OpLT  = "LT"
	OpLTE = "LTE"
)

// Condition is a single predicate over a Video field.
type Condition struct {
	Operation   string   `json:"operation" jsonschema:"enum=EQ,enum=IN,enum=GT,enum=GTE,enum=LT,enum=LTE"`
	FieldName   string   `json:"field_name" jsonschema:"minLength=1"`
	FieldValues []string `json:"field_values" jsonschema:"minItems=1"`
}

// Query is the and/or/not condition tree accepted by the query endpoint.
// It is one valid QueryRequest.Conditions value; the client never inspects it.
type Query struct {
	And []Condition `json:"and,omitempty"`
	Or  []Condition `json:"or,omitempty"`
	Not []Condition `json:"not,omitempty"`
}

// Eq builds an EQ condition.
func Eq(field, value string) Condition {
	return Condition{Operation: OpEQ, FieldName: field, FieldValues: []string{value}}
}

// In builds an IN condition.
func In(field string, values ...string) Condition {
	return Condition{Operation: OpIN, FieldName: field, FieldValues: values}
}

// Gt builds a GT condition.
func Gt(field, value string) Condition {
	return Condition{Operation: OpGT, FieldName: field, FieldValues: []string{value}}
}

// Gte builds a GTE condition.
func Gte(field, value string) Condition {
	return Condition{Operation: OpGTE, FieldName: field, FieldValues: []string{value}}
}

// Lt builds an LT condition.
func Lt(field, value string) Condition {
	return Condition{Operation: OpLT, FieldName: field, FieldValues: []string{value}}
}

// Lte builds an LTE condition.
func Lte(field, value string) Condition {
	return Condition{Operation: OpLTE, FieldName: field, FieldValues: []string{value}}
}
