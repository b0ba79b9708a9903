package features

// Vector is one feature row keyed by schema names.
// Every schema column exists and defaults to 0.
type Vector struct {
	schema *Schema
	values []float64
}

// NewVector returns an all-zero row for schema
func NewVector(schema *Schema) *Vector {
	return &Vector{schema: schema, values: make([]float64, schema.Len())}
}

// Set writes value into column name. Names outside the schema are dropped
// and reported with false so that the row never grows extra keys.
func (v *Vector) Set(name string, value float64) bool {
	i := v.schema.Index(name)
	if i < 0 {
		return false
	}
	v.values[i] = value
	return true
}

// Get returns the value of column name and whether it exists
func (v *Vector) Get(name string) (float64, bool) {
	i := v.schema.Index(name)
	if i < 0 {
		return 0, false
	}
	return v.values[i], true
}

// Names returns the column names in schema order
func (v *Vector) Names() []string { return v.schema.Names() }

// Values returns a copy of the row in schema order
func (v *Vector) Values() []float64 {
	out := make([]float64, len(v.values))
	copy(out, v.values)
	return out
}

// Float32s returns the row in schema order as float32, the pgvector element type
func (v *Vector) Float32s() []float32 {
	out := make([]float32, len(v.values))
	for i, x := range v.values {
		out[i] = float32(x)
	}
	return out
}

// Map returns the row keyed by column name
func (v *Vector) Map() map[string]float64 {
	out := make(map[string]float64, len(v.values))
	for i, name := range v.schema.names {
		out[name] = v.values[i]
	}
	return out
}

// Len returns the number of columns
func (v *Vector) Len() int { return len(v.values) }

// Schema returns the schema the row was built against
func (v *Vector) Schema() *Schema { return v.schema }
