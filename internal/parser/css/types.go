package css

// Declaration is one property/value pair extracted from a stylesheet,
// with byte offsets into the parsed source.
//
// Value excludes any !important flag, so rewriting the ValueOffset span
// leaves the flag in place.
type Declaration struct {
	// Property is the property name as written.
	Property string
	// Between is the text separating name and value, usually ": ".
	Between string
	// Value is the raw value text.
	Value string
	// Important marks a trailing !important.
	Important bool
	// StartOffset is the byte offset of the property name.
	StartOffset int
	// ValueOffset is the byte offset of the value text. It always
	// equals StartOffset + len(Property) + len(Between).
	ValueOffset int
}
