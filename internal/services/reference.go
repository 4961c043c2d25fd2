package services

// ReferenceOption is one selectable row for a foreign-key field.
type ReferenceOption struct {
	ID    uint
	Label string
}

// ReferenceOptions is the set of rows a create or edit may point at,
// read from the live table when the form is served or submitted.
type ReferenceOptions []ReferenceOption

func (o ReferenceOptions) Has(id uint) bool {
	for _, opt := range o {
		if opt.ID == id {
			return true
		}
	}
	return false
}

func (o ReferenceOptions) Label(id uint) string {
	for _, opt := range o {
		if opt.ID == id {
			return opt.Label
		}
	}
	return ""
}
