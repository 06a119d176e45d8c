package mongodb

import "go.mongodb.org/mongo-driver/bson"

// Patch is the builder repositories use instead of hand-assembling operator
// documents, so the access layer never has to guess caller intent from the
// shape of an untyped map. Build output flows through NormalizeUpdate like
// every other update, which stamps updatedAt.
type Patch struct {
	set      bson.M
	unset    bson.M
	addToSet bson.M
	pull     bson.M
	push     bson.M
}

// NewPatch returns an empty patch.
func NewPatch() *Patch {
	return &Patch{}
}

// Set assigns a field.
func (p *Patch) Set(field string, value any) *Patch {
	if p.set == nil {
		p.set = bson.M{}
	}
	p.set[field] = value
	return p
}

// SetAll assigns every field in fields.
func (p *Patch) SetAll(fields bson.M) *Patch {
	for field, value := range fields {
		p.Set(field, value)
	}
	return p
}

// Unset removes a field from the document.
func (p *Patch) Unset(field string) *Patch {
	if p.unset == nil {
		p.unset = bson.M{}
	}
	p.unset[field] = ""
	return p
}

// AddToSet appends value to an array field unless already present.
func (p *Patch) AddToSet(field string, value any) *Patch {
	if p.addToSet == nil {
		p.addToSet = bson.M{}
	}
	p.addToSet[field] = value
	return p
}

// Pull removes every occurrence of value from an array field.
func (p *Patch) Pull(field string, value any) *Patch {
	if p.pull == nil {
		p.pull = bson.M{}
	}
	p.pull[field] = value
	return p
}

// Push appends value to the end of an array field.
func (p *Patch) Push(field string, value any) *Patch {
	if p.push == nil {
		p.push = bson.M{}
	}
	p.push[field] = value
	return p
}

// IsEmpty reports whether no mutation has been recorded.
func (p *Patch) IsEmpty() bool {
	return len(p.set) == 0 && len(p.unset) == 0 && len(p.addToSet) == 0 &&
		len(p.pull) == 0 && len(p.push) == 0
}

// Build assembles the operator document.
func (p *Patch) Build() bson.M {
	update := bson.M{}
	if len(p.set) > 0 {
		update["$set"] = p.set
	}
	if len(p.unset) > 0 {
		update["$unset"] = p.unset
	}
	if len(p.addToSet) > 0 {
		update["$addToSet"] = p.addToSet
	}
	if len(p.pull) > 0 {
		update["$pull"] = p.pull
	}
	if len(p.push) > 0 {
		update["$push"] = p.push
	}
	return update
}
