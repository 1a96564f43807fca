package chess

// Well-known PGN tag names.
const (
	EventTag    = "Event"
	SiteTag     = "Site"
	DateTag     = "Date"
	RoundTag    = "Round"
	WhiteTag    = "White"
	BlackTag    = "Black"
	ResultTag   = "Result"
	ECOTag      = "ECO"
	PlyCountTag = "PlyCount"
	SetUpTag    = "SetUp"
	FENTag      = "FEN"
)

// SevenTagRoster lists the mandatory PGN tags in their standard order.
var SevenTagRoster = []string{EventTag, SiteTag, DateTag, RoundTag, WhiteTag, BlackTag, ResultTag}

// Tag is a single PGN header pair.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Tags is an ordered list of PGN headers. A repeated name overwrites the
// earlier value in place, keeping its original position.
type Tags []Tag

// Get returns a tag value, or empty string if not present.
func (t Tags) Get(name string) string {
	v, _ := t.Lookup(name)
	return v
}

// Lookup returns a tag value and whether it is present.
func (t Tags) Lookup(name string) (string, bool) {
	for _, tag := range t {
		if tag.Name == name {
			return tag.Value, true
		}
	}
	return "", false
}

// Has returns true if the tag is present.
func (t Tags) Has(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// Set sets a tag value.
func (t *Tags) Set(name, value string) {
	for i := range *t {
		if (*t)[i].Name == name {
			(*t)[i].Value = value
			return
		}
	}
	*t = append(*t, Tag{Name: name, Value: value})
}

// Map returns the tags as a map.
func (t Tags) Map() map[string]string {
	m := make(map[string]string, len(t))
	for _, tag := range t {
		m[tag.Name] = tag.Value
	}
	return m
}

// Clone returns an independent copy of the tags.
func (t Tags) Clone() Tags {
	if t == nil {
		return nil
	}
	out := make(Tags, len(t))
	copy(out, t)
	return out
}
