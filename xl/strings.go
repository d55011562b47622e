package xl

// SharedStrings is the shared string table of a worksheet. Ids are dense and
// assigned in first-seen order starting at 0.
type SharedStrings struct {
	list  []string
	index map[string]int
}

func NewSharedStrings() *SharedStrings {
	return &SharedStrings{
		index: map[string]int{},
	}
}

// Intern returns the id of s, adding it to the table on first use.
func (t *SharedStrings) Intern(s string) int {
	if i, ok := t.index[s]; ok {
		return i
	}
	i := len(t.list)
	t.list = append(t.list, s)
	t.index[s] = i
	return i
}

// Lookup returns the id of s without adding it.
func (t *SharedStrings) Lookup(s string) (int, bool) {
	i, ok := t.index[s]
	return i, ok
}

// Len is the number of distinct strings (the uniqueCount of the table).
func (t *SharedStrings) Len() int {
	return len(t.list)
}

// Strings returns the table contents in id order.
func (t *SharedStrings) Strings() []string {
	return t.list
}
