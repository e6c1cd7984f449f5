package object

// DataItem is one DATA value and the line it came from
type DataItem struct {
	Text string
	Line int
}

// DataPool is every DATA item in the program, in program order,
// with a read cursor. It is built from the program text when first
// needed and again whenever the program has changed since.
type DataPool struct {
	items   []DataItem
	cursor  int
	version uint64
	built   bool
}

// Stale is true when the pool needs rebuilding for program version
func (d *DataPool) Stale(version uint64) bool {
	return !d.built || d.version != version
}

// Load replaces the items and rewinds the cursor
func (d *DataPool) Load(items []DataItem, version uint64) {
	d.items = items
	d.cursor = 0
	d.version = version
	d.built = true
}

// Next returns the item under the cursor and advances
func (d *DataPool) Next() (DataItem, bool) {
	if d.cursor >= len(d.items) {
		return DataItem{}, false
	}
	it := d.items[d.cursor]
	d.cursor++
	return it, true
}

// Restore rewinds to the first item
func (d *DataPool) Restore() {
	d.cursor = 0
}

// RestoreAt moves to the first item from line or later
func (d *DataPool) RestoreAt(line int) {
	for i, it := range d.items {
		if it.Line >= line {
			d.cursor = i
			return
		}
	}
	d.cursor = len(d.items)
}

// Items returns the pool contents
func (d *DataPool) Items() []DataItem {
	return d.items
}

// Cursor is the index of the next item READ will get
func (d *DataPool) Cursor() int {
	return d.cursor
}
